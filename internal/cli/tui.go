package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/travellermap/hexmap/pkg/pipeline"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SectorListModel - Interactive sector selection
// =============================================================================

// SectorListModel is the bubbletea model for picking a sector.
type SectorListModel struct {
	Sectors  []*sector.Sector
	Cursor   int
	Selected *sector.Sector
	Height   int
	Offset   int
}

// NewSectorListModel creates a new sector list model.
func NewSectorListModel(sectors []*sector.Sector) SectorListModel {
	return SectorListModel{Sectors: sectors, Height: 15}
}

func (m SectorListModel) Init() tea.Cmd {
	return nil
}

func (m SectorListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Sectors)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Sectors) == 0 {
				return m, nil
			}
			m.Selected = m.Sectors[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SectorListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Sector"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Sectors))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Sectors[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		abbr := s.Abbreviation
		if abbr == "" {
			abbr = "—"
		}
		rows = append(rows, []string{
			cursor,
			s.Name(),
			abbr,
			fmt.Sprintf("%d,%d", s.Location.X, s.Location.Y),
			fmt.Sprintf("%d", len(s.Worlds)),
			strings.Join(s.Tags, " "),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Sector", "Abbr", "Location", "Worlds", "Tags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Sectors) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				if col < 3 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorGray).Bold(true)
			}
			if len(m.Sectors[idx].Worlds) == 0 && col < 3 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Sectors))))

	return b.String()
}

// =============================================================================
// ThemeListModel - Interactive style selection
// =============================================================================

// ThemeListModel is the bubbletea model for picking a map style.
type ThemeListModel struct {
	Themes   []style.Theme
	Cursor   int
	Selected *style.Theme
}

// NewThemeListModel creates a theme list with the cursor on current.
func NewThemeListModel(current style.Theme) ThemeListModel {
	m := ThemeListModel{Themes: style.Themes()}
	for i, t := range m.Themes {
		if t == current {
			m.Cursor = i
		}
	}
	return m
}

func (m ThemeListModel) Init() tea.Cmd {
	return nil
}

func (m ThemeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Themes)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Themes[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ThemeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Style"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, t := range m.Themes {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}
		format := style.New(pipeline.DefaultSectorScale, style.DefaultMapOptions, t).PreferredFormat
		line := fmt.Sprintf("%s%-10s  %s", cursor, t, listDimStyle.Render(string(format)))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// =============================================================================
// Browse Command
// =============================================================================

// browseCommand picks a sector and style interactively and renders it.
func (c *CLI) browseCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a sector and style interactively, then render it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := c.loadScene(ctx)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(NewSectorListModel(p.All()), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			sec := final.(SectorListModel).Selected
			if sec == nil {
				return nil
			}

			base, err := c.cfg().defaults()
			if err != nil {
				return err
			}
			current, _ := style.ParseTheme(base.Style)
			final, err = tea.NewProgram(NewThemeListModel(current), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			theme := final.(ThemeListModel).Selected
			if theme == nil {
				return nil
			}

			po, err := opts.apply(base)
			if err != nil {
				return err
			}
			po.Sector = fmt.Sprintf("%d,%d", sec.Location.X, sec.Location.Y)
			po.SectorClip = true
			po.Style = theme.String()
			return c.runRender(ctx, po, &opts, sanitizeName(sec.Name())+"-"+theme.String())
		},
	}

	opts.addFlags(cmd, pipeline.DefaultSectorScale)
	_ = cmd.Flags().MarkHidden("style")
	return cmd
}
