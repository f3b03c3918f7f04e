package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/pipeline"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
	"github.com/travellermap/hexmap/pkg/stylesheet"
)

// stylesheetCommand groups the stylesheet tools.
func (c *CLI) stylesheetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stylesheet",
		Aliases: []string{"css"},
		Short:   "Check and inspect sector stylesheets",
	}

	cmd.AddCommand(c.stylesheetCheckCommand())
	cmd.AddCommand(c.stylesheetResolveCommand())
	cmd.AddCommand(c.stylesheetDefaultCommand())

	return cmd
}

// stylesheetCheckCommand validates sector stylesheets, or a standalone
// stylesheet file with --file.
func (c *CLI) stylesheetCheckCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "check [sector...]",
		Short: "Report parse errors and badly typed values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				return checkStylesheetFile(file)
			}

			p, err := c.loadScene(cmd.Context())
			if err != nil {
				return err
			}
			sectors := p.All()
			if len(args) > 0 {
				sectors = sectors[:0:0]
				for _, ref := range args {
					s, err := pipeline.FindSector(p, ref)
					if err != nil {
						return err
					}
					sectors = append(sectors, s)
				}
			}

			problems := 0
			for _, s := range sectors {
				problems += reportStylesheet(s.Name(), s.StylesheetSource != "", s.CheckStylesheet())
			}
			if problems > 0 {
				return errors.New(errors.ErrCodeInvalidStyle, "%d stylesheet problem(s)", problems)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "check a stylesheet file instead of the scene")
	return cmd
}

func checkStylesheetFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	sheet, err := stylesheet.Parse(string(data))
	if err != nil {
		reportStylesheet(path, true, []error{err})
		return errors.Wrap(errors.ErrCodeParse, err, "%s", path)
	}
	if n := reportStylesheet(path, true, sector.StylesheetProperties.Check(sheet)); n > 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "%d stylesheet problem(s)", n)
	}
	return nil
}

// reportStylesheet prints the outcome for one stylesheet and returns the
// number of problems.
func reportStylesheet(name string, present bool, errs []error) int {
	switch {
	case !present:
		printInfo("%s: no stylesheet", name)
	case len(errs) == 0:
		printSuccess("%s", name)
	default:
		printError("%s", name)
		for _, err := range errs {
			printDetail("%v", err)
		}
	}
	return len(errs)
}

// stylesheetResolveCommand prints the properties that apply to an
// element and code.
func (c *CLI) stylesheetResolveCommand() *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "resolve <element> [code]",
		Short: "Show the properties a stylesheet resolves for an element",
		Example: `  hexmap stylesheet resolve route Xb --sector Core
  hexmap stylesheet resolve border.ImDc`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			element, code := splitSelector(args)

			sheet := stylesheet.Default()
			source := "built-in"
			if ref != "" {
				p, err := c.loadScene(cmd.Context())
				if err != nil {
					return err
				}
				s, err := pipeline.FindSector(p, ref)
				if err != nil {
					return err
				}
				if err := s.StylesheetError(); err != nil {
					printWarning("%s stylesheet does not parse, using built-in: %v", s.Name(), err)
				}
				sheet = s.Stylesheet()
				source = s.Name()
			}

			res := sheet.Apply(element, code)
			selector := element
			if code != "" {
				selector += "." + code
			}
			if res.Len() == 0 {
				printInfo("No properties for %s (%s)", selector, source)
				return nil
			}
			fmt.Fprintln(statusOut, StyleTitle.Render(selector) + " " + StyleDim.Render("("+source+")"))
			fmt.Fprintln(statusOut, propertyTable(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "sector", "", "resolve against this sector's stylesheet")
	return cmd
}

// splitSelector accepts "element code" or "element.code".
func splitSelector(args []string) (element, code string) {
	element = args[0]
	if len(args) > 1 {
		return element, args[1]
	}
	for i := 0; i < len(element); i++ {
		if element[i] == '.' {
			return element[:i], element[i+1:]
		}
	}
	return element, ""
}

func propertyTable(res *stylesheet.Result) string {
	props := res.Properties()
	slices.Sort(props)

	rows := make([][]string, 0, len(props))
	for _, p := range props {
		v, _ := res.String(p)
		rows = append(rows, []string{p, v})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Property", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		}).
		Render()
}

// stylesheetDefaultCommand prints the built-in stylesheet.
func (c *CLI) stylesheetDefaultCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "default",
		Short: "Print the built-in stylesheet",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), stylesheet.DefaultSource())
		},
	}
}

// themeNames lists the style names accepted by --style.
func themeNames() []string {
	themes := style.Themes()
	out := make([]string, len(themes))
	for i, t := range themes {
		out[i] = t.String()
	}
	return out
}
