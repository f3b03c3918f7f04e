package render

import (
	"strings"
	"unicode"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/style"
)

// textFormat anchors a block of lines on a point.
type textFormat int

const (
	formatTopLeft textFormat = iota
	formatTopCenter
	formatTopRight
	formatMiddleLeft
	formatCenter
	formatMiddleRight
	formatBottomLeft
	formatBottomCenter
	formatBottomRight
)

// drawMultiLine draws text split on newlines. Each line is centered on its
// own anchor so that backends only need to center single lines.
func drawMultiLine(g graphics.Graphics, text string, font graphics.Font, brush graphics.Brush, x, y float64, format textFormat) {
	if strings.TrimSpace(text) == "" {
		return
	}
	lines := strings.Split(text, "\n")
	widths := make([]float64, len(lines))
	var spacing float64
	for i, line := range lines {
		w, h := g.MeasureString(line, font)
		widths[i] = w
		spacing = max(spacing, h)
	}
	total := spacing * float64(len(lines))

	// Start at the middle of the first line.
	y += spacing / 2
	switch format {
	case formatMiddleLeft, formatCenter, formatMiddleRight:
		y -= total / 2
	case formatBottomLeft, formatBottomCenter, formatBottomRight:
		y -= total
	}

	var widthFactor float64
	switch format {
	case formatTopCenter, formatCenter, formatBottomCenter:
		widthFactor = -0.5
	case formatTopRight, formatMiddleRight, formatBottomRight:
		widthFactor = -1
	}

	for i, line := range lines {
		g.DrawString(line, font, brush, x+widthFactor*widths[i]+widths[i]/2, y, graphics.AlignCentered)
		y += spacing
	}
}

// wrapLabel breaks a label at whitespace, except where the next word starts
// with a lower-case letter ("Zhodani Consulate of the Sword Worlds" keeps
// "of the" attached).
func wrapLabel(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if !unicode.IsSpace(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		// Before a lower-case word the last space is kept and any spaces
		// ahead of it still break.
		if j < len(runes) && 'a' <= runes[j] && runes[j] <= 'z' {
			if j-i > 1 {
				b.WriteByte('\n')
			}
			b.WriteRune(runes[j-1])
			i = j
			continue
		}
		b.WriteByte('\n')
		i = j
	}
	return b.String()
}

// drawLabel draws text centered on a world-space point using ls.
func (p *pass) drawLabel(text string, center astrometrics.PointF, font graphics.Font, brush graphics.Brush, ls style.LabelStyle) {
	if ls.Uppercase {
		text = strings.ToUpper(text)
	}
	if ls.Wrap {
		text = strings.ReplaceAll(text, " ", "\n")
	}
	g := p.g
	state := g.Save()
	defer g.Restore(state)

	g.TranslateTransform(center.X, center.Y)
	g.ScaleTransform(1/astrometrics.ParsecScaleX, 1/astrometrics.ParsecScaleY)
	g.TranslateTransform(ls.Translation.X, ls.Translation.Y)
	g.RotateTransform(ls.Rotation)
	sx, sy := ls.Scale.X, ls.Scale.Y
	if sx == 0 && sy == 0 {
		sx, sy = 1, 1
	}
	g.ScaleTransform(sx, sy)
	drawMultiLine(g, text, font, brush, 0, 0, formatCenter)
}

// drawWorldLabel draws a world's name or UWP with the given background
// treatment. pos is in hex content units.
func (p *pass) drawWorldLabel(bg style.TextBackgroundStyle, fill, textColor graphics.Brush, pos astrometrics.PointF, font graphics.Font, text string) {
	g, s := p.g, p.s
	w, h := g.MeasureString(text, font)
	rect := astrometrics.RectangleF{X: pos.X - w/2, Y: pos.Y - h/2, Width: w, Height: h}
	bgBrush := graphics.Brush{Color: s.BackgroundColor}

	switch bg {
	case style.TextBackgroundRectangle:
		if !s.FillMicroBorders {
			g.DrawRectangle(nil, &bgBrush, rect)
		}
	case style.TextBackgroundFilled:
		g.DrawRectangle(nil, &fill, rect)
	case style.TextBackgroundOutline, style.TextBackgroundShadow:
		// One pixel at the current scale, in hex content units.
		sx := 1 / s.HexContentScale * astrometrics.ParsecScaleX / (p.req.Scale * astrometrics.ParsecScaleX)
		sy := 1 / s.HexContentScale * astrometrics.ParsecScaleY / (p.req.Scale * astrometrics.ParsecScaleY)
		from := -2
		if bg == style.TextBackgroundShadow {
			from = 0
		}
		for dx := from; dx <= 2; dx++ {
			for dy := from; dy <= 2; dy++ {
				g.DrawString(text, font, bgBrush, pos.X+sx*float64(dx), pos.Y+sy*float64(dy), graphics.AlignCentered)
			}
		}
	}
	g.DrawString(text, font, textColor, pos.X, pos.Y, graphics.AlignCentered)
}
