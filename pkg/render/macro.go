package render

import (
	"strings"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
)

// mapLabel is fixed text at a world-space position.
type mapLabel struct {
	text  string
	x, y  float64
	minor bool
}

// Galaxy-scale region names.
var megaLabels = []mapLabel{
	{"Charted Space", 0, 400, true},
	{"Zhodani\nCore\nExpeditions", 0, -3500, true},
	{"Core Sophonts", 0, -12500, false},
	{"Abyssals", -15000, -10000, false},
	{"Denizens", -8660, -7500, false},
	{"Essaray", 6900, -16000, false},
	{"Dushis Khurisi", 0, -22000, true},
	{"The\nBarren\nArm", 9240, -4500, true},
}

// Client state names shown with minor macro names.
var minorLabels = []mapLabel{
	{text: "Human Client States", x: -184, y: -50},
	{text: "Aslan Client States", x: -69, y: 155},
	{text: "Aslan Colonies", x: -133, y: -5},
	{text: "Mixed Client States", x: 127, y: 5},
	{text: "Scattered\nClient States", x: 98, y: 65},
	{text: "Vargr Enclaves", x: 110, y: -135},
	{text: "Hive Young Worlds", x: 115, y: 128},
}

// riftLabelRotation tilts rift names along the rifts.
const riftLabelRotation = 35

// capitalDotRadius is the diameter of a macro capital dot, in points.
const capitalDotRadius = 3.0

// vectorObjects returns the provider's objects of kind sharing a bit of mask
// with the render options.
func (p *pass) vectorObjects(kind sector.VectorKind, mask style.MapOptions) []*sector.VectorObject {
	if p.req.Provider == nil {
		return nil
	}
	opts := p.mapOptions() & uint32(mask)
	var out []*sector.VectorObject
	for _, v := range p.req.Provider.VectorObjects(kind) {
		if v.Options&opts != 0 {
			out = append(out, v)
		}
	}
	return out
}

// drawVector strokes v in its own coordinate space.
func (p *pass) drawVector(v *sector.VectorObject) error {
	if !v.TransformedBounds().IntersectsWith(p.req.TileRect) {
		return nil
	}
	g := p.g
	state := g.Save()
	defer g.Restore(state)
	g.ScaleTransform(v.ScaleX, v.ScaleY)
	g.TranslateTransform(-v.OriginX, -v.OriginY)
	return g.DrawPath(&p.pen, nil, v.Path())
}

func (p *pass) drawMacroBorders() error {
	if !p.s.MacroBorders.Visible {
		return nil
	}
	p.pen = p.s.MacroBorders.Pen
	for _, v := range p.vectorObjects(sector.VectorBorders, style.BordersMask) {
		if err := p.drawVector(v); err != nil {
			return err
		}
	}
	return nil
}

func (p *pass) drawMacroRoutes() error {
	if !p.s.MacroRoutes.Visible {
		return nil
	}
	p.pen = p.s.MacroRoutes.Pen
	for _, v := range p.vectorObjects(sector.VectorRoutes, style.BordersMask) {
		if err := p.drawVector(v); err != nil {
			return err
		}
	}
	return nil
}

// drawVectorName labels v at its name position.
func (p *pass) drawVectorName(v *sector.VectorObject, font graphics.Font, ls style.LabelStyle) {
	if v.Name == "" || !v.TransformedBounds().IntersectsWith(p.req.TileRect) {
		return
	}
	text := v.Name
	if ls.Uppercase {
		text = strings.ToUpper(text)
	}
	pos := v.NamePosition()
	g := p.g
	state := g.Save()
	defer g.Restore(state)
	g.TranslateTransform(pos.X, pos.Y)
	g.ScaleTransform(1/astrometrics.ParsecScaleX, 1/astrometrics.ParsecScaleY)
	g.RotateTransform(-ls.Rotation)
	drawMultiLine(g, text, font, p.brush, 0, 0, formatCenter)
}

func (p *pass) drawMacroNames() error {
	s := p.s
	if !s.MacroNames.Visible {
		return nil
	}
	mn := &s.MacroNames

	name := func(kind sector.VectorKind, rotation float64, colors *style.Element) {
		for _, v := range p.vectorObjects(kind, style.NamesMask) {
			major := style.MapOptions(v.Options).Has(style.NamesMajor)
			font := mn.SmallFont
			p.brush.Color = colors.TextHighlightColor
			if major {
				font = mn.Font
				p.brush.Color = colors.TextColor
			}
			p.drawVectorName(v, font, style.LabelStyle{Rotation: rotation, Uppercase: major})
		}
	}
	name(sector.VectorBorders, 0, mn)
	name(sector.VectorRifts, riftLabelRotation, mn)
	if s.MacroRoutes.Visible {
		name(sector.VectorRoutes, 0, &s.MacroRoutes)
	}

	if s.Options.Has(style.NamesMinor) {
		p.brush.Color = s.MacroRoutes.TextHighlightColor
		for _, l := range minorLabels {
			p.drawFixedLabel(l, mn.MediumFont)
		}
	}
	return nil
}

// drawFixedLabel draws a hard-coded label in point units.
func (p *pass) drawFixedLabel(l mapLabel, font graphics.Font) {
	g := p.g
	state := g.Save()
	defer g.Restore(state)
	g.TranslateTransform(l.x, l.y)
	g.ScaleTransform(1/astrometrics.ParsecScaleX, 1/astrometrics.ParsecScaleY)
	drawMultiLine(g, l.text, font, p.brush, 0, 0, formatCenter)
}

func (p *pass) drawMegaLabels() error {
	s := p.s
	if !s.MegaNames.Visible {
		return nil
	}
	p.brush.Color = s.MegaNames.TextColor
	for _, l := range megaLabels {
		font := s.MegaNames.Font
		if l.minor {
			font = s.MegaNames.SmallFont
		}
		p.drawFixedLabel(l, font)
	}
	return nil
}

// biasFormat anchors a capital's label on the side its bias points to.
func biasFormat(bx, by int) textFormat {
	row := 1
	switch {
	case by < 0:
		row = 2
	case by > 0:
		row = 0
	}
	col := 1
	switch {
	case bx > 0:
		col = 0
	case bx < 0:
		col = 2
	}
	return textFormat(row*3 + col)
}

// drawCapitals draws the dots and names of capitals and homeworlds at
// galaxy scale.
func (p *pass) drawCapitals() error {
	s := p.s
	if !s.Capitals.Visible || !s.Options.Any(style.WorldsMask) || p.req.Provider == nil {
		return nil
	}
	g := p.g
	dot := s.Capitals.Fill
	p.brush.Color = s.Capitals.TextColor
	for _, w := range p.req.Provider.MacroWorlds() {
		if w.Options&p.mapOptions() == 0 {
			continue
		}
		pt := w.Location.Coordinates()

		state := g.Save()
		g.TranslateTransform(float64(pt.X), float64(pt.Y))
		g.ScaleTransform(1/astrometrics.ParsecScaleX, 1/astrometrics.ParsecScaleY)

		pen := graphics.Pen{Color: dot, Width: s.Capitals.Pen.Width}
		brush := graphics.Brush{Color: dot}
		const r = capitalDotRadius
		g.DrawEllipse(&pen, &brush, astrometrics.RectangleF{X: -r / 2, Y: -r / 2, Width: r, Height: r})

		x, y := float64(w.LabelBiasX)*r/2, float64(w.LabelBiasY)*r/2
		drawMultiLine(g, w.Name, s.MacroNames.SmallFont, p.brush, x, y, biasFormat(w.LabelBiasX, w.LabelBiasY))
		g.Restore(state)
	}
	return nil
}
