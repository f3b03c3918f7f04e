package render

import (
	"image/color"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/borderpath"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
	"github.com/travellermap/hexmap/pkg/stylesheet"
)

// borderFillAlpha is the opacity of filled border regions.
const borderFillAlpha = 64

// Shaded borders stroke a wide translucent band inside each outline.
const (
	borderShadeAlpha = 48
	borderShadeWidth = 0.25
)

// curveTension smooths curved borders.
const curveTension = 0.6

type borderLayer int

const (
	borderRegions borderLayer = iota
	borderFill
	borderShade
	borderStroke
)

func (p *pass) drawMicroBordersFill() error {
	if !p.s.MicroBorders.Visible {
		return nil
	}
	if err := p.drawMicroBorders(borderRegions); err != nil {
		return err
	}
	if !p.s.FillMicroBorders {
		return nil
	}
	return p.drawMicroBorders(borderFill)
}

func (p *pass) drawMicroBordersShade() error {
	if !p.s.MicroBorders.Visible || !p.s.ShadeMicroBorders {
		return nil
	}
	return p.drawMicroBorders(borderShade)
}

func (p *pass) drawMicroBordersStroke() error {
	if !p.s.MicroBorders.Visible {
		return nil
	}
	return p.drawMicroBorders(borderStroke)
}

// borderPathType returns the cell outline used for micro borders.
func (p *pass) borderPathType() astrometrics.PathType {
	if p.s.MicroBorderStyle == style.MicroBorderSquare {
		return astrometrics.PathSquare
	}
	return astrometrics.PathHex
}

// dashStyle maps a line style onto a pen dash. LineNone is filtered out by
// callers.
func dashStyle(ls sector.LineStyle) graphics.DashStyle {
	switch ls {
	case sector.LineDashed:
		return graphics.DashDash
	case sector.LineDotted:
		return graphics.DashDot
	}
	return graphics.DashSolid
}

func (p *pass) drawMicroBorders(layer borderLayer) error {
	s := p.s
	pathType := p.borderPathType()
	curved := s.MicroBorderStyle == style.MicroBorderCurve

	for _, sec := range p.sectors() {
		borders := sec.Borders
		if layer == borderRegions {
			borders = sec.Regions
		}
		if len(borders) == 0 {
			continue
		}
		if err := p.drawSectorBorders(sec, borders, layer, pathType, curved); err != nil {
			return err
		}
	}
	return nil
}

func (p *pass) drawSectorBorders(sec *sector.Sector, borders []*sector.Border, layer borderLayer, pathType astrometrics.PathType, curved bool) error {
	s, g := p.s, p.g
	state := g.Save()
	defer g.Restore(state)

	// Curves overshoot their cells, so clipping them to the sector looks
	// wrong everywhere except under a fill.
	if p.req.ClipOutsectorBorders && (layer == borderFill || !curved) {
		clip := sec.ClipPath(pathType)
		if !p.req.TileRect.IntersectsWith(clip.Bounds) {
			return nil
		}
		if err := g.IntersectClipPath(clip.Path); err != nil {
			return err
		}
	}

	for _, b := range borders {
		trace := b.Trace(sec.Location, pathType)
		if len(trace.Path.Points) == 0 {
			continue
		}
		ssr := sec.ApplyStylesheet("border", b.Allegiance)
		ls := sector.LineSolid
		if b.Style != nil {
			ls = *b.Style
		} else if v, ok := stylesheet.Enum(ssr, "style", sector.LineStyles); ok {
			ls = v
		}
		c := s.MicroBorders.Pen.Color
		if b.Color != nil {
			c = *b.Color
		} else if v, ok := ssr.Color("color"); ok {
			c = v
		}

		if layer == borderStroke && ls == sector.LineNone {
			continue
		}
		if s.Grayscale || !style.NoticeableDifference(c, s.BackgroundColor) {
			c = s.MicroBorders.Pen.Color
		}

		p.pen = s.MicroBorders.Pen
		p.pen.Color = c
		p.pen.Dash = dashStyle(ls)

		if curved {
			p.drawCurvedBorder(trace, layer, c)
			continue
		}
		if err := p.drawStraightBorder(trace.Path, layer, c); err != nil {
			return err
		}
	}
	return nil
}

// drawStraightBorder clips to the outline itself so that neighbouring
// borders do not paint over each other.
func (p *pass) drawStraightBorder(path graphics.Path, layer borderLayer, c color.NRGBA) error {
	g := p.g
	state := g.Save()
	defer g.Restore(state)
	if err := g.IntersectClipPath(path); err != nil {
		return err
	}
	switch layer {
	case borderRegions, borderFill:
		p.brush.Color = style.WithAlpha(borderFillAlpha, c)
		return g.DrawPath(nil, &p.brush, path)
	case borderShade:
		shade := graphics.Pen{Color: style.WithAlpha(borderShadeAlpha, c), Width: borderShadeWidth}
		return g.DrawPath(&shade, nil, path)
	}
	return g.DrawPath(&p.pen, nil, path)
}

func (p *pass) drawCurvedBorder(trace borderpath.Trace, layer borderLayer, c color.NRGBA) {
	g := p.g
	switch layer {
	case borderRegions, borderFill:
		p.brush.Color = style.WithAlpha(borderFillAlpha, c)
		g.DrawClosedCurve(nil, &p.brush, trace.Path.Points, curveTension)
		return
	case borderShade:
		shade := graphics.Pen{Color: style.WithAlpha(borderShadeAlpha, c), Width: borderShadeWidth}
		for _, seg := range trace.Curves {
			if seg.Closed {
				g.DrawClosedCurve(&shade, nil, seg.Points, curveTension)
			}
		}
		return
	}
	for _, seg := range trace.Curves {
		if seg.Closed {
			g.DrawClosedCurve(&p.pen, nil, seg.Points, curveTension)
		} else {
			g.DrawCurve(p.pen, seg.Points, curveTension)
		}
	}
}

// drawExplicitLabels draws border names and free-text sector labels.
func (p *pass) drawExplicitLabels() error {
	s := p.s
	if !s.ShowMicroNames {
		return nil
	}
	mb := &s.MicroBorders
	for _, sec := range p.sectors() {
		p.brush.Color = mb.TextColor
		for _, b := range append(sec.Borders[:len(sec.Borders):len(sec.Borders)], sec.Regions...) {
			if !b.ShowLabel {
				continue
			}
			label := b.DisplayLabel(sec)
			if label == "" {
				continue
			}
			pos := astrometrics.HexToCenter(astrometrics.LocationToCoordinates(sec.Location, b.LabelPosition()))
			if b.WrapLabel {
				label = wrapLabel(label)
			}
			p.drawLabel(label, pos, mb.Font, p.brush, mb.TextStyle)
		}

		for _, l := range sec.Labels {
			pos := astrometrics.HexToCenter(astrometrics.LocationToCoordinates(sec.Location, l.Hex))
			pos.Y -= l.OffsetY * 0.7

			font := mb.Font
			switch l.Size {
			case sector.LabelSmall:
				font = mb.SmallFont
			case sector.LabelLarge:
				font = mb.LargeFont
			}

			p.brush.Color = mb.TextColor
			if !s.Grayscale && l.Color != sector.DefaultLabelColor && style.NoticeableDifference(l.Color, s.BackgroundColor) {
				p.brush.Color = l.Color
			}
			p.drawLabel(l.Text, pos, font, p.brush, mb.TextStyle)
		}
	}
	return nil
}
