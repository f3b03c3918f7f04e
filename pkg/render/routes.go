package render

import (
	"math"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
	"github.com/travellermap/hexmap/pkg/stylesheet"
)

// offsetSegment pulls both ends of a segment toward each other by d.
func offsetSegment(start, end astrometrics.PointF, d float64) (astrometrics.PointF, astrometrics.PointF) {
	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return start, end
	}
	ddx, ddy := dx*d/length, dy*d/length
	return start.Add(ddx, ddy), end.Add(-ddx, -ddy)
}

// drawRoutes draws sector-scale routes between worlds. Explicit route
// values win over the sector stylesheet, which wins over the theme.
func (p *pass) drawRoutes() error {
	s, g := p.s, p.g
	if !s.MicroRoutes.Visible {
		return nil
	}
	base := s.MicroRoutes.Pen
	for _, sr := range p.sel.Routes() {
		sec, r := sr.Sector, sr.Route
		start, end := sec.RouteEndpoints(r)
		if start == end {
			continue
		}
		// Dashes only line up when a route drawn from both sectors runs the
		// same way.
		if end.Less(start) {
			start, end = end, start
		}
		a := astrometrics.HexToCenter(start.Coordinates())
		b := astrometrics.HexToCenter(end.Coordinates())
		a, b = offsetSegment(a, b, s.RouteEndAdjust)

		ssr := sec.ApplyStylesheet("route", r.StyleCode())

		ls := s.OverrideLineStyle
		if ls == nil {
			ls = r.Style
		}
		if ls == nil {
			if v, ok := stylesheet.Enum(ssr, "style", sector.LineStyles); ok {
				ls = &v
			}
		}
		c := r.Color
		if c == nil {
			if v, ok := ssr.Color("color"); ok {
				c = &v
			}
		}
		width := 1.0
		if r.Width != nil {
			width = *r.Width
		} else if v, ok := ssr.Number("width"); ok {
			width = v
		}

		// Grayscale loses the default colors, so default routes dash instead.
		if s.Grayscale && c == nil && ls == nil {
			dashed := sector.LineDashed
			ls = &dashed
		}
		lineStyle := sector.LineSolid
		if ls != nil {
			lineStyle = *ls
		}
		routeColor := base.Color
		if c != nil && !s.Grayscale && style.NoticeableDifference(*c, s.BackgroundColor) {
			routeColor = *c
		}
		if lineStyle == sector.LineNone {
			continue
		}

		p.pen = base
		p.pen.Color = routeColor
		p.pen.Width = width * base.Width
		p.pen.Dash = dashStyle(lineStyle)
		g.DrawLine(p.pen, a.X, a.Y, b.X, b.Y)
	}
	return nil
}
