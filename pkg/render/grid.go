package render

import (
	"math"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/style"
)

// gridSlop extends grid lines past the tile so clipped ends never show.
const gridSlop = 10

// parsecSlop is the number of extra hex columns and rows drawn around the
// tile.
const parsecSlop = 1

func pointF(p astrometrics.Point) astrometrics.PointF {
	return astrometrics.PointF{X: float64(p.X), Y: float64(p.Y)}
}

func (p *pass) drawSectorGrid() error {
	s, rect := p.s, p.req.TileRect
	if !s.SectorGrid.Visible {
		return nil
	}
	p.pen = s.SectorGrid.Pen
	const w, h = astrometrics.SectorWidth, astrometrics.SectorHeight
	ref, refHex := astrometrics.ReferenceSector, astrometrics.ReferenceHex

	for x := (math.Floor(rect.Left()/w)-1-float64(ref.X))*w - float64(refHex.X); x <= rect.Right()+w; x += w {
		p.g.DrawLine(p.pen, x, rect.Top()-gridSlop, x, rect.Bottom()+gridSlop)
	}
	for y := (math.Floor(rect.Top()/h)-1-float64(ref.Y))*h - float64(refHex.Y); y <= rect.Bottom()+h; y += h {
		p.g.DrawLine(p.pen, rect.Left()-gridSlop, y, rect.Right()+gridSlop, y)
	}
	return nil
}

// drawSubsectorGrid draws subsector lines, skipping every fourth line
// where the sector grid already runs.
func (p *pass) drawSubsectorGrid() error {
	s, rect := p.s, p.req.TileRect
	if !s.SubsectorGrid.Visible {
		return nil
	}
	p.pen = s.SubsectorGrid.Pen
	const w, h = astrometrics.SubsectorWidth, astrometrics.SubsectorHeight
	ref, refHex := astrometrics.ReferenceSector, astrometrics.ReferenceHex

	hmin := int(math.Floor(rect.Left()/w)) - 1 - ref.X
	hmax := int(math.Ceil((rect.Right() + w + float64(refHex.X)) / w))
	for hi := hmin; hi <= hmax; hi++ {
		if hi%4 == 0 {
			continue
		}
		x := float64(hi*w - refHex.X)
		p.g.DrawLine(p.pen, x, rect.Top()-gridSlop, x, rect.Bottom()+gridSlop)
	}

	vmin := int(math.Floor(rect.Top()/h)) - 1 - ref.Y
	vmax := int(math.Ceil((rect.Bottom() + h + float64(refHex.Y)) / h))
	for vi := vmin; vi <= vmax; vi++ {
		if vi%4 == 0 {
			continue
		}
		y := float64(vi*h - refHex.Y)
		p.g.DrawLine(p.pen, rect.Left()-gridSlop, y, rect.Right()+gridSlop, y)
	}
	return nil
}

// parsecRange returns the hex columns and rows overlapping the tile.
func (p *pass) parsecRange() (x0, x1, y0, y1 int) {
	rect := p.req.TileRect
	hx, hw := int(math.Floor(rect.Left())), int(math.Ceil(rect.Width))
	hy, hh := int(math.Floor(rect.Top())), int(math.Ceil(rect.Height))
	return hx - parsecSlop, hx + hw + parsecSlop, hy - parsecSlop, hy + hh + parsecSlop
}

// columnOffset is the vertical shift of hex column px: even columns sit
// half a parsec lower.
func columnOffset(px int) float64 {
	if px%2 != 0 {
		return 0
	}
	return 0.5
}

func (p *pass) drawParsecGrid() error {
	s, g := p.s, p.g
	if !s.ParsecGrid.Visible {
		return nil
	}
	x0, x1, y0, y1 := p.parsecRange()
	p.pen = s.ParsecGrid.Pen

	switch s.HexStyle {
	case style.HexStyleSquare:
		const inset = 0.1
		for px := x0; px < x1; px++ {
			yOffset := columnOffset(px)
			for py := y0; py < y1; py++ {
				g.DrawRectangle(&p.pen, nil, astrometrics.RectangleF{
					X:      float64(px) + inset,
					Y:      float64(py) + inset + yOffset,
					Width:  1 - 2*inset,
					Height: 1 - 2*inset,
				})
			}
		}
	case style.HexStyleHex:
		edge := astrometrics.HexEdge
		points := make([]astrometrics.PointF, 4)
		for px := x0; px < x1; px++ {
			x, yOffset := float64(px), columnOffset(px)
			for py := y0; py < y1; py++ {
				y := float64(py) + yOffset
				points[0] = astrometrics.PointF{X: x - edge, Y: y + 0.5}
				points[1] = astrometrics.PointF{X: x + edge, Y: y + 1}
				points[2] = astrometrics.PointF{X: x + 1 - edge, Y: y + 1}
				points[3] = astrometrics.PointF{X: x + 1 + edge, Y: y + 0.5}
				g.DrawLines(p.pen, points)
			}
		}
	}

	if !s.NumberAllHexes || !s.WorldDetails.Has(style.DetailHex) {
		return nil
	}
	p.brush.Color = s.HexNumber.TextColor
	for px := x0; px < x1; px++ {
		yOffset := columnOffset(px)
		for py := y0; py < y1; py++ {
			loc := astrometrics.CoordinatesToLocation(astrometrics.Point{X: px + 1, Y: py + 1})
			state := g.Save()
			g.TranslateTransform(float64(px)+0.5, float64(py)+yOffset)
			g.ScaleTransform(s.HexContentScale/astrometrics.ParsecScaleX, s.HexContentScale/astrometrics.ParsecScaleY)
			g.DrawString(p.hexLabel(loc.Hex), s.HexNumber.Font, p.brush, 0, 0, graphics.AlignTopCenter)
			g.Restore(state)
		}
	}
	return nil
}

// hexLabel formats a hex number in the snapshot's coordinate style.
func (p *pass) hexLabel(h astrometrics.Hex) string {
	if p.s.HexCoordinateStyle == style.HexCoordinateSubsector {
		return h.SubsectorString()
	}
	return h.String()
}

func (p *pass) drawSubsectorNames() error {
	s := p.s
	if !s.SubsectorNames.Visible {
		return nil
	}
	p.brush.Color = s.SubsectorNames.TextColor
	for _, sec := range p.sectors() {
		for i, name := range sec.Subsectors {
			if name == "" {
				continue
			}
			p.drawLabel(name, pointF(sec.SubsectorCenter(i)), s.SubsectorNames.Font, p.brush, s.SubsectorNames.TextStyle)
		}
	}
	return nil
}

func (p *pass) drawSectorNames() error {
	s := p.s
	if !s.ShowSomeSectorNames && !s.ShowAllSectorNames {
		return nil
	}
	p.brush.Color = s.SectorName.TextColor
	for _, sec := range p.sectors() {
		if !s.ShowAllSectorNames && !sec.Selected {
			continue
		}
		name := sec.Name()
		if name == "" {
			continue
		}
		p.drawLabel(name, pointF(sec.Center()), s.SectorName.Font, p.brush, s.SectorName.TextStyle)
	}
	return nil
}
