package borderpath

import "github.com/travellermap/hexmap/pkg/astrometrics"

// BorderCells converts a sector-relative hex path into walk cells. Hexes
// outside the sector are kept but marked invalid.
func BorderCells(sector astrometrics.Point, path []astrometrics.Hex) []Cell {
	cells := make([]Cell, len(path))
	for i, h := range path {
		cells[i] = Cell{
			Point: astrometrics.LocationToCoordinates(sector, h),
			Valid: h.IsValid(),
		}
	}
	return cells
}

// Border traces a sector-relative hex path.
func Border(sector astrometrics.Point, path []astrometrics.Hex, pathType astrometrics.PathType) Trace {
	return Walk(BorderCells(sector, path), pathType)
}

// SectorPerimeter returns the perimeter cells of a sector in global
// coordinates, clockwise from hex 0101.
func SectorPerimeter(sector astrometrics.Point) []Cell {
	const w, h = astrometrics.SectorWidth, astrometrics.SectorHeight
	b := astrometrics.SectorBounds(sector)
	cells := make([]Cell, 0, 2*(w+h))
	add := func(x, y int) {
		cells = append(cells, Cell{Point: astrometrics.Point{X: x + b.X, Y: y + b.Y}, Valid: true})
	}
	for x := 1; x <= w; x++ {
		add(x, 1)
	}
	for y := 2; y <= h; y++ {
		add(w, y)
	}
	for x := w - 1; x >= 1; x-- {
		add(x, h)
	}
	for y := h - 1; y >= 1; y-- {
		add(1, y)
	}
	return cells
}

// Clip is a sector outline suitable for clipping.
type Clip struct {
	Trace
	Bounds astrometrics.RectangleF
}

// SectorClip traces the outline of a whole sector.
func SectorClip(sector astrometrics.Point, pathType astrometrics.PathType) Clip {
	t := Walk(SectorPerimeter(sector), pathType)
	return Clip{Trace: t, Bounds: t.Bounds()}
}
