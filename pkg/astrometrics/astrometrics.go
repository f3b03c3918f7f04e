package astrometrics

import "fmt"

// Sector and subsector dimensions, in parsecs.
const (
	SectorWidth     = 32
	SectorHeight    = 40
	SubsectorWidth  = 8
	SubsectorHeight = 10
)

// Parsecs are not square: the width:height ratio of a hex column is cos(30°).
const (
	ParsecScaleX = 0.8660254037844387
	ParsecScaleY = 1.0
)

var (
	// ReferenceSector is the sector containing the origin of global space.
	ReferenceSector = Point{X: 0, Y: 0}

	// ReferenceHex is the hex within ReferenceSector at global (0, 0).
	ReferenceHex = Hex{X: 1, Y: 40}

	// SectorCenter is the hex used to anchor sector-wide labels.
	SectorCenter = Hex{X: SectorWidth / 2, Y: SectorHeight / 2}
)

// Point is an integer pair. It addresses sectors in sector space and cells in
// global space.
type Point struct {
	X, Y int
}

// Offset returns p translated by d.
func (p Point) Offset(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Neighbor returns the global coordinate adjacent to p in the given
// direction (0..5, lower-left first, clockwise). It panics if direction is
// outside 0..5.
func (p Point) Neighbor(direction int) Point {
	c, r := p.X, p.Y
	// Column parity is opposite to Hex.Neighbor: the origin is in an odd column.
	odd := 1
	if c%2 != 0 {
		odd = 0
	}
	switch direction {
	case 0:
		r += 1 - odd
		c--
	case 1:
		r -= odd
		c--
	case 2:
		r--
	case 3:
		r -= odd
		c++
	case 4:
		r += 1 - odd
		c++
	case 5:
		r++
	default:
		panic(fmt.Sprintf("astrometrics: neighbor direction %d out of range", direction))
	}
	return Point{X: c, Y: r}
}

// PointF is a point in world space.
type PointF struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p PointF) Add(dx, dy float64) PointF {
	return PointF{X: p.X + dx, Y: p.Y + dy}
}

// Location is a hex within a specific sector.
type Location struct {
	Sector Point
	Hex    Hex
}

// Coordinates returns the global coordinate of the location.
func (l Location) Coordinates() Point {
	return LocationToCoordinates(l.Sector, l.Hex)
}

// Less orders locations by sector (x, then y) and then by hex.
func (l Location) Less(o Location) bool {
	if l.Sector.X != o.Sector.X {
		return l.Sector.X < o.Sector.X
	}
	if l.Sector.Y != o.Sector.Y {
		return l.Sector.Y < o.Sector.Y
	}
	return l.Hex.Less(o.Hex)
}

// String formats the location as "sx,sy XXYY".
func (l Location) String() string {
	return fmt.Sprintf("%d,%d %s", l.Sector.X, l.Sector.Y, l.Hex)
}

// LocationToCoordinates converts a sector address and hex to global space.
// Out-of-range hexes are converted with the same linear formula.
func LocationToCoordinates(sector Point, hex Hex) Point {
	return Point{
		X: (sector.X-ReferenceSector.X)*SectorWidth + (hex.X - ReferenceHex.X),
		Y: (sector.Y-ReferenceSector.Y)*SectorHeight + (hex.Y - ReferenceHex.Y),
	}
}

// CoordinatesToLocation is the exact inverse of LocationToCoordinates for
// valid hexes. The returned hex is always valid.
func CoordinatesToLocation(p Point) Location {
	x := p.X + ReferenceHex.X - 1
	y := p.Y + ReferenceHex.Y - 1

	var sector Point
	if x < 0 {
		sector.X = (x - (SectorWidth - 1)) / SectorWidth
	} else {
		sector.X = x / SectorWidth
	}
	if y < 0 {
		sector.Y = (y - (SectorHeight - 1)) / SectorHeight
	} else {
		sector.Y = y / SectorHeight
	}

	return Location{
		Sector: Point{X: sector.X + ReferenceSector.X, Y: sector.Y + ReferenceSector.Y},
		Hex: Hex{
			X: x - sector.X*SectorWidth + 1,
			Y: y - sector.Y*SectorHeight + 1,
		},
	}
}

// HexDistance returns the number of hex steps between two global coordinates.
func HexDistance(a, b Point) int {
	dx := b.X - a.X
	dy := b.Y - a.Y

	adx := dx
	if adx < 0 {
		adx = -adx
	}
	ody := dy + adx/2

	if a.X%2 == 0 && b.X%2 != 0 {
		ody++
	}

	return max(adx-ody, ody, adx)
}

// HexToCenter returns the world-space center of a global coordinate.
func HexToCenter(p Point) PointF {
	y := float64(p.Y)
	if p.X%2 == 0 {
		y -= 0.5
	}
	return PointF{X: float64(p.X) - 0.5, Y: y}
}

// SectorBounds returns the rectangle of global coordinates covered by a
// sector, as (left, top, width, height).
func SectorBounds(sector Point) Rectangle {
	return Rectangle{
		X:      sector.X*SectorWidth - ReferenceHex.X,
		Y:      sector.Y*SectorHeight - ReferenceHex.Y,
		Width:  SectorWidth,
		Height: SectorHeight,
	}
}

// SubsectorBounds returns the bounds of subsector index (0..15, A..P).
func SubsectorBounds(sector Point, index int) Rectangle {
	checkIndex("subsector", index, 16)
	b := SectorBounds(sector)
	return Rectangle{
		X:      b.X + SubsectorWidth*(index%4),
		Y:      b.Y + SubsectorHeight*(index/4),
		Width:  SubsectorWidth,
		Height: SubsectorHeight,
	}
}

// QuadrantBounds returns the bounds of quadrant index (0..3).
func QuadrantBounds(sector Point, index int) Rectangle {
	checkIndex("quadrant", index, 4)
	b := SectorBounds(sector)
	return Rectangle{
		X:      b.X + SubsectorWidth*2*(index%2),
		Y:      b.Y + SubsectorHeight*2*(index/2),
		Width:  SubsectorWidth * 2,
		Height: SubsectorHeight * 2,
	}
}

// SectorCenterCoordinates returns the global coordinate of a sector's
// central hex.
func SectorCenterCoordinates(sector Point) Point {
	return LocationToCoordinates(sector, SectorCenter)
}

// SubsectorCenter returns the global coordinate of the central hex of
// subsector index.
func SubsectorCenter(sector Point, index int) Point {
	checkIndex("subsector", index, 16)
	ssx, ssy := index%4, index/4
	return LocationToCoordinates(sector, Hex{
		X: SubsectorWidth * (2*ssx + 1) / 2,
		Y: SubsectorHeight * (2*ssy + 1) / 2,
	})
}

func checkIndex(what string, index, n int) {
	if index < 0 || index >= n {
		panic(fmt.Sprintf("astrometrics: %s index %d out of range [0,%d)", what, index, n))
	}
}

// ParsecToPixels returns the pixel size of one parsec horizontally and
// vertically at the given scale.
func ParsecToPixels(scale float64) (x, y float64) {
	return scale * ParsecScaleX, scale * ParsecScaleY
}
