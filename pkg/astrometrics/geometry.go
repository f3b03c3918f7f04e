package astrometrics

import "math"

// Rectangle is an integer rectangle in global space.
type Rectangle struct {
	X, Y, Width, Height int
}

// Float converts r to a world-space rectangle.
func (r Rectangle) Float() RectangleF {
	return RectangleF{X: float64(r.X), Y: float64(r.Y), Width: float64(r.Width), Height: float64(r.Height)}
}

// RectangleF is a rectangle in world space.
type RectangleF struct {
	X, Y, Width, Height float64
}

func (r RectangleF) Left() float64   { return r.X }
func (r RectangleF) Top() float64    { return r.Y }
func (r RectangleF) Right() float64  { return r.X + r.Width }
func (r RectangleF) Bottom() float64 { return r.Y + r.Height }

// IsEmpty reports whether r has no area.
func (r RectangleF) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// IntersectsWith reports whether r and o overlap.
func (r RectangleF) IntersectsWith(o RectangleF) bool {
	return o.X < r.Right() && r.X < o.Right() && o.Y < r.Bottom() && r.Y < o.Bottom()
}

// Contains reports whether p lies inside r.
func (r RectangleF) Contains(p PointF) bool {
	return r.X <= p.X && p.X < r.Right() && r.Y <= p.Y && p.Y < r.Bottom()
}

// Inflate grows r by dx on the left and right and by dy on the top and bottom.
func (r RectangleF) Inflate(dx, dy float64) RectangleF {
	return RectangleF{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

// BoundsOf returns the smallest rectangle containing all points. It returns
// the zero rectangle for an empty slice.
func BoundsOf(points []PointF) RectangleF {
	if len(points) == 0 {
		return RectangleF{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return RectangleF{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// PathType selects the cell outline used when tracing borders.
type PathType int

const (
	PathHex PathType = iota
	PathSquare
	pathTypeCount
)

// PathTypeCount is the number of distinct PathType values.
const PathTypeCount = int(pathTypeCount)

func (t PathType) String() string {
	switch t {
	case PathHex:
		return "hex"
	case PathSquare:
		return "square"
	}
	return "unknown"
}

//	     1
//	 +-*------------*x+
//	 |/              \|
//	 /                \
//	/|                |\
//	* |                +x*  x = tan(pi/6) / 4
//	\|                |/
//	 \                /
//	 |\              /|
//	 +-*------------*-+
//
// HexEdge is the horizontal inset of a hexagon's upper and lower corners,
// in parsec units.
var HexEdge = math.Tan(math.Pi/6) / 4 / ParsecScaleX

var (
	hexEdgesX    = [6]float64{-0.5 + HexEdge, -0.5 - HexEdge, -0.5 + HexEdge, 0.5 - HexEdge, 0.5 + HexEdge, 0.5 - HexEdge}
	hexEdgesY    = [6]float64{0.5, 0, -0.5, -0.5, 0, 0.5}
	squareEdgesX = [6]float64{-0.5, -0.5, -0.5, 0.5, 0.5, 0.5}
	squareEdgesY = [6]float64{0.5, 0, -0.5, -0.5, 0, 0.5}
)

// HexEdges returns the corner offsets from a cell center for the given
// outline type.
func HexEdges(t PathType) (x, y [6]float64) {
	if t == PathSquare {
		return squareEdgesX, squareEdgesY
	}
	return hexEdgesX, hexEdgesY
}

// HexOutline returns the closed seven-point outline of a unit hexagon
// centered at the origin, starting and ending at the upper-left corner.
func HexOutline() []PointF {
	return []PointF{
		{-0.5 + HexEdge, -0.5},
		{0.5 - HexEdge, -0.5},
		{0.5 + HexEdge, 0},
		{0.5 - HexEdge, 0.5},
		{-0.5 + HexEdge, 0.5},
		{-0.5 - HexEdge, 0},
		{-0.5 + HexEdge, -0.5},
	}
}
