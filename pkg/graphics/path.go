package graphics

import (
	"fmt"

	"github.com/travellermap/hexmap/pkg/astrometrics"
)

// PointType tags a vertex of a Path.
type PointType byte

const (
	// PointStart begins a new subpath (move-to).
	PointStart PointType = 0
	// PointLine draws a straight segment to the vertex (line-to).
	PointLine PointType = 1
	// PointBezier marks a cubic control point. No backend draws it.
	PointBezier PointType = 3
	// PointTypeMask isolates the point type from its flags.
	PointTypeMask PointType = 0x07
	// PointClose is a flag closing the subpath after the vertex.
	PointClose PointType = 0x80
)

// Kind returns the point type without flags.
func (t PointType) Kind() PointType { return t & PointTypeMask }

// Closes reports whether the close flag is set.
func (t PointType) Closes() bool { return t&PointClose != 0 }

// Path is a sequence of tagged vertices in world space. Points and Types have
// the same length.
type Path struct {
	Points []astrometrics.PointF
	Types  []PointType
}

// NewPath returns a path over the given vertices. It panics if the slices
// differ in length.
func NewPath(points []astrometrics.PointF, types []PointType) Path {
	if len(points) != len(types) {
		panic(fmt.Sprintf("graphics: path has %d points but %d types", len(points), len(types)))
	}
	return Path{Points: points, Types: types}
}

// Polygon returns a closed path through points.
func Polygon(points []astrometrics.PointF) Path {
	types := make([]PointType, len(points))
	for i := range types {
		types[i] = PointLine
	}
	if len(types) > 0 {
		types[0] = PointStart
		types[len(types)-1] |= PointClose
	}
	return Path{Points: points, Types: types}
}

// IsEmpty reports whether the path has no vertices.
func (p Path) IsEmpty() bool { return len(p.Points) == 0 }

// Bounds returns the bounding rectangle of the path's vertices.
func (p Path) Bounds() astrometrics.RectangleF {
	return astrometrics.BoundsOf(p.Points)
}

// Validate reports an error for point types no backend can draw.
func (p Path) Validate() error {
	if len(p.Points) != len(p.Types) {
		return fmt.Errorf("%w: %d points, %d types", ErrMalformedPath, len(p.Points), len(p.Types))
	}
	for i, t := range p.Types {
		switch t.Kind() {
		case PointStart, PointLine:
		default:
			return fmt.Errorf("%w: point %d has type %d", ErrUnsupportedPointType, i, t.Kind())
		}
	}
	return nil
}
