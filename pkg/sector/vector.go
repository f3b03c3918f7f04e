package sector

import (
	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/graphics"
)

// VectorKind selects a family of galaxy-scale vector objects.
type VectorKind int

const (
	VectorBorders VectorKind = iota
	VectorRifts
	VectorRoutes
)

func (k VectorKind) String() string {
	switch k {
	case VectorBorders:
		return "borders"
	case VectorRifts:
		return "rifts"
	case VectorRoutes:
		return "routes"
	}
	return "unknown"
}

// VectorObject is a macro border, rift or route outline drawn at low zoom.
// Points are in the object's own space; ScaleX/ScaleY and OriginX/OriginY
// map them to world space.
type VectorObject struct {
	Name             string
	OriginX, OriginY float64
	ScaleX, ScaleY   float64
	// NameX and NameY offset the label from the center of the bounds, in
	// object units.
	NameX, NameY float64

	// Options is a bitmask of style.MapOptions selecting when the object is
	// drawn (border class) and named (name class).
	Options uint32

	Points []astrometrics.PointF
	// Types may be nil: the path then starts at the first point and draws
	// straight segments through the rest.
	Types []graphics.PointType
}

// Path returns the object's outline.
func (v *VectorObject) Path() graphics.Path {
	if v.Types != nil {
		return graphics.NewPath(v.Points, v.Types)
	}
	types := make([]graphics.PointType, len(v.Points))
	for i := 1; i < len(types); i++ {
		types[i] = graphics.PointLine
	}
	return graphics.NewPath(v.Points, types)
}

// Bounds returns the bounds of the points in object space.
func (v *VectorObject) Bounds() astrometrics.RectangleF {
	return astrometrics.BoundsOf(v.Points)
}

// TransformedBounds returns the bounds in world space, normalized to a
// non-negative size.
func (v *VectorObject) TransformedBounds() astrometrics.RectangleF {
	b := v.Bounds()
	b.X = (b.X - v.OriginX) * v.ScaleX
	b.Y = (b.Y - v.OriginY) * v.ScaleY
	b.Width *= v.ScaleX
	b.Height *= v.ScaleY
	if b.Width < 0 {
		b.X += b.Width
		b.Width = -b.Width
	}
	if b.Height < 0 {
		b.Y += b.Height
		b.Height = -b.Height
	}
	return b
}

// NamePosition returns the world-space anchor of the object's name.
func (v *VectorObject) NamePosition() astrometrics.PointF {
	b := v.Bounds()
	t := v.TransformedBounds()
	c := astrometrics.PointF{X: t.X + t.Width/2, Y: t.Y + t.Height/2}
	if b.Width != 0 {
		c.X += t.Width * (v.NameX / b.Width)
	}
	if b.Height != 0 {
		c.Y += t.Height * (v.NameY / b.Height)
	}
	return c
}

// MacroWorld is a capital or homeworld shown at galaxy scale.
type MacroWorld struct {
	Name     string
	Location astrometrics.Location
	// Options is a bitmask of style.MapOptions; the world is drawn when it
	// shares a bit with the render options.
	Options uint32
	// LabelBiasX and LabelBiasY (-1, 0 or 1) place the label relative to
	// the dot. Both default to 1 (below right).
	LabelBiasX, LabelBiasY int
}
