// Package graphics defines the drawing surface used by the map renderer and
// its implementations.
//
// [Graphics] is an immediate-mode 2D interface with a transform stack, clip
// intersection, stroke and fill primitives, image blits and text. Three
// implementations are provided:
//
//   - [Raster] draws into an RGBA image through fogleman/gg
//   - [Vector] builds an SVG element tree, optimizes it and serializes it
//   - [Recorder] logs each call as a normalized operation and optionally
//     forwards it to another backend
//
// All coordinates are in the current user space. Angles are in degrees,
// clockwise in screen space, matching the transform stack of both backends.
package graphics

import (
	"image"
	"image/color"
	"math"

	"github.com/travellermap/hexmap/pkg/astrometrics"
)

// Graphics is the capability set shared by every drawing backend.
type Graphics interface {
	// Vector reports whether the backend produces vector output.
	Vector() bool

	ScaleTransform(sx, sy float64)
	TranslateTransform(dx, dy float64)
	RotateTransform(degrees float64)
	MultiplyTransform(m Matrix)

	IntersectClipRect(r astrometrics.RectangleF)
	IntersectClipPath(p Path) error

	DrawLine(pen Pen, x1, y1, x2, y2 float64)
	DrawLines(pen Pen, points []astrometrics.PointF)
	// DrawPath strokes the path with pen, fills it with brush, or both.
	// A nil argument skips that step.
	DrawPath(pen *Pen, brush *Brush, p Path) error
	DrawCurve(pen Pen, points []astrometrics.PointF, tension float64)
	// DrawClosedCurve strokes and/or fills a closed cardinal spline.
	DrawClosedCurve(pen *Pen, brush *Brush, points []astrometrics.PointF, tension float64)
	DrawRectangle(pen *Pen, brush *Brush, r astrometrics.RectangleF)
	DrawEllipse(pen *Pen, brush *Brush, r astrometrics.RectangleF)
	DrawArc(pen Pen, r astrometrics.RectangleF, startAngle, sweepAngle float64)

	DrawImage(img *Image, r astrometrics.RectangleF)
	DrawImageAlpha(alpha float64, img *Image, r astrometrics.RectangleF)

	MeasureString(text string, font Font) (width, height float64)
	DrawString(text string, font Font, brush Brush, x, y float64, align Alignment)

	// Save pushes the current transform and clip. Restore pops back to the
	// given state, discarding any states saved after it.
	Save() State
	Restore(s State)
}

// State identifies a saved graphics state.
type State int

// DashStyle selects a stroke pattern.
type DashStyle int

const (
	DashSolid DashStyle = iota
	DashDot
	DashDash
	DashDashDot
	DashDashDotDot
	DashCustom
)

func (d DashStyle) String() string {
	switch d {
	case DashSolid:
		return "solid"
	case DashDot:
		return "dot"
	case DashDash:
		return "dash"
	case DashDashDot:
		return "dashdot"
	case DashDashDotDot:
		return "dashdotdot"
	case DashCustom:
		return "custom"
	}
	return "unknown"
}

// Pattern returns the on/off lengths of the dash style for a pen of the
// given width, or nil for solid lines.
func (d DashStyle) Pattern(width float64, custom []float64) []float64 {
	switch d {
	case DashDot:
		return []float64{width, width}
	case DashDash:
		return []float64{3 * width, width}
	case DashDashDot:
		return []float64{3 * width, width, width, width}
	case DashDashDotDot:
		return []float64{3 * width, width, width, width, width, width}
	case DashCustom:
		out := make([]float64, len(custom))
		for i, v := range custom {
			out[i] = v * width
		}
		return out
	}
	return nil
}

// Pen describes a stroke.
type Pen struct {
	Color       color.NRGBA
	Width       float64
	Dash        DashStyle
	DashPattern []float64
}

// Brush describes a solid fill.
type Brush struct {
	Color color.NRGBA
}

// FontStyle is a set of style flags.
type FontStyle int

const (
	FontRegular   FontStyle = 0
	FontBold      FontStyle = 1
	FontItalic    FontStyle = 2
	FontUnderline FontStyle = 4
)

// Font names a face family, size in world units and style.
type Font struct {
	Family string
	Size   float64
	Style  FontStyle
}

// Alignment positions text relative to its anchor point.
type Alignment int

const (
	AlignBaseline Alignment = iota
	AlignCentered
	AlignTopLeft
	AlignTopCenter
	AlignTopRight
	AlignCenterLeft
)

func (a Alignment) String() string {
	switch a {
	case AlignBaseline:
		return "baseline"
	case AlignCentered:
		return "centered"
	case AlignTopLeft:
		return "topleft"
	case AlignTopCenter:
		return "topcenter"
	case AlignTopRight:
		return "topright"
	case AlignCenterLeft:
		return "centerleft"
	}
	return "unknown"
}

// anchors returns the fraction of the text width to shift left and the
// fraction of the ascent to shift the baseline down.
func (a Alignment) anchors() (ax, ay float64) {
	switch a {
	case AlignCentered:
		return 0.5, 0.5
	case AlignTopLeft:
		return 0, 1
	case AlignTopCenter:
		return 0.5, 1
	case AlignTopRight:
		return 1, 1
	case AlignCenterLeft:
		return 0, 0.5
	}
	return 0, 0
}

// ascent is the ascent of every font as a fraction of its size.
const ascent = 0.85

// Image is a bitmap resource. URL is used by vector output when set;
// otherwise the pixels are embedded.
type Image struct {
	Name string
	URL  string
	Img  image.Image
}

// Matrix is a 2D affine transform [A C E; B D F; 0 0 1].
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix { return Matrix{A: 1, D: 1} }

// Multiply returns m * n: n applied first, then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate returns m with a translation applied first.
func (m Matrix) Translate(dx, dy float64) Matrix {
	return m.Multiply(Matrix{A: 1, D: 1, E: dx, F: dy})
}

// Scale returns m with a scale applied first.
func (m Matrix) Scale(sx, sy float64) Matrix {
	return m.Multiply(Matrix{A: sx, D: sy})
}

// Rotate returns m with a rotation by degrees applied first.
func (m Matrix) Rotate(degrees float64) Matrix {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return m.Multiply(Matrix{A: c, B: s, C: -s, D: c})
}

// Apply transforms a point.
func (m Matrix) Apply(p astrometrics.PointF) astrometrics.PointF {
	return astrometrics.PointF{X: m.A*p.X + m.C*p.Y + m.E, Y: m.B*p.X + m.D*p.Y + m.F}
}

// Invert returns the inverse transform and whether m is invertible.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Matrix{}, false
	}
	return Matrix{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
		E: (m.C*m.F - m.D*m.E) / det,
		F: (m.B*m.E - m.A*m.F) / det,
	}, true
}

// IsEmptyColor reports whether c is the zero color, which backends treat as
// "do not draw".
func IsEmptyColor(c color.NRGBA) bool { return c.A == 0 }
