package graphics

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/fonts"
)

// Raster is a Graphics backend drawing into an RGBA image through gg.
//
// gg applies its matrix to geometry and glyphs but not to line widths or
// dash lengths, so those are scaled here by the current transform.
type Raster struct {
	failure
	dc    *gg.Context
	depth int
	faces *fonts.Cache
}

var _ Graphics = (*Raster)(nil)

// NewRaster returns a transparent canvas of the given size in pixels.
func NewRaster(width, height int) *Raster {
	return NewRasterFor(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewRasterFor draws into an existing image.
func NewRasterFor(im *image.RGBA) *Raster {
	return &Raster{dc: gg.NewContextForRGBA(im), faces: fonts.NewCache()}
}

// Image returns the canvas.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the canvas as PNG. It fails without writing if a draw
// call failed.
func (r *Raster) EncodePNG(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	return r.dc.EncodePNG(w)
}

// EncodeJPEG writes the canvas as JPEG at the given quality (1..100). It
// fails without writing if a draw call failed.
func (r *Raster) EncodeJPEG(w io.Writer, quality int) error {
	if r.err != nil {
		return r.err
	}
	return jpeg.Encode(w, r.dc.Image(), &jpeg.Options{Quality: quality})
}

// Close releases cached font faces.
func (r *Raster) Close() error { return r.faces.Close() }

// Vector reports false.
func (r *Raster) Vector() bool { return false }

// Transform returns the current user-to-device transform.
func (r *Raster) Transform() Matrix {
	ox, oy := r.dc.TransformPoint(0, 0)
	xx, xy := r.dc.TransformPoint(1, 0)
	yx, yy := r.dc.TransformPoint(0, 1)
	return Matrix{A: xx - ox, B: xy - oy, C: yx - ox, D: yy - oy, E: ox, F: oy}
}

// scale is the factor by which the transform stretches lengths.
func (r *Raster) scale() float64 {
	m := r.Transform()
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

func (r *Raster) ScaleTransform(sx, sy float64) { r.dc.Scale(sx, sy) }

func (r *Raster) TranslateTransform(dx, dy float64) { r.dc.Translate(dx, dy) }

func (r *Raster) RotateTransform(degrees float64) { r.dc.Rotate(gg.Radians(degrees)) }

// MultiplyTransform decomposes m into translate, rotate, shear and scale,
// the operations gg exposes. Singular matrices are ignored.
func (r *Raster) MultiplyTransform(m Matrix) {
	sx := math.Hypot(m.A, m.B)
	if sx == 0 {
		return
	}
	theta := math.Atan2(m.B, m.A)
	s, c := math.Sincos(theta)
	shear := c*m.C + s*m.D
	sy := c*m.D - s*m.C
	if sy == 0 {
		return
	}
	r.dc.Translate(m.E, m.F)
	r.dc.Rotate(theta)
	r.dc.Shear(shear/sy, 0)
	r.dc.Scale(sx, sy)
}

func (r *Raster) IntersectClipRect(rect astrometrics.RectangleF) {
	r.dc.ClearPath()
	r.dc.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	r.dc.Clip()
}

func (r *Raster) IntersectClipPath(p Path) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.dc.ClearPath()
	r.trace(p)
	r.dc.Clip()
	return nil
}

func (r *Raster) trace(p Path) {
	for i, pt := range p.Points {
		t := p.Types[i]
		if t.Kind() == PointStart {
			r.dc.MoveTo(pt.X, pt.Y)
		} else {
			r.dc.LineTo(pt.X, pt.Y)
		}
		if t.Closes() {
			r.dc.ClosePath()
		}
	}
}

// finish fills and strokes the current path, then clears it.
func (r *Raster) finish(pen *Pen, brush *Brush) {
	if brush != nil && brush.Color.A != 0 {
		r.dc.SetColor(brush.Color)
		r.dc.FillPreserve()
	}
	if pen != nil && pen.Color.A != 0 {
		r.applyPen(*pen)
		r.dc.StrokePreserve()
	}
	r.dc.ClearPath()
}

// applyPen sets stroke state in device units. A zero width is drawn as a
// one pixel hairline.
func (r *Raster) applyPen(p Pen) {
	w := p.Width * r.scale()
	if w <= 0 {
		w = 1
	}
	r.dc.SetColor(p.Color)
	r.dc.SetLineWidth(w)
	r.dc.SetLineJoinRound()
	if pat := p.Dash.Pattern(w, p.DashPattern); len(pat) > 0 {
		r.dc.SetDash(pat...)
		r.dc.SetLineCapSquare()
	} else {
		r.dc.SetDash()
		r.dc.SetLineCapButt()
	}
}

func (r *Raster) DrawLine(pen Pen, x1, y1, x2, y2 float64) {
	r.dc.ClearPath()
	r.dc.DrawLine(x1, y1, x2, y2)
	r.finish(&pen, nil)
}

func (r *Raster) DrawLines(pen Pen, points []astrometrics.PointF) {
	if len(points) == 0 {
		return
	}
	r.dc.ClearPath()
	r.dc.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		r.dc.LineTo(pt.X, pt.Y)
	}
	r.finish(&pen, nil)
}

func (r *Raster) DrawPath(pen *Pen, brush *Brush, p Path) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.dc.ClearPath()
	r.trace(p)
	r.finish(pen, brush)
	return nil
}

func (r *Raster) curve(points []astrometrics.PointF, tension float64, closed bool) {
	r.dc.ClearPath()
	r.dc.MoveTo(points[0].X, points[0].Y)
	for _, c := range cardinal(points, tension, closed) {
		r.dc.CubicTo(c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.To.X, c.To.Y)
	}
	if closed {
		r.dc.ClosePath()
	}
}

func (r *Raster) DrawCurve(pen Pen, points []astrometrics.PointF, tension float64) {
	if len(points) < 2 {
		return
	}
	r.curve(points, tension, false)
	r.finish(&pen, nil)
}

func (r *Raster) DrawClosedCurve(pen *Pen, brush *Brush, points []astrometrics.PointF, tension float64) {
	if len(points) < 2 {
		return
	}
	r.curve(points, tension, true)
	r.finish(pen, brush)
}

func (r *Raster) DrawRectangle(pen *Pen, brush *Brush, rect astrometrics.RectangleF) {
	r.dc.ClearPath()
	r.dc.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	r.finish(pen, brush)
}

func (r *Raster) DrawEllipse(pen *Pen, brush *Brush, rect astrometrics.RectangleF) {
	r.dc.ClearPath()
	r.dc.DrawEllipse(rect.X+rect.Width/2, rect.Y+rect.Height/2, rect.Width/2, rect.Height/2)
	r.finish(pen, brush)
}

func (r *Raster) DrawArc(pen Pen, rect astrometrics.RectangleF, startAngle, sweepAngle float64) {
	r.dc.ClearPath()
	r.dc.NewSubPath()
	r.dc.DrawEllipticalArc(rect.X+rect.Width/2, rect.Y+rect.Height/2, rect.Width/2, rect.Height/2,
		gg.Radians(startAngle), gg.Radians(startAngle+sweepAngle))
	r.finish(&pen, nil)
}

func (r *Raster) DrawImage(img *Image, rect astrometrics.RectangleF) {
	r.drawImage(img, rect, 1)
}

func (r *Raster) DrawImageAlpha(alpha float64, img *Image, rect astrometrics.RectangleF) {
	r.drawImage(img, rect, alpha)
}

func (r *Raster) drawImage(img *Image, rect astrometrics.RectangleF, alpha float64) {
	if img == nil || img.Img == nil || alpha <= 0 {
		return
	}
	src := img.Img
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		r.fail(fmt.Errorf("%w: %s", ErrEmptyImage, img.Name))
		return
	}
	if alpha < 1 {
		faded := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		mask := image.NewUniform(color.Alpha{A: uint8(math.Round(alpha * 255))})
		draw.DrawMask(faded, faded.Bounds(), src, b.Min, mask, image.Point{}, draw.Src)
		src = faded
	}
	r.dc.Push()
	r.dc.Translate(rect.X, rect.Y)
	r.dc.Scale(rect.Width/float64(b.Dx()), rect.Height/float64(b.Dy()))
	r.dc.DrawImage(src, 0, 0)
	r.dc.Pop()
}

// minDeviceFontSize is the smallest face size, in pixels, worth drawing.
const minDeviceFontSize = 1.0 / 64

func (r *Raster) MeasureString(text string, f Font) (float64, float64) {
	return measure(r.faces, text, f)
}

// DrawString renders glyphs at device resolution: the face is built at the
// device size and drawn with the transform's scale factored out.
func (r *Raster) DrawString(text string, f Font, brush Brush, x, y float64, align Alignment) {
	if text == "" || f.Size <= 0 || brush.Color.A == 0 {
		return
	}
	s := r.scale()
	if s == 0 {
		return
	}
	if f.Size*s < minDeviceFontSize {
		return
	}
	face, err := r.faces.Face(faceKey(f, f.Size*s))
	if err != nil {
		r.fail(err)
		return
	}
	w, _ := r.MeasureString(text, f)
	ax, ay := align.anchors()
	x -= ax * w
	y += ay * ascent * f.Size

	r.dc.Push()
	r.dc.Scale(1/s, 1/s)
	r.dc.SetFontFace(face)
	r.dc.SetColor(brush.Color)
	r.dc.DrawString(text, x*s, y*s)
	r.dc.Pop()

	if f.Style&FontUnderline != 0 {
		pen := Pen{Color: brush.Color, Width: f.Size / 16}
		r.DrawLine(pen, x, y+f.Size/10, x+w, y+f.Size/10)
	}
}

func (r *Raster) Save() State {
	r.dc.Push()
	r.depth++
	return State(r.depth)
}

func (r *Raster) Restore(s State) {
	for r.depth >= int(s) && r.depth > 0 {
		r.dc.Pop()
		r.depth--
	}
}
