package graphics

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/fonts"
)

// Op is one recorded drawing call with its logical parameters normalized to
// text. Numbers are rounded to four decimals.
type Op struct {
	Name string
	Args string
}

func (o Op) String() string {
	if o.Args == "" {
		return o.Name
	}
	return o.Name + " " + o.Args
}

// Recorder logs every call made against it and forwards it to an optional
// inner backend. Two recorders wrapping different backends produce the same
// log for the same drawing sequence.
type Recorder struct {
	inner  Graphics
	vector bool
	ops    []Op
	states []State
	faces  *fonts.Cache
}

var _ Graphics = (*Recorder)(nil)

// NewRecorder wraps inner, which may be nil.
func NewRecorder(inner Graphics) *Recorder {
	r := &Recorder{inner: inner, faces: fonts.NewCache()}
	if inner != nil {
		r.vector = inner.Vector()
	}
	return r
}

// NewVectorRecorder returns a recorder with no inner backend that reports
// itself as a vector target.
func NewVectorRecorder() *Recorder {
	r := NewRecorder(nil)
	r.vector = true
	return r
}

// Ops returns the recorded operations.
func (r *Recorder) Ops() []Op { return r.ops }

// Names returns the recorded operation names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.ops))
	for i, op := range r.ops {
		names[i] = op.Name
	}
	return names
}

// Reset clears the log.
func (r *Recorder) Reset() { r.ops = r.ops[:0] }

func (r *Recorder) String() string {
	var b strings.Builder
	for _, op := range r.ops {
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Recorder) record(name string, args ...any) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = normalize(a)
	}
	r.ops = append(r.ops, Op{Name: name, Args: strings.Join(parts, " ")})
}

func normalize(v any) string {
	switch v := v.(type) {
	case float64:
		return fnum(v)
	case int:
		return strconv.Itoa(v)
	case string:
		return strconv.Quote(v)
	case color.NRGBA:
		return fmt.Sprintf("#%02x%02x%02x%02x", v.R, v.G, v.B, v.A)
	case *Pen:
		if v == nil {
			return "nopen"
		}
		return normalize(*v)
	case Pen:
		s := "pen(" + normalize(v.Color) + "," + fnum(v.Width) + "," + v.Dash.String()
		for _, d := range v.DashPattern {
			s += "," + fnum(d)
		}
		return s + ")"
	case *Brush:
		if v == nil {
			return "nobrush"
		}
		return normalize(*v)
	case Brush:
		return "brush(" + normalize(v.Color) + ")"
	case Font:
		return fmt.Sprintf("font(%q,%s,%d)", v.Family, fnum(v.Size), v.Style)
	case Alignment:
		return v.String()
	case astrometrics.RectangleF:
		return "rect(" + fnum(v.X) + "," + fnum(v.Y) + "," + fnum(v.Width) + "," + fnum(v.Height) + ")"
	case []astrometrics.PointF:
		parts := make([]string, len(v))
		for i, p := range v {
			parts[i] = fnum(p.X) + "," + fnum(p.Y)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case Path:
		parts := make([]string, len(v.Points))
		for i, p := range v.Points {
			parts[i] = strconv.Itoa(int(v.Types[i])) + ":" + fnum(p.X) + "," + fnum(p.Y)
		}
		return "path[" + strings.Join(parts, " ") + "]"
	case Matrix:
		return "matrix(" + strings.Join([]string{fnum(v.A), fnum(v.B), fnum(v.C), fnum(v.D), fnum(v.E), fnum(v.F)}, ",") + ")"
	case *Image:
		if v == nil {
			return "noimage"
		}
		return "image(" + strconv.Quote(v.Name) + ")"
	}
	return fmt.Sprint(v)
}

func fnum(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func (r *Recorder) Vector() bool { return r.vector }

func (r *Recorder) ScaleTransform(sx, sy float64) {
	r.record("scale", sx, sy)
	if r.inner != nil {
		r.inner.ScaleTransform(sx, sy)
	}
}

func (r *Recorder) TranslateTransform(dx, dy float64) {
	r.record("translate", dx, dy)
	if r.inner != nil {
		r.inner.TranslateTransform(dx, dy)
	}
}

func (r *Recorder) RotateTransform(degrees float64) {
	r.record("rotate", degrees)
	if r.inner != nil {
		r.inner.RotateTransform(degrees)
	}
}

func (r *Recorder) MultiplyTransform(m Matrix) {
	r.record("transform", m)
	if r.inner != nil {
		r.inner.MultiplyTransform(m)
	}
}

func (r *Recorder) IntersectClipRect(rect astrometrics.RectangleF) {
	r.record("clip-rect", rect)
	if r.inner != nil {
		r.inner.IntersectClipRect(rect)
	}
}

func (r *Recorder) IntersectClipPath(p Path) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.record("clip-path", p)
	if r.inner != nil {
		return r.inner.IntersectClipPath(p)
	}
	return nil
}

func (r *Recorder) DrawLine(pen Pen, x1, y1, x2, y2 float64) {
	r.record("line", pen, x1, y1, x2, y2)
	if r.inner != nil {
		r.inner.DrawLine(pen, x1, y1, x2, y2)
	}
}

func (r *Recorder) DrawLines(pen Pen, points []astrometrics.PointF) {
	r.record("lines", pen, points)
	if r.inner != nil {
		r.inner.DrawLines(pen, points)
	}
}

func (r *Recorder) DrawPath(pen *Pen, brush *Brush, p Path) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.record("path", pen, brush, p)
	if r.inner != nil {
		return r.inner.DrawPath(pen, brush, p)
	}
	return nil
}

func (r *Recorder) DrawCurve(pen Pen, points []astrometrics.PointF, tension float64) {
	r.record("curve", pen, points, tension)
	if r.inner != nil {
		r.inner.DrawCurve(pen, points, tension)
	}
}

func (r *Recorder) DrawClosedCurve(pen *Pen, brush *Brush, points []astrometrics.PointF, tension float64) {
	r.record("closed-curve", pen, brush, points, tension)
	if r.inner != nil {
		r.inner.DrawClosedCurve(pen, brush, points, tension)
	}
}

func (r *Recorder) DrawRectangle(pen *Pen, brush *Brush, rect astrometrics.RectangleF) {
	r.record("rectangle", pen, brush, rect)
	if r.inner != nil {
		r.inner.DrawRectangle(pen, brush, rect)
	}
}

func (r *Recorder) DrawEllipse(pen *Pen, brush *Brush, rect astrometrics.RectangleF) {
	r.record("ellipse", pen, brush, rect)
	if r.inner != nil {
		r.inner.DrawEllipse(pen, brush, rect)
	}
}

func (r *Recorder) DrawArc(pen Pen, rect astrometrics.RectangleF, startAngle, sweepAngle float64) {
	r.record("arc", pen, rect, startAngle, sweepAngle)
	if r.inner != nil {
		r.inner.DrawArc(pen, rect, startAngle, sweepAngle)
	}
}

func (r *Recorder) DrawImage(img *Image, rect astrometrics.RectangleF) {
	r.record("image", img, rect)
	if r.inner != nil {
		r.inner.DrawImage(img, rect)
	}
}

func (r *Recorder) DrawImageAlpha(alpha float64, img *Image, rect astrometrics.RectangleF) {
	r.record("image-alpha", alpha, img, rect)
	if r.inner != nil {
		r.inner.DrawImageAlpha(alpha, img, rect)
	}
}

// MeasureString is not recorded; it does not draw.
func (r *Recorder) MeasureString(text string, f Font) (float64, float64) {
	if r.inner != nil {
		return r.inner.MeasureString(text, f)
	}
	return measure(r.faces, text, f)
}

func (r *Recorder) DrawString(text string, f Font, brush Brush, x, y float64, align Alignment) {
	r.record("text", text, f, brush, x, y, align)
	if r.inner != nil {
		r.inner.DrawString(text, f, brush, x, y, align)
	}
}

func (r *Recorder) Save() State {
	var inner State
	if r.inner != nil {
		inner = r.inner.Save()
	}
	r.states = append(r.states, inner)
	s := State(len(r.states))
	r.record("save", int(s))
	return s
}

func (r *Recorder) Restore(s State) {
	n := int(s)
	if n < 1 || n > len(r.states) {
		return
	}
	r.record("restore", n)
	if r.inner != nil {
		r.inner.Restore(r.states[n-1])
	}
	r.states = r.states[:n-1]
}
