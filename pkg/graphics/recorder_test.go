package graphics

import (
	"image/color"
	"slices"
	"strings"
	"testing"

	"github.com/travellermap/hexmap/pkg/astrometrics"
)

// scene issues one of every drawing call.
func scene(g Graphics) error {
	pen := Pen{Color: color.NRGBA{R: 200, A: 255}, Width: 0.25, Dash: DashDash}
	brush := Brush{Color: color.NRGBA{B: 200, A: 128}}
	hex := Polygon(astrometrics.HexOutline())

	s := g.Save()
	g.IntersectClipRect(astrometrics.RectangleF{X: -2, Y: -2, Width: 4, Height: 4})
	g.ScaleTransform(8, 8)
	g.TranslateTransform(1, 1)
	if err := g.DrawPath(&pen, &brush, hex); err != nil {
		return err
	}
	g.RotateTransform(15)
	g.MultiplyTransform(Identity().Scale(0.5, 0.5))
	g.DrawLine(pen, 0, 0, 1, 1)
	g.DrawLines(pen, []astrometrics.PointF{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}})
	g.DrawCurve(pen, []astrometrics.PointF{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}, 0.5)
	g.DrawClosedCurve(nil, &brush, []astrometrics.PointF{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}, 0.5)
	g.DrawEllipse(&pen, nil, astrometrics.RectangleF{Width: 1, Height: 1})
	g.DrawArc(pen, astrometrics.RectangleF{Width: 1, Height: 1}, 30, 120)
	g.Restore(s)

	g.DrawRectangle(nil, &brush, astrometrics.RectangleF{Width: 1, Height: 1})
	g.DrawImageAlpha(0.5, &Image{Name: "galaxy", URL: "res/galaxy.png"}, astrometrics.RectangleF{Width: 2, Height: 2})
	g.DrawString("Spinward Marches", Font{Family: "Arial", Size: 1.5}, Brush{Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}}, 4, 4, AlignTopCenter)
	return nil
}

func TestRecorderBackendEquivalence(t *testing.T) {
	raster := NewRecorder(NewRaster(64, 64))
	vector := NewRecorder(NewVector(64, 64))
	if err := scene(raster); err != nil {
		t.Fatalf("raster: %v", err)
	}
	if err := scene(vector); err != nil {
		t.Fatalf("vector: %v", err)
	}
	if raster.Vector() || !vector.Vector() {
		t.Error("recorders should report their inner backend kind")
	}
	if got, want := raster.String(), vector.String(); got != want {
		t.Errorf("operation logs differ\nraster:\n%s\nvector:\n%s", got, want)
	}
}

func TestRecorderOps(t *testing.T) {
	r := NewRecorder(nil)
	if err := scene(r); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"save", "clip-rect", "scale", "translate", "path", "rotate", "transform",
		"line", "lines", "curve", "closed-curve", "ellipse", "arc", "restore",
		"rectangle", "image-alpha", "text",
	}
	if got := r.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	ops := r.Ops()
	if got := ops[0].String(); got != "save 1" {
		t.Errorf("first op = %q", got)
	}
	if got := ops[1].Args; got != "rect(-2,-2,4,4)" {
		t.Errorf("clip-rect args = %q", got)
	}
	if got := ops[len(ops)-1].Args; !strings.HasPrefix(got, `"Spinward Marches" font("Arial",1.5,0) brush(#ffffffff) 4 4 topcenter`) {
		t.Errorf("text args = %q", got)
	}
	r.Reset()
	if len(r.Ops()) != 0 {
		t.Error("Reset should clear the log")
	}
}

func TestRecorderRejectsBezier(t *testing.T) {
	r := NewRecorder(nil)
	p := NewPath([]astrometrics.PointF{{}, {X: 1}}, []PointType{PointStart, PointBezier})
	if err := r.DrawPath(nil, &Brush{}, p); err == nil {
		t.Error("expected error")
	}
	if len(r.Ops()) != 0 {
		t.Error("rejected path should not be recorded")
	}
}

func TestRecorderNormalize(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{0.123456, "0.1235"},
		{-0.00001, "0"},
		{(*Pen)(nil), "nopen"},
		{Pen{Color: color.NRGBA{R: 1, A: 255}, Width: 0.5, Dash: DashCustom, DashPattern: []float64{2, 1}}, "pen(#010000ff,0.5,custom,2,1)"},
		{(*Brush)(nil), "nobrush"},
		{[]astrometrics.PointF{{X: 1, Y: 2}}, "[1,2]"},
	}
	for _, tt := range tests {
		if got := normalize(tt.v); got != tt.want {
			t.Errorf("normalize(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestVectorRecorder(t *testing.T) {
	r := NewVectorRecorder()
	if !r.Vector() {
		t.Error("NewVectorRecorder should report vector output")
	}
	w, h := r.MeasureString("Regina", Font{Family: "Arial", Size: 1})
	if w <= 0 || h <= 0 {
		t.Errorf("MeasureString = %v,%v", w, h)
	}
}
