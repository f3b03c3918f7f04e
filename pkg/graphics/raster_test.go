package graphics

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/travellermap/hexmap/pkg/astrometrics"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
)

func rgbaAt(r *Raster, x, y int) color.RGBA {
	return color.RGBAModel.Convert(r.Image().At(x, y)).(color.RGBA)
}

func TestRasterFill(t *testing.T) {
	r := NewRaster(10, 10)
	defer r.Close()
	if r.Vector() {
		t.Error("Vector() should be false")
	}
	r.DrawRectangle(nil, &Brush{Color: red}, astrometrics.RectangleF{X: 2, Y: 2, Width: 4, Height: 4})
	if got := rgbaAt(r, 3, 3); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("inside = %v, want red", got)
	}
	if got := rgbaAt(r, 8, 8); got.A != 0 {
		t.Errorf("outside = %v, want transparent", got)
	}
}

func TestRasterTransparentBrushSkipped(t *testing.T) {
	r := NewRaster(4, 4)
	defer r.Close()
	r.DrawRectangle(nil, &Brush{}, astrometrics.RectangleF{Width: 4, Height: 4})
	if got := rgbaAt(r, 1, 1); got.A != 0 {
		t.Errorf("pixel = %v, want untouched", got)
	}
}

func TestRasterClipSaveRestore(t *testing.T) {
	r := NewRaster(10, 10)
	defer r.Close()
	full := astrometrics.RectangleF{Width: 10, Height: 10}

	s := r.Save()
	r.IntersectClipRect(astrometrics.RectangleF{Width: 5, Height: 10})
	r.DrawRectangle(nil, &Brush{Color: red}, full)
	r.Restore(s)

	if got := rgbaAt(r, 2, 5); got.R != 255 {
		t.Errorf("clipped-in pixel = %v, want red", got)
	}
	if got := rgbaAt(r, 7, 5); got.A != 0 {
		t.Errorf("clipped-out pixel = %v, want transparent", got)
	}

	r.DrawRectangle(nil, &Brush{Color: green}, full)
	if got := rgbaAt(r, 7, 5); got.G != 255 {
		t.Errorf("after restore pixel = %v, want green", got)
	}
}

func TestRasterClipPath(t *testing.T) {
	r := NewRaster(10, 10)
	defer r.Close()
	tri := Polygon([]astrometrics.PointF{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}})
	if err := r.IntersectClipPath(tri); err != nil {
		t.Fatal(err)
	}
	r.DrawRectangle(nil, &Brush{Color: red}, astrometrics.RectangleF{Width: 10, Height: 10})
	if got := rgbaAt(r, 1, 1); got.R != 255 {
		t.Errorf("inside triangle = %v, want red", got)
	}
	if got := rgbaAt(r, 8, 8); got.A != 0 {
		t.Errorf("outside triangle = %v, want transparent", got)
	}
}

func TestRasterTransform(t *testing.T) {
	r := NewRaster(10, 10)
	defer r.Close()
	r.TranslateTransform(5, 5)
	r.ScaleTransform(2, 2)
	r.DrawRectangle(nil, &Brush{Color: red}, astrometrics.RectangleF{Width: 1, Height: 1})
	if got := rgbaAt(r, 6, 6); got.R != 255 {
		t.Errorf("transformed pixel = %v, want red", got)
	}
	if got := rgbaAt(r, 4, 4); got.A != 0 {
		t.Errorf("pixel before origin = %v, want transparent", got)
	}
	if s := r.scale(); math.Abs(s-2) > 1e-9 {
		t.Errorf("scale = %v, want 2", s)
	}
}

func TestRasterMultiplyTransform(t *testing.T) {
	want := Identity().Translate(3, 4).Rotate(30).Scale(2, -1.5)
	r := NewRaster(1, 1)
	defer r.Close()
	r.MultiplyTransform(want)
	got := r.Transform()
	for _, pair := range [][2]float64{{got.A, want.A}, {got.B, want.B}, {got.C, want.C}, {got.D, want.D}, {got.E, want.E}, {got.F, want.F}} {
		if math.Abs(pair[0]-pair[1]) > 1e-9 {
			t.Fatalf("Transform() = %+v, want %+v", got, want)
		}
	}
}

func TestRasterRestoreNested(t *testing.T) {
	r := NewRaster(1, 1)
	defer r.Close()
	outer := r.Save()
	r.TranslateTransform(1, 1)
	r.Save()
	r.ScaleTransform(3, 3)
	r.Restore(outer)
	if m := r.Transform(); m != Identity() {
		t.Errorf("Transform() after restore = %+v, want identity", m)
	}
	if r.depth != 0 {
		t.Errorf("depth = %d, want 0", r.depth)
	}
}

func TestRasterText(t *testing.T) {
	r := NewRaster(64, 32)
	defer r.Close()
	f := Font{Family: "Arial", Size: 1, Style: FontBold}
	w, h := r.MeasureString("Regina", f)
	if w <= 0 || h <= 0 {
		t.Fatalf("MeasureString = %v,%v", w, h)
	}
	r.ScaleTransform(16, 16)
	r.DrawString("Regina", f, Brush{Color: red}, 2, 1, AlignCentered)

	var painted int
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if rgbaAt(r, x, y).A != 0 {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("no glyph pixels drawn")
	}
}

func TestRasterStrokeWidthScales(t *testing.T) {
	r := NewRaster(20, 20)
	defer r.Close()
	r.ScaleTransform(10, 10)
	r.DrawLine(Pen{Color: red, Width: 0.4}, 0, 1, 2, 1)
	// A 0.4 unit pen at scale 10 covers device rows 8..12.
	if got := rgbaAt(r, 10, 9); got.R != 255 {
		t.Errorf("pixel within stroke = %v, want red", got)
	}
	if got := rgbaAt(r, 10, 14); got.A != 0 {
		t.Errorf("pixel outside stroke = %v, want transparent", got)
	}
}

func TestRasterImage(t *testing.T) {
	src := NewRaster(2, 2)
	src.DrawRectangle(nil, &Brush{Color: green}, astrometrics.RectangleF{Width: 2, Height: 2})
	img := &Image{Name: "tile", Img: src.Image()}

	r := NewRaster(8, 8)
	defer r.Close()
	r.DrawImage(img, astrometrics.RectangleF{Width: 8, Height: 8})
	if got := rgbaAt(r, 4, 4); got.G != 255 {
		t.Errorf("blit pixel = %v, want green", got)
	}

	faded := NewRaster(8, 8)
	defer faded.Close()
	faded.DrawImageAlpha(0.5, img, astrometrics.RectangleF{Width: 8, Height: 8})
	if got := rgbaAt(faded, 4, 4); got.A < 100 || got.A > 156 {
		t.Errorf("faded alpha = %d, want about 128", got.A)
	}
}

func TestRasterDrawErrorFailsEncode(t *testing.T) {
	r := NewRaster(8, 8)
	defer r.Close()
	r.DrawString("Regina", Font{Family: "Arial", Size: 0.001}, Brush{Color: red}, 1, 1, AlignCentered)
	if err := r.Err(); err != nil {
		t.Fatalf("sub-pixel text recorded %v, want it skipped", err)
	}

	r.DrawImage(&Image{Name: "nebula", Img: image.NewRGBA(image.Rect(0, 0, 0, 0))}, astrometrics.RectangleF{Width: 8, Height: 8})
	r.DrawRectangle(nil, &Brush{Color: green}, astrometrics.RectangleF{Width: 8, Height: 8})
	if !errors.Is(r.Err(), ErrEmptyImage) {
		t.Fatalf("Err() = %v, want ErrEmptyImage", r.Err())
	}

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("EncodePNG = %v, want ErrEmptyImage", err)
	}
	if err := r.EncodeJPEG(&buf, 90); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("EncodeJPEG = %v, want ErrEmptyImage", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes after a failed draw", buf.Len())
	}
}
