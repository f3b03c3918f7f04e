package graphics

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/travellermap/hexmap/pkg/astrometrics"
)

func TestPathBuilder(t *testing.T) {
	var b pathBuilder
	b.moveTo(0, 0)
	b.lineTo(1, 0)
	b.lineTo(1, 2)
	b.lineTo(2, 3)
	b.close()
	b.moveTo(5, 5)
	if got, want := b.String(), "M0,0h1v2l1,1Zm3,2"; got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-0.5, "-0.5"},
		{1.0 / 3, "0.33333"},
		{123456, "1.2346e+05"},
		{128.0 / 255, "0.50196"},
	}
	for _, tt := range tests {
		if got := num(tt.v); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestPathDataRejectsBezier(t *testing.T) {
	p := NewPath([]astrometrics.PointF{{}, {X: 1}}, []PointType{PointStart, PointBezier})
	if _, err := pathData(p); !errors.Is(err, ErrUnsupportedPointType) {
		t.Errorf("pathData = %v, want ErrUnsupportedPointType", err)
	}
	v := NewVector(10, 10)
	if err := v.DrawPath(&Pen{Width: 1}, nil, p); err == nil {
		t.Error("DrawPath should reject bezier points")
	}
	if err := v.IntersectClipPath(p); err == nil {
		t.Error("IntersectClipPath should reject bezier points")
	}
}

func TestApplyPen(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	tests := []struct {
		pen   Pen
		dash  string
		width string
	}{
		{Pen{Color: red, Width: 0.5}, "", "0.5"},
		{Pen{Color: red, Width: 0.5, Dash: DashDash}, "1 1", "0.5"},
		{Pen{Color: red, Width: 0.5, Dash: DashDot}, "0 1", "0.5"},
		{Pen{Color: red, Width: 0.5, Dash: DashDashDot}, "1 1 0 1", "0.5"},
		{Pen{Color: red, Width: 1, Dash: DashCustom, DashPattern: []float64{3, 1}}, "3 1", "1"},
	}
	for _, tt := range tests {
		e := newElement("path")
		e.applyPen(&tt.pen)
		if got, _ := e.get("stroke"); got != "rgb(255,0,0)" {
			t.Errorf("stroke = %q", got)
		}
		if got, _ := e.get("stroke-width"); got != tt.width {
			t.Errorf("stroke-width = %q, want %q", got, tt.width)
		}
		if got, _ := e.get("stroke-dasharray"); got != tt.dash {
			t.Errorf("%v dasharray = %q, want %q", tt.pen.Dash, got, tt.dash)
		}
	}
}

func TestSetColor(t *testing.T) {
	e := newElement("rect")
	e.setColor("fill", color.NRGBA{})
	if e.has("fill") {
		t.Error("transparent color should not be written")
	}
	e.setColor("fill", color.NRGBA{R: 1, G: 2, B: 3, A: 128})
	if got, _ := e.get("fill"); got != "rgba(1,2,3,0.50196)" {
		t.Errorf("fill = %q", got)
	}
}

func TestOptimize(t *testing.T) {
	root := newElement("g")
	root.set("fill", "none")
	outer := root.append(newElement("g"))
	outer.set("transform", "translate(1,2)")
	inner := outer.append(newElement("g"))
	inner.set("transform", "scale(2 2)")
	rect := inner.append(newElement("rect"))
	rect.set("fill", "rgb(1,2,3)")
	root.append(newElement("g"))
	bare := root.append(newElement("g"))
	bare.append(newElement("line"))
	bare.append(newElement("circle"))

	if err := optimize(root, true); err != nil {
		t.Fatal(err)
	}
	if len(root.children) != 3 {
		t.Fatalf("root has %d children, want 3", len(root.children))
	}
	got := root.children[0]
	if got.name != "rect" {
		t.Fatalf("folded element = <%s>, want <rect>", got.name)
	}
	if tr, _ := got.get("transform"); tr != "translate(1,2) scale(2 2)" {
		t.Errorf("transform = %q", tr)
	}
	if root.children[1].name != "line" || root.children[2].name != "circle" {
		t.Errorf("bare group not flattened: %s %s", root.children[1].name, root.children[2].name)
	}
	if root.name != "g" {
		t.Error("root must not be folded")
	}
}

func TestOptimizeKeepsNestedClips(t *testing.T) {
	root := newElement("g")
	a := root.append(newElement("g"))
	a.set("clip-path", "url(#did1)")
	b := a.append(newElement("g"))
	b.set("clip-path", "url(#did2)")
	b.append(newElement("rect"))
	b.append(newElement("rect"))

	if err := optimize(root, true); err != nil {
		t.Fatal(err)
	}
	if len(root.children) != 1 || root.children[0] != a {
		t.Fatal("outer clip group should remain")
	}
	if len(a.children) != 1 || a.children[0] != b {
		t.Fatal("inner clip group should remain a separate element")
	}
	if v, _ := a.get("clip-path"); v != "url(#did1)" {
		t.Errorf("outer clip-path = %q", v)
	}
}

func TestOptimizeKeepsClipOutsideTransform(t *testing.T) {
	v := NewVector(100, 20)
	s := v.Save()
	v.IntersectClipRect(astrometrics.RectangleF{X: 0, Y: 0, Width: 10, Height: 10})
	v.TranslateTransform(50, 0)
	v.DrawRectangle(nil, &Brush{Color: color.NRGBA{R: 255, A: 255}}, astrometrics.RectangleF{X: -50, Y: 0, Width: 10, Height: 10})
	v.Restore(s)

	out, err := v.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	doc := string(out)
	want := `<g clip-path="url(#did1)"><rect transform="translate(50,0)" x="-50"`
	if !strings.Contains(doc, want) {
		t.Errorf("clip-path moved under the transform:\n%s\nwant substring %s", doc, want)
	}
	if strings.Contains(doc, `clip-path="url(#did1)" transform=`) {
		t.Errorf("clip-path and transform share an element:\n%s", doc)
	}
}

func TestOptimizeConflict(t *testing.T) {
	root := newElement("g")
	g := root.append(newElement("g"))
	g.set("opacity", "0.5")
	c := g.append(newElement("image"))
	c.set("opacity", "0.25")
	if err := optimize(root, true); !errors.Is(err, ErrAttributeConflict) {
		t.Errorf("optimize = %v, want ErrAttributeConflict", err)
	}
}

func TestVectorDocument(t *testing.T) {
	v := NewVector(256, 128)
	if !v.Vector() {
		t.Error("Vector() should be true")
	}
	s := v.Save()
	v.IntersectClipRect(astrometrics.RectangleF{X: 0, Y: 0, Width: 10, Height: 10})
	v.TranslateTransform(5, 5)
	v.DrawRectangle(nil, &Brush{Color: color.NRGBA{R: 255, A: 255}}, astrometrics.RectangleF{Width: 1, Height: 1})
	v.Restore(s)
	v.DrawLine(Pen{Color: color.NRGBA{A: 255}, Width: 1}, 0, 0, 1, 1)
	v.DrawString("Regina & <Efate>", Font{Family: "Arial", Size: 2, Style: FontBold}, Brush{Color: color.NRGBA{G: 255, A: 255}}, 3, 4, AlignCentered)

	out, err := v.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	doc := string(out)
	for _, want := range []string{
		`<?xml version="1.0" encoding="utf-8"?>`,
		`width="256" height="128"`,
		`<defs><clipPath id="did1"><rect x="0" y="0" width="10" height="10"/></clipPath></defs>`,
		`<g fill="none" stroke="none">`,
		`<g clip-path="url(#did1)"><rect transform="translate(5,5)" x="0" y="0" width="1" height="1" fill="rgb(255,0,0)"/></g>`,
		`<line x1="0" y1="0" x2="1" y2="1" stroke="rgb(0,0,0)" stroke-width="1"/>`,
		`text-anchor="middle"`,
		`font-weight="bold"`,
		`y="4.85"`,
		`Regina &amp; &lt;Efate&gt;</text>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q\n%s", want, doc)
		}
	}
	if !strings.HasSuffix(doc, "</svg>") {
		t.Error("document should end with </svg>")
	}
}

func TestVectorNoDefsWithoutClip(t *testing.T) {
	v := NewVector(1, 1)
	v.DrawEllipse(&Pen{Color: color.NRGBA{A: 255}, Width: 1}, nil, astrometrics.RectangleF{Width: 2, Height: 2})
	v.DrawEllipse(nil, &Brush{Color: color.NRGBA{A: 255}}, astrometrics.RectangleF{Width: 2, Height: 4})
	out, err := v.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	doc := string(out)
	if strings.Contains(doc, "<defs") {
		t.Error("unexpected <defs> without clips")
	}
	if !strings.Contains(doc, `<circle r="1" cx="1" cy="1"`) || !strings.Contains(doc, `<ellipse rx="1" ry="2" cx="1" cy="2"`) {
		t.Errorf("unexpected shapes:\n%s", doc)
	}
}

func TestVectorCurvesAndArcs(t *testing.T) {
	v := NewVector(1, 1)
	pen := Pen{Color: color.NRGBA{A: 255}, Width: 1}
	v.DrawCurve(pen, []astrometrics.PointF{{X: 0, Y: 0}, {X: 3, Y: 0}}, 0)
	v.DrawClosedCurve(&pen, nil, []astrometrics.PointF{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}}, 0.5)
	v.DrawArc(pen, astrometrics.RectangleF{Width: 2, Height: 2}, 0, 90)
	out, err := v.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	doc := string(out)
	if !strings.Contains(doc, `d="M0,0c1,0,2,0,3,0"`) {
		t.Errorf("open curve path missing:\n%s", doc)
	}
	if !strings.Contains(doc, `Z"`) {
		t.Error("closed curve should end with Z")
	}
	if !strings.Contains(doc, `d="M2,1a1,1,0,0,1,-1,1"`) {
		t.Errorf("arc path missing:\n%s", doc)
	}
}

func TestVectorImages(t *testing.T) {
	v := NewVector(1, 1)
	v.DrawImage(&Image{Name: "nebula", URL: "res/nebula.png"}, astrometrics.RectangleF{Width: 4, Height: 4})
	v.DrawImageAlpha(0.5, &Image{Name: "galaxy", Img: image.NewNRGBA(image.Rect(0, 0, 1, 1))}, astrometrics.RectangleF{Width: 2, Height: 2})
	v.DrawImage(nil, astrometrics.RectangleF{})
	out, err := v.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	doc := string(out)
	if !strings.Contains(doc, `xlink:href="res/nebula.png"`) {
		t.Error("missing image URL")
	}
	if !strings.Contains(doc, `opacity="0.5" xlink:href="data:image/png;base64,`) {
		t.Errorf("missing embedded image:\n%s", doc)
	}
}

func TestVectorDrawErrorFailsSerialize(t *testing.T) {
	v := NewVector(4, 4)
	v.DrawImage(&Image{Name: "galaxy", Img: image.NewNRGBA(image.Rect(0, 0, 0, 0))}, astrometrics.RectangleF{Width: 4, Height: 4})
	v.DrawLine(Pen{Color: color.NRGBA{A: 255}, Width: 1}, 0, 0, 1, 1)

	out, err := v.Bytes()
	if !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("Bytes() error = %v, want ErrEmptyImage", err)
	}
	if out != nil {
		t.Errorf("Bytes() returned %d bytes alongside an error", len(out))
	}
}

func TestVectorRestoreDiscardsNested(t *testing.T) {
	v := NewVector(1, 1)
	outer := v.Save()
	v.Save()
	v.ScaleTransform(2, 2)
	v.Restore(outer)
	if len(v.stack) != 1 {
		t.Errorf("stack depth = %d after restoring outer state, want 1", len(v.stack))
	}
	v.Restore(outer)
	if len(v.stack) != 1 {
		t.Error("restoring a stale state should be a no-op")
	}
}
