package graphics

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"strconv"
	"strings"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/fonts"
)

// SVGContentType is the media type of Vector output.
const SVGContentType = "image/svg+xml"

type attr struct {
	key, value string
}

// element is a node of the SVG tree. Attributes keep insertion order so
// output is deterministic.
type element struct {
	name     string
	content  string
	attrs    []attr
	children []*element
}

func newElement(name string) *element { return &element{name: name} }

func (e *element) append(child *element) *element {
	e.children = append(e.children, child)
	return child
}

func (e *element) has(key string) bool {
	_, ok := e.get(key)
	return ok
}

func (e *element) get(key string) (string, bool) {
	for _, a := range e.attrs {
		if a.key == key {
			return a.value, true
		}
	}
	return "", false
}

func (e *element) set(key, value string) {
	for i := range e.attrs {
		if e.attrs[i].key == key {
			e.attrs[i].value = value
			return
		}
	}
	e.attrs = append(e.attrs, attr{key, value})
}

func (e *element) setNum(key string, v float64) { e.set(key, num(v)) }

// setColor leaves transparent colors unset so they inherit "none" from the root.
func (e *element) setColor(key string, c color.NRGBA) {
	switch {
	case c.A == 0:
	case c.A < 255:
		e.set(key, fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, num(float64(c.A)/255)))
	default:
		e.set(key, fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B))
	}
}

func (e *element) applyPen(p *Pen) {
	if p == nil {
		return
	}
	e.setColor("stroke", p.Color)
	e.setNum("stroke-width", p.Width)
	d := num2(p.Width * 2)
	switch p.Dash {
	case DashDot:
		e.set("stroke-linecap", "square")
		e.set("stroke-dasharray", "0 "+d)
	case DashDash:
		e.set("stroke-linecap", "square")
		e.set("stroke-dasharray", d+" "+d)
	case DashDashDot:
		e.set("stroke-linecap", "square")
		e.set("stroke-dasharray", d+" "+d+" 0 "+d)
	case DashDashDotDot:
		e.set("stroke-linecap", "square")
		e.set("stroke-dasharray", d+" "+d+" 0 "+d+" 0 "+d)
	case DashCustom:
		parts := make([]string, len(p.DashPattern))
		for i, v := range p.Dash.Pattern(p.Width, p.DashPattern) {
			parts[i] = num(v)
		}
		e.set("stroke-dasharray", strings.Join(parts, " "))
	}
}

func (e *element) applyBrush(b *Brush) {
	if b == nil {
		return
	}
	e.setColor("fill", b.Color)
}

func (e *element) count() int {
	n := 1
	for _, c := range e.children {
		n += c.count()
	}
	return n
}

func (e *element) serialize(w *bufio.Writer) {
	w.WriteByte('<')
	w.WriteString(e.name)
	for _, a := range e.attrs {
		w.WriteByte(' ')
		w.WriteString(a.key)
		w.WriteString(`="`)
		xml.EscapeText(w, []byte(a.value))
		w.WriteByte('"')
	}
	content := strings.TrimSpace(e.content) != ""
	if len(e.children) == 0 && !content {
		w.WriteString("/>")
		return
	}
	w.WriteByte('>')
	for _, c := range e.children {
		c.serialize(w)
	}
	if content {
		xml.EscapeText(w, []byte(e.content))
	}
	w.WriteString("</")
	w.WriteString(e.name)
	w.WriteByte('>')
}

// optimize simplifies the subtree rooted at e:
//   - groups without children are removed
//   - groups without attributes are replaced by their children
//   - a group with a single child is folded into it, concatenating
//     transforms, unless both carry a clip-path or the group's clip-path
//     would move under the child's transform
//
// The document root is never folded.
func optimize(e *element, root bool) error {
	for _, c := range e.children {
		if err := optimize(c, false); err != nil {
			return err
		}
	}

	kept := e.children[:0]
	for _, c := range e.children {
		if c.name == "g" && len(c.children) == 0 {
			continue
		}
		kept = append(kept, c)
	}
	e.children = kept

	var flat []*element
	for _, c := range e.children {
		if c.name == "g" && len(c.attrs) == 0 {
			flat = append(flat, c.children...)
		} else {
			flat = append(flat, c)
		}
	}
	e.children = flat

	if root || e.name != "g" || len(e.children) != 1 {
		return nil
	}
	child := e.children[0]
	if e.has("clip-path") && (child.has("clip-path") || child.has("transform")) {
		return nil
	}
	for _, a := range child.attrs {
		if v, ok := e.get(a.key); ok {
			if a.key != "transform" {
				return fmt.Errorf("%w: %s on <%s>", ErrAttributeConflict, a.key, child.name)
			}
			e.set(a.key, v+" "+a.value)
			continue
		}
		e.set(a.key, a.value)
	}
	e.name = child.name
	e.children = child.children
	e.content = child.content
	return nil
}

// num formats v with five significant digits.
func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 5, 64)
}

func num2(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 2, 64)
}

// pathBuilder writes SVG path data using relative commands after the first.
type pathBuilder struct {
	b            strings.Builder
	lastX, lastY float64
	used         bool
}

func (p *pathBuilder) String() string { return strings.TrimSpace(p.b.String()) }

func (p *pathBuilder) moveTo(x, y float64) {
	if !p.used {
		fmt.Fprintf(&p.b, "M%s,%s", num(x), num(y))
		p.used = true
	} else {
		fmt.Fprintf(&p.b, "m%s,%s", num(x-p.lastX), num(y-p.lastY))
	}
	p.lastX, p.lastY = x, y
}

func (p *pathBuilder) lineTo(x, y float64) {
	switch {
	case !p.used:
		fmt.Fprintf(&p.b, "L%s,%s", num(x), num(y))
		p.used = true
	case x == p.lastX:
		fmt.Fprintf(&p.b, "v%s", num(y-p.lastY))
	case y == p.lastY:
		fmt.Fprintf(&p.b, "h%s", num(x-p.lastX))
	default:
		fmt.Fprintf(&p.b, "l%s,%s", num(x-p.lastX), num(y-p.lastY))
	}
	p.lastX, p.lastY = x, y
}

func (p *pathBuilder) arcTo(rx, ry, phi float64, large, sweep int, x, y float64) {
	if !p.used {
		fmt.Fprintf(&p.b, "A%s,%s,%s,%d,%d,%s,%s", num(rx), num(ry), num(phi), large, sweep, num(x), num(y))
		p.used = true
	} else {
		fmt.Fprintf(&p.b, "a%s,%s,%s,%d,%d,%s,%s", num(rx), num(ry), num(phi), large, sweep, num(x-p.lastX), num(y-p.lastY))
	}
	p.lastX, p.lastY = x, y
}

func (p *pathBuilder) curveTo(c cubic) {
	if !p.used {
		fmt.Fprintf(&p.b, "C%s,%s,%s,%s,%s,%s",
			num(c.C1.X), num(c.C1.Y), num(c.C2.X), num(c.C2.Y), num(c.To.X), num(c.To.Y))
		p.used = true
	} else {
		fmt.Fprintf(&p.b, "c%s,%s,%s,%s,%s,%s",
			num(c.C1.X-p.lastX), num(c.C1.Y-p.lastY), num(c.C2.X-p.lastX), num(c.C2.Y-p.lastY),
			num(c.To.X-p.lastX), num(c.To.Y-p.lastY))
	}
	p.lastX, p.lastY = c.To.X, c.To.Y
}

func (p *pathBuilder) close() { p.b.WriteByte('Z') }

func pathData(path Path) (string, error) {
	if err := path.Validate(); err != nil {
		return "", err
	}
	var b pathBuilder
	for i, pt := range path.Points {
		t := path.Types[i]
		if t.Kind() == PointStart {
			b.moveTo(pt.X, pt.Y)
		} else {
			b.lineTo(pt.X, pt.Y)
		}
		if t.Closes() {
			b.close()
		}
	}
	return b.String(), nil
}

func curveData(points []astrometrics.PointF, tension float64, closed bool) string {
	if len(points) == 0 {
		return ""
	}
	var b pathBuilder
	b.moveTo(points[0].X, points[0].Y)
	for _, c := range cardinal(points, tension, closed) {
		b.curveTo(c)
	}
	if closed {
		b.close()
	}
	return b.String()
}

// Vector is a Graphics backend that builds an SVG document.
type Vector struct {
	failure
	width, height float64
	root          *element
	defs          *element
	stack         []*element
	defID         int
	faces         *fonts.Cache
}

var _ Graphics = (*Vector)(nil)

// NewVector returns an empty document of the given size in pixels.
func NewVector(width, height float64) *Vector {
	root := newElement("g")
	root.set("fill", "none")
	root.set("stroke", "none")
	return &Vector{
		width:  width,
		height: height,
		root:   root,
		defs:   newElement("defs"),
		stack:  []*element{root},
		faces:  fonts.NewCache(),
	}
}

func (v *Vector) current() *element { return v.stack[len(v.stack)-1] }

func (v *Vector) add(name string) *element { return v.current().append(newElement(name)) }

func (v *Vector) open(name string) *element {
	e := v.add(name)
	v.stack = append(v.stack, e)
	return e
}

func (v *Vector) define(e *element) string {
	v.defID++
	id := "did" + strconv.Itoa(v.defID)
	e.set("id", id)
	v.defs.append(e)
	return id
}

// Vector reports true.
func (v *Vector) Vector() bool { return true }

func (v *Vector) ScaleTransform(sx, sy float64) {
	v.open("g").set("transform", fmt.Sprintf("scale(%s %s)", num(sx), num(sy)))
}

func (v *Vector) TranslateTransform(dx, dy float64) {
	v.open("g").set("transform", fmt.Sprintf("translate(%s,%s)", num(dx), num(dy)))
}

func (v *Vector) RotateTransform(degrees float64) {
	v.open("g").set("transform", fmt.Sprintf("rotate(%s)", num(degrees)))
}

func (v *Vector) MultiplyTransform(m Matrix) {
	v.open("g").set("transform", fmt.Sprintf("matrix(%s,%s,%s,%s,%s,%s)",
		num(m.A), num(m.B), num(m.C), num(m.D), num(m.E), num(m.F)))
}

func (v *Vector) IntersectClipRect(r astrometrics.RectangleF) {
	clip := newElement("clipPath")
	rect := clip.append(newElement("rect"))
	rect.setNum("x", r.X)
	rect.setNum("y", r.Y)
	rect.setNum("width", r.Width)
	rect.setNum("height", r.Height)
	id := v.define(clip)
	v.open("g").set("clip-path", "url(#"+id+")")
}

func (v *Vector) IntersectClipPath(p Path) error {
	d, err := pathData(p)
	if err != nil {
		return err
	}
	clip := newElement("clipPath")
	clip.append(newElement("path")).set("d", d)
	id := v.define(clip)
	v.open("g").set("clip-path", "url(#"+id+")")
	return nil
}

func (v *Vector) DrawLine(pen Pen, x1, y1, x2, y2 float64) {
	e := v.add("line")
	e.setNum("x1", x1)
	e.setNum("y1", y1)
	e.setNum("x2", x2)
	e.setNum("y2", y2)
	e.applyPen(&pen)
}

func (v *Vector) DrawLines(pen Pen, points []astrometrics.PointF) {
	if len(points) == 0 {
		return
	}
	var b pathBuilder
	b.moveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		b.lineTo(pt.X, pt.Y)
	}
	e := v.add("path")
	e.set("d", b.String())
	e.applyPen(&pen)
}

func (v *Vector) DrawPath(pen *Pen, brush *Brush, p Path) error {
	d, err := pathData(p)
	if err != nil {
		return err
	}
	e := v.add("path")
	e.set("d", d)
	e.applyPen(pen)
	e.applyBrush(brush)
	return nil
}

func (v *Vector) DrawCurve(pen Pen, points []astrometrics.PointF, tension float64) {
	if len(points) < 2 {
		return
	}
	e := v.add("path")
	e.set("d", curveData(points, tension, false))
	e.applyPen(&pen)
}

func (v *Vector) DrawClosedCurve(pen *Pen, brush *Brush, points []astrometrics.PointF, tension float64) {
	if len(points) < 2 {
		return
	}
	e := v.add("path")
	e.set("d", curveData(points, tension, true))
	e.applyPen(pen)
	e.applyBrush(brush)
}

func (v *Vector) DrawRectangle(pen *Pen, brush *Brush, r astrometrics.RectangleF) {
	e := v.add("rect")
	e.setNum("x", r.X)
	e.setNum("y", r.Y)
	e.setNum("width", r.Width)
	e.setNum("height", r.Height)
	e.applyPen(pen)
	e.applyBrush(brush)
}

func (v *Vector) DrawEllipse(pen *Pen, brush *Brush, r astrometrics.RectangleF) {
	var e *element
	if r.Width == r.Height {
		e = v.add("circle")
		e.setNum("r", r.Width/2)
	} else {
		e = v.add("ellipse")
		e.setNum("rx", r.Width/2)
		e.setNum("ry", r.Height/2)
	}
	e.setNum("cx", r.X+r.Width/2)
	e.setNum("cy", r.Y+r.Height/2)
	e.applyPen(pen)
	e.applyBrush(brush)
}

func (v *Vector) DrawArc(pen Pen, r astrometrics.RectangleF, startAngle, sweepAngle float64) {
	from, to, rx, ry, large, sweep := arcEndpoints(r, startAngle, sweepAngle)
	var b pathBuilder
	b.moveTo(from.X, from.Y)
	b.arcTo(rx, ry, 0, large, sweep, to.X, to.Y)
	e := v.add("path")
	e.set("d", b.String())
	e.applyPen(&pen)
}

func (v *Vector) DrawImage(img *Image, r astrometrics.RectangleF) {
	v.drawImage(img, r, 1)
}

func (v *Vector) DrawImageAlpha(alpha float64, img *Image, r astrometrics.RectangleF) {
	v.drawImage(img, r, alpha)
}

func (v *Vector) drawImage(img *Image, r astrometrics.RectangleF, alpha float64) {
	if img == nil {
		return
	}
	href := img.URL
	if href == "" {
		if img.Img == nil {
			return
		}
		if b := img.Img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
			v.fail(fmt.Errorf("%w: %s", ErrEmptyImage, img.Name))
			return
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img.Img); err != nil {
			v.fail(fmt.Errorf("embed image %s: %w", img.Name, err))
			return
		}
		href = "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	}
	e := v.add("image")
	e.setNum("x", r.X)
	e.setNum("y", r.Y)
	e.setNum("width", r.Width)
	e.setNum("height", r.Height)
	if alpha < 1 {
		e.setNum("opacity", alpha)
	}
	e.set("xlink:href", href)
}

func (v *Vector) MeasureString(text string, f Font) (float64, float64) {
	return measure(v.faces, text, f)
}

func (v *Vector) DrawString(text string, f Font, brush Brush, x, y float64, align Alignment) {
	e := v.add("text")
	e.content = text
	family := f.Family
	if fonts.KindOf(family) == fonts.Script {
		family = fonts.ScriptFamily
	}
	e.set("font-family", family)
	e.setNum("font-size", f.Size)
	if f.Style&FontItalic != 0 {
		e.set("font-style", "italic")
	}
	if f.Style&FontBold != 0 {
		e.set("font-weight", "bold")
	}
	if f.Style&FontUnderline != 0 {
		e.set("text-decoration", "underline")
	}
	ax, ay := align.anchors()
	switch ax {
	case 0.5:
		e.set("text-anchor", "middle")
	case 1:
		e.set("text-anchor", "end")
	}
	e.setNum("x", x)
	e.setNum("y", y+ay*ascent*f.Size)
	e.applyBrush(&brush)
}

// Save opens a group that Restore closes.
func (v *Vector) Save() State {
	v.open("g")
	return State(len(v.stack) - 1)
}

func (v *Vector) Restore(s State) {
	n := int(s)
	if n < 1 || n >= len(v.stack) {
		return
	}
	v.stack = v.stack[:n]
}

// NodeCount returns the number of elements in the document body.
func (v *Vector) NodeCount() int { return v.root.count() }

// Serialize optimizes the tree and writes the SVG document. It fails
// without writing if a draw call failed.
func (v *Vector) Serialize(w io.Writer) error {
	if v.err != nil {
		return v.err
	}
	if err := optimize(v.root, true); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	fmt.Fprintf(bw, `<svg version="1.1" baseProfile="full" xmlns="http://www.w3.org/2000/svg" `+
		`xmlns:xlink="http://www.w3.org/1999/xlink" width="%s" height="%s">`, num(v.width), num(v.height))
	if len(v.defs.children) > 0 {
		v.defs.serialize(bw)
	}
	v.root.serialize(bw)
	bw.WriteString("</svg>")
	return bw.Flush()
}

// Bytes serializes the document into memory.
func (v *Vector) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
