package render

import (
	"path"

	"github.com/travellermap/hexmap/pkg/graphics"
)

// glyphBias selects which base slot a glyph prefers.
type glyphBias int

const (
	biasNone glyphBias = iota
	biasTop
	biasBottom
)

// glyph is a short string drawn in the glyph font.
type glyph struct {
	chars     string
	highlight bool
	bias      glyphBias
}

func (g glyph) printable() bool { return g.chars != "" }

const (
	glyphDiamond    = "♦"
	glyphDiamondX   = "❖"
	glyphCircle     = "•"
	glyphTriangle   = "▲"
	glyphSquare     = "■"
	glyphStar4Point = "✦"
	glyphStar5Point = "★"
	glyphStarStar   = "**"
)

var (
	glyphPrison    = glyph{chars: "P", highlight: true}
	glyphReserve   = glyph{chars: "R"}
	glyphExileCamp = glyph{chars: "X"}
)

// baseGlyphs maps "allegiance.code" globs to glyphs. The first match wins.
var baseGlyphs = []struct {
	pattern string
	glyph   glyph
}{
	{"*.C", glyph{glyphStarStar, false, biasBottom}},   // Vargr corsair base
	{"Im.D", glyph{glyphSquare, false, biasBottom}},    // Imperial depot
	{"*.D", glyph{glyphSquare, true, biasNone}},        // depot
	{"*.E", glyph{glyphStarStar, false, biasBottom}},   // Hiver embassy
	{"*.K", glyph{glyphStar5Point, true, biasTop}},     // naval base
	{"*.M", glyph{glyphStar4Point, false, biasBottom}}, // military base
	{"*.N", glyph{glyphStar5Point, false, biasTop}},    // Imperial naval base
	{"*.O", glyph{glyphSquare, true, biasTop}},         // K'kree naval outpost
	{"*.R", glyph{glyphStarStar, false, biasBottom}},   // Aslan clan base
	{"*.S", glyph{glyphTriangle, false, biasBottom}},   // scout base
	{"*.T", glyph{glyphStar5Point, true, biasTop}},     // Aslan Tlaukhu base
	{"*.V", glyph{glyphCircle, false, biasBottom}},     // exploration base
	{"Zh.W", glyph{glyphDiamond, true, biasNone}},      // Zhodani relay station
	{"*.W", glyph{glyphTriangle, true, biasBottom}},    // scout waystation
	{"Zh.Z", glyph{glyphDiamond, false, biasNone}},     // Zhodani base
	{"*.*", glyph{glyphCircle, false, biasNone}},       // independent base
}

// baseGlyph returns the glyph for base code c of a world in allegiance.
func baseGlyph(allegiance string, c byte) glyph {
	key := allegiance + "." + string(c)
	for _, e := range baseGlyphs {
		if ok, _ := path.Match(e.pattern, key); ok {
			return e.glyph
		}
	}
	return glyph{}
}

// researchGlyphs maps the third letter of an "Rs?" remark.
var researchGlyphs = map[byte]string{
	'A': "Α", 'B': "Β", 'G': "Γ", 'D': "Δ",
	'E': "Ε", 'Z': "Ζ", 'H': "Η", 'T': "Θ",
}

func researchGlyph(code string) glyph {
	g := glyph{chars: researchGlyphs['G'], highlight: true}
	if len(code) == 3 {
		if c, ok := researchGlyphs[code[2]]; ok {
			g.chars = c
		}
	}
	return g
}

// drawGlyph draws gl centered at (x, y) in the current hex content space.
func (p *pass) drawGlyph(gl glyph, x, y float64) {
	w := &p.s.Worlds
	p.brush.Color = w.TextColor
	if gl.highlight {
		p.brush.Color = w.TextHighlightColor
	}
	p.g.DrawString(gl.chars, p.s.GlyphFont, p.brush, x, y, graphics.AlignCentered)
}
