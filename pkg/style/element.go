package style

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/graphics"
)

// DefaultFont is the family used unless a theme overrides it.
const DefaultFont = "Arial"

// fontScale converts nominal sizes into the world-unit em size used by the
// backends.
const fontScale = 1.4

// Traveller house colors.
var (
	Red   = color.NRGBA{R: 0xE3, G: 0x27, B: 0x36, A: 0xff}
	Amber = color.NRGBA{R: 0xFF, G: 0xCC, B: 0x00, A: 0xff}
	Green = color.NRGBA{R: 0x04, G: 0x81, B: 0x04, A: 0xff}
)

// Empty is the unset color. Elements with an empty color skip that stroke
// or fill.
var Empty color.NRGBA

// LabelStyle places text relative to its anchor.
type LabelStyle struct {
	Rotation    float64 // degrees
	Scale       astrometrics.PointF
	Translation astrometrics.PointF
	Uppercase   bool
	Wrap        bool
}

var unitLabel = LabelStyle{Scale: astrometrics.PointF{X: 1, Y: 1}}

// Element is the resolved appearance of one kind of map feature.
type Element struct {
	Visible bool

	Fill    color.NRGBA
	Content string
	Pen     graphics.Pen

	TextColor          color.NRGBA
	TextHighlightColor color.NRGBA
	TextStyle          LabelStyle
	TextBackground     TextBackgroundStyle

	Font       graphics.Font
	SmallFont  graphics.Font
	MediumFont graphics.Font
	LargeFont  graphics.Font

	Position astrometrics.PointF
}

// Brush returns a brush of the element's fill.
func (e *Element) Brush() graphics.Brush { return graphics.Brush{Color: e.Fill} }

// TextBrush returns a brush of the element's text color.
func (e *Element) TextBrush() graphics.Brush { return graphics.Brush{Color: e.TextColor} }

func newFont(family string, size float64, style graphics.FontStyle) graphics.Font {
	return graphics.Font{Family: family, Size: size * fontScale, Style: style}
}

func newPen(c color.NRGBA, width float64, dash graphics.DashStyle) graphics.Pen {
	return graphics.Pen{Color: c, Width: width, Dash: dash}
}

func named(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(a uint8, c color.NRGBA) color.NRGBA {
	c.A = a
	return c
}

func defaultTo(c *color.NRGBA, def color.NRGBA) {
	if *c == Empty {
		*c = def
	}
}

// justNoticeable is the CIE76 distance below which two colors read as the
// same on a map tile.
const justNoticeable = 13

// NoticeableDifference reports whether a and b are far enough apart in CIE
// Lab space to be told apart. Alpha is ignored.
func NoticeableDifference(a, b color.NRGBA) bool {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	// go-colorful keeps L in [0,1]; ΔE is conventionally on the [0,100] scale.
	return ca.DistanceCIE76(cb)*100 > justNoticeable
}

// ScaleInterpolate maps scale onto [minValue, maxValue] linearly in log2
// space between minScale and maxScale, clamping outside that band.
func ScaleInterpolate(minValue, maxValue, scale, minScale, maxScale float64) float64 {
	if scale <= minScale {
		return minValue
	}
	if scale >= maxScale {
		return maxValue
	}
	p := (math.Log2(scale) - math.Log2(minScale)) / (math.Log2(maxScale) - math.Log2(minScale))
	return minValue + (maxValue-minValue)*p
}

// ScaleInterpolateInt is ScaleInterpolate rounded half to even.
func ScaleInterpolateInt(minValue, maxValue int, scale, minScale, maxScale float64) int {
	return int(math.RoundToEven(ScaleInterpolate(float64(minValue), float64(maxValue), scale, minScale, maxScale)))
}

var (
	white         = named(colornames.White)
	black         = named(colornames.Black)
	gray          = named(colornames.Gray)
	lightGray     = named(colornames.Lightgray)
	darkGray      = named(colornames.Darkgray)
	dimGray       = named(colornames.Dimgray)
	wheat         = named(colornames.Wheat)
	deepSkyBlue   = named(colornames.Deepskyblue)
	blue          = named(colornames.Blue)
	brown         = named(colornames.Brown)
	antiqueWhite  = named(colornames.Antiquewhite)
	darkCyan      = named(colornames.Darkcyan)
	firebrick     = named(colornames.Firebrick)
	goldenrod     = named(colornames.Goldenrod)
	cyan          = named(colornames.Cyan)
	lightBlue     = named(colornames.Lightblue)
	darkBlue      = named(colornames.Darkblue)
	plum          = named(colornames.Plum)
	purple        = named(colornames.Purple)
	pureRed       = named(colornames.Red)
	mediumBlue    = named(colornames.Mediumblue)
	darkKhaki     = named(colornames.Darkkhaki)
	darkSlateGray = named(colornames.Darkslategray)
)
