package render

import (
	"image/color"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/graphics"
)

// star is one parsed member of a stellar description.
type star struct {
	// class is the spectral type letter, or a whole code for degenerate
	// objects: "D", "BD", "NS", "PSR" or "BH".
	class      string
	luminosity string
}

var (
	starToken       = regexp.MustCompile(`^([OBAFGKM])([0-9](?:\.[0-9])?)(Ia|Ib|III|II|IV|VI|V)?$`)
	luminosityToken = regexp.MustCompile(`^(Ia|Ib|III|II|IV|VI|V|D)$`)
)

var degenerate = map[string]bool{"D": true, "BD": true, "NS": true, "PSR": true, "BH": true}

// parseStellar splits a stellar description such as "G2 V M0 V D" into its
// stars. Unrecognized tokens are skipped.
func parseStellar(s string) []star {
	fields := strings.Fields(strings.NewReplacer("[", " ", "]", " ", "{", " ", "}", " ").Replace(s))
	var out []star
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if degenerate[f] {
			out = append(out, star{class: f})
			continue
		}
		m := starToken.FindStringSubmatch(f)
		if m == nil {
			continue
		}
		st := star{class: m[1], luminosity: m[3]}
		if st.luminosity == "" && i+1 < len(fields) && luminosityToken.MatchString(fields[i+1]) {
			i++
			st.luminosity = fields[i]
		}
		// A white dwarf written as a luminosity class is still a dwarf.
		if st.luminosity == "D" {
			st.class, st.luminosity = "D", ""
		}
		out = append(out, st)
	}
	return out
}

// starProps is how one star is drawn.
type starProps struct {
	fill, border color.NRGBA
	radius       float64
}

var (
	starLuminosityRadius = map[string]float64{"Ia": 7, "Ib": 5, "II": 3, "III": 2, "IV": 1, "V": 0}
	starClassRadius      = map[string]float64{"O": 4, "B": 3, "A": 2, "F": 1.5, "G": 1, "K": 0.7, "M": 0.5}
	starClassColor       = map[string]color.NRGBA{
		"O": {R: 0x9d, G: 0xb4, B: 0xff, A: 0xff},
		"B": {R: 0xbb, G: 0xcc, B: 0xff, A: 0xff},
		"A": {R: 0xfb, G: 0xf8, B: 0xff, A: 0xff},
		"F": {R: 0xff, G: 0xff, B: 0xed, A: 0xff},
		"G": {R: 0xff, G: 0xff, B: 0x00, A: 0xff},
		"K": {R: 0xff, G: 0x98, B: 0x33, A: 0xff},
		"M": {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	}
	starWhite = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	starBlack = color.NRGBA{A: 0xff}
	starBrown = color.NRGBA{R: 0xa5, G: 0x2a, B: 0x2a, A: 0xff}
)

func (s star) props() starProps {
	switch s.class {
	case "D":
		return starProps{starWhite, starBlack, 0.3}
	case "NS", "PSR", "BH":
		return starProps{starBlack, starWhite, 0.8}
	case "BD":
		return starProps{starBrown, starBlack, 0.3}
	}
	return starProps{starClassColor[s.class], starBlack, starClassRadius[s.class] + starLuminosityRadius[s.luminosity]}
}

// starOffset places the i-th star of a system: the first at the center, the
// rest around it on a hexagon.
func starOffset(i int) astrometrics.PointF {
	if i == 0 {
		return astrometrics.PointF{}
	}
	if i > 6 {
		i = i%6 + 1
	}
	sin, cos := math.Sincos(math.Pi * float64(i) / 3)
	return astrometrics.PointF{X: cos, Y: sin}
}

const (
	starOffsetScale = 0.3
	starRadiusScale = 0.15
)

// drawStars draws the stars of w, largest first.
func (p *pass) drawStars(center astrometrics.PointF, stellar string) {
	props := make([]starProps, 0, 4)
	for _, st := range parseStellar(stellar) {
		props = append(props, st.props())
	}
	slices.SortStableFunc(props, func(a, b starProps) int {
		switch {
		case a.radius > b.radius:
			return -1
		case a.radius < b.radius:
			return 1
		}
		return 0
	})

	g, s := p.g, p.s
	state := g.Save()
	defer g.Restore(state)
	g.TranslateTransform(center.X, center.Y)
	g.ScaleTransform(s.HexContentScale/astrometrics.ParsecScaleX, s.HexContentScale/astrometrics.ParsecScaleY)

	for i, sp := range props {
		pen := graphics.Pen{Color: sp.border, Width: s.Worlds.Pen.Width}
		brush := graphics.Brush{Color: sp.fill}
		off := starOffset(i)
		r := starRadiusScale * sp.radius
		g.DrawEllipse(&pen, &brush, astrometrics.RectangleF{
			X:      off.X*starOffsetScale - r,
			Y:      off.Y*starOffsetScale - r,
			Width:  2 * r,
			Height: 2 * r,
		})
	}
}
