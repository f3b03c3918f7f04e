package style

import (
	"strings"

	"github.com/travellermap/hexmap/pkg/errors"
)

// MapOptions is the bit set of display toggles carried by a tile request.
type MapOptions uint32

const (
	SectorGrid    MapOptions = 0x0001
	SubsectorGrid MapOptions = 0x0002

	SectorsSelected MapOptions = 0x0004
	SectorsAll      MapOptions = 0x0008
	SectorsMask                = SectorsSelected | SectorsAll

	BordersMajor MapOptions = 0x0010
	BordersMinor MapOptions = 0x0020
	BordersMask             = BordersMajor | BordersMinor

	NamesMajor MapOptions = 0x0040
	NamesMinor MapOptions = 0x0080
	NamesMask             = NamesMajor | NamesMinor

	WorldsCapitals   MapOptions = 0x0100
	WorldsHomeworlds MapOptions = 0x0200
	WorldsMask                  = WorldsCapitals | WorldsHomeworlds

	// Deprecated bits are accepted and ignored.
	RoutesSelectedDeprecated MapOptions = 0x0400
	PrintStyleDeprecated     MapOptions = 0x0800
	CandyStyleDeprecated     MapOptions = 0x1000

	ForceHexes    MapOptions = 0x2000
	WorldColors   MapOptions = 0x4000
	FilledBorders MapOptions = 0x8000
)

// DefaultMapOptions is the option set used when a request names none.
const DefaultMapOptions = SectorGrid | SubsectorGrid | SectorsSelected | BordersMajor | BordersMinor |
	NamesMajor | WorldsCapitals | WorldsHomeworlds

// Has reports whether every bit of o is set.
func (m MapOptions) Has(o MapOptions) bool { return m&o == o }

// Any reports whether any bit of mask is set.
func (m MapOptions) Any(mask MapOptions) bool { return m&mask != 0 }

// WorldDetails selects the parts of a world glyph that are drawn.
type WorldDetails uint32

const (
	DetailType       WorldDetails = 1 << 0 // water/no water/asteroid disc
	DetailKeyNames   WorldDetails = 1 << 1 // names of capitals and high population worlds
	DetailStarport   WorldDetails = 1 << 2
	DetailGasGiant   WorldDetails = 1 << 3
	DetailAllegiance WorldDetails = 1 << 4
	DetailBases      WorldDetails = 1 << 5
	DetailHex        WorldDetails = 1 << 6
	DetailZone       WorldDetails = 1 << 7
	DetailAllNames   WorldDetails = 1 << 8
	DetailUWP        WorldDetails = 1 << 9
	DetailAsteroids  WorldDetails = 1 << 10
	DetailHighlight  WorldDetails = 1 << 11

	DetailNone   WorldDetails = 0
	DetailDotmap              = DetailNone
	DetailAtlas               = DetailType | DetailKeyNames | DetailStarport | DetailGasGiant | DetailAllegiance |
		DetailBases | DetailZone | DetailHighlight
	DetailPoster = DetailAtlas | DetailHex | DetailAllNames | DetailAsteroids
)

// Has reports whether every bit of d is set.
func (w WorldDetails) Has(d WorldDetails) bool { return w&d == d }

// TextBackgroundStyle controls how text is separated from what lies below it.
type TextBackgroundStyle int

const (
	TextBackgroundNone TextBackgroundStyle = iota
	TextBackgroundRectangle
	TextBackgroundShadow
	TextBackgroundOutline
	TextBackgroundFilled
)

// MicroBorderStyle is the outline shape of sector-scale borders.
type MicroBorderStyle int

const (
	MicroBorderHex MicroBorderStyle = iota
	MicroBorderSquare
	MicroBorderCurve
)

// HexStyle is the shape of the parsec grid.
type HexStyle int

const (
	HexStyleNone HexStyle = iota
	HexStyleHex
	HexStyleSquare
)

// HexCoordinateStyle selects sector ("0101".."3240") or subsector
// ("0101".."0810") hex numbering.
type HexCoordinateStyle int

const (
	HexCoordinateSector HexCoordinateStyle = iota
	HexCoordinateSubsector
)

// Theme is a named bundle of overrides applied after the scale-derived
// defaults.
type Theme int

const (
	Poster Theme = iota
	Atlas
	Candy
	Print
	Draft
	FASA
	Terminal
	Mongoose
)

var themeNames = []string{"poster", "atlas", "candy", "print", "draft", "fasa", "terminal", "mongoose"}

func (t Theme) String() string {
	if t < 0 || int(t) >= len(themeNames) {
		return "unknown"
	}
	return themeNames[t]
}

// Themes returns every theme in declaration order.
func Themes() []Theme {
	out := make([]Theme, len(themeNames))
	for i := range out {
		out[i] = Theme(i)
	}
	return out
}

// ParseTheme parses a theme name case-insensitively. The empty string is
// the poster theme.
func ParseTheme(s string) (Theme, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Poster, nil
	}
	for i, n := range themeNames {
		if n == s {
			return Theme(i), nil
		}
	}
	return Poster, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (valid: %s)", s, strings.Join(themeNames, ", "))
}

// Format is an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
)

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "image/png"
}

// Extension returns the usual file extension of the format, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	case FormatSVG:
		return "svg"
	}
	return "png"
}

// ParseFormat parses a format name. "jpg" is accepted for JPEG and the empty
// string yields the zero Format, meaning "use the theme's preference".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "svg":
		return FormatSVG, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (valid: png, jpeg, svg)", s)
}
