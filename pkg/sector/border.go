package sector

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/borderpath"
)

// LineStyle is the stroke style of a border or route.
type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDashed
	LineDotted
	LineNone
)

// LineStyles maps stylesheet values to line styles.
var LineStyles = map[string]LineStyle{
	"solid":  LineSolid,
	"dashed": LineDashed,
	"dotted": LineDotted,
	"none":   LineNone,
}

func (s LineStyle) String() string {
	switch s {
	case LineSolid:
		return "solid"
	case LineDashed:
		return "dashed"
	case LineDotted:
		return "dotted"
	case LineNone:
		return "none"
	}
	return fmt.Sprintf("LineStyle(%d)", int(s))
}

// ParseLineStyle parses a line style name case-insensitively.
func ParseLineStyle(s string) (LineStyle, error) {
	if ls, ok := LineStyles[strings.ToLower(s)]; ok {
		return ls, nil
	}
	return 0, fmt.Errorf("unknown line style %q", s)
}

// ParsePath parses a whitespace-separated list of XXYY hexes.
func ParsePath(s string) ([]astrometrics.Hex, error) {
	fields := strings.Fields(s)
	path := make([]astrometrics.Hex, 0, len(fields))
	for _, f := range fields {
		h, err := astrometrics.ParseHex(f)
		if err != nil {
			return nil, err
		}
		path = append(path, h)
	}
	return path, nil
}

// Border is a political boundary given as the cyclic perimeter of the hexes
// it encloses. Regions use the same type and are drawn in their own pass.
//
// Traces are cached per path type; a Border must not be copied after its
// first trace and its Path must not change.
type Border struct {
	Allegiance string
	Path       []astrometrics.Hex

	// Color and Style override the sector stylesheet when set.
	Color *color.NRGBA
	Style *LineStyle

	Label        string
	LabelHex     astrometrics.Hex
	LabelOffsetX float64
	LabelOffsetY float64
	ShowLabel    bool
	WrapLabel    bool

	traces borderpath.Cache[borderpath.Trace]
}

// NewBorder returns a border along path with its label shown.
func NewBorder(path []astrometrics.Hex, allegiance string) *Border {
	return &Border{Path: path, Allegiance: allegiance, ShowLabel: true}
}

// LabelPosition returns the hex the label is centered on. Unless set
// explicitly, it is the center of the path's bounding box.
func (b *Border) LabelPosition() astrometrics.Hex {
	if !b.LabelHex.IsEmpty() || len(b.Path) == 0 {
		return b.LabelHex
	}
	minX, minY := b.Path[0].X, b.Path[0].Y
	maxX, maxY := minX, minY
	for _, h := range b.Path[1:] {
		minX, maxX = min(minX, h.X), max(maxX, h.X)
		minY, maxY = min(minY, h.Y), max(maxY, h.Y)
	}
	return astrometrics.Hex{X: (minX + maxX + 1) / 2, Y: (minY + maxY + 1) / 2}
}

// DisplayLabel returns the text drawn for the border: the explicit label,
// else the name of its allegiance, else "".
func (b *Border) DisplayLabel(s *Sector) string {
	if !b.ShowLabel {
		return ""
	}
	if b.Label != "" {
		return b.Label
	}
	if b.Allegiance == "" {
		return ""
	}
	if a, ok := s.Allegiance(b.Allegiance); ok {
		return a.Name
	}
	return ""
}

// Trace returns the outline of the border within sector, computing it once
// per path type.
func (b *Border) Trace(sector astrometrics.Point, pathType astrometrics.PathType) borderpath.Trace {
	return b.traces.Get(pathType, func() borderpath.Trace {
		return borderpath.Border(sector, b.Path, pathType)
	})
}

// Route is a jump route between two hexes. Endpoints outside the sector are
// expressed as a hex in a neighboring sector plus a sector offset.
type Route struct {
	Start, End             astrometrics.Hex
	StartOffset, EndOffset astrometrics.Point

	Allegiance string
	Type       string

	// Optional overrides of the sector stylesheet.
	Color *color.NRGBA
	Style *LineStyle
	Width *float64
}

// FixHex moves an out-of-sector hex into the neighboring sector, returning
// the hex within that sector and the sector offset.
func FixHex(h astrometrics.Hex) (astrometrics.Hex, astrometrics.Point) {
	var off astrometrics.Point
	switch {
	case h.X < 1:
		h.X += astrometrics.SectorWidth
		off.X--
	case h.X > astrometrics.SectorWidth:
		h.X -= astrometrics.SectorWidth
		off.X++
	}
	switch {
	case h.Y < 1:
		h.Y += astrometrics.SectorHeight
		off.Y--
	case h.Y > astrometrics.SectorHeight:
		h.Y -= astrometrics.SectorHeight
		off.Y++
	}
	return h, off
}

// NewRoute builds a route between two sector-relative hexes, folding
// out-of-sector endpoints into offsets.
func NewRoute(start, end astrometrics.Hex) *Route {
	r := &Route{}
	r.Start, r.StartOffset = FixHex(start)
	r.End, r.EndOffset = FixHex(end)
	return r
}

// StyleCode returns the code used to look the route up in a stylesheet.
func (r *Route) StyleCode() string {
	switch {
	case r.Allegiance != "":
		return r.Allegiance
	case r.Type != "":
		return r.Type
	}
	return "Im"
}

// Label sizes.
const (
	LabelSmall = "small"
	LabelLarge = "large"
)

// DefaultLabelColor is used for labels without an explicit color. Labels in
// this color are drawn in the theme's border text color instead.
var DefaultLabelColor = color.NRGBA{R: 0xFF, G: 0xCC, B: 0x00, A: 0xFF}

// Label is free text placed on a hex.
type Label struct {
	Hex     astrometrics.Hex
	Text    string
	Color   color.NRGBA
	Size    string
	Wrap    bool
	OffsetX float64
	OffsetY float64
}
