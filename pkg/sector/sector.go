package sector

import (
	"strings"
	"sync"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/borderpath"
	"github.com/travellermap/hexmap/pkg/stylesheet"
)

// Review status tags.
const (
	TagOfficial   = "Official"
	TagInReview   = "InReview"
	TagUnreviewed = "Unreviewed"
	TagApocryphal = "Apocryphal"
	TagPreserve   = "Preserve"
	TagOTU        = "OTU"
)

// Sector is one 32x40 parsec block of map data.
//
// A Sector is safe for concurrent reads. Its cached stylesheet and clip
// paths are computed once on first use.
type Sector struct {
	Location     astrometrics.Point
	Abbreviation string
	// Label overrides Names[0] as the drawn name.
	Label    string
	Names    []string
	Selected bool
	Tags     []string

	// Subsectors holds the names of subsectors A..P. Empty names are not
	// drawn.
	Subsectors [16]string

	Borders     []*Border
	Regions     []*Border
	Routes      []*Route
	Labels      []*Label
	Worlds      []*World
	Allegiances []Allegiance

	// StylesheetSource is the sector's own stylesheet, chained to the
	// built-in sheet.
	StylesheetSource string

	sheetOnce sync.Once
	sheet     *stylesheet.Sheet
	sheetErr  error

	clips borderpath.Cache[borderpath.Clip]
}

// Name returns the display name of the sector.
func (s *Sector) Name() string {
	if s.Label != "" {
		return s.Label
	}
	if len(s.Names) > 0 {
		return s.Names[0]
	}
	return ""
}

// HasTag reports whether the sector carries tag, ignoring case.
func (s *Sector) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Allegiance looks code up in the sector's allegiances and then in the
// stock list.
func (s *Sector) Allegiance(code string) (Allegiance, bool) {
	for _, a := range s.Allegiances {
		if a.Code == code {
			return a, true
		}
	}
	return StockAllegiance(code)
}

// BaseAllegiance maps a subordinate allegiance to its base code ("ImSy" to
// "Im"), or returns code unchanged.
func (s *Sector) BaseAllegiance(code string) string {
	if a, ok := s.Allegiance(code); ok && a.Base != "" {
		return a.Base
	}
	return code
}

// Bounds returns the sector's rectangle in global coordinates.
func (s *Sector) Bounds() astrometrics.Rectangle {
	return astrometrics.SectorBounds(s.Location)
}

// Center returns the global coordinate of the sector's central hex.
func (s *Sector) Center() astrometrics.Point {
	return astrometrics.SectorCenterCoordinates(s.Location)
}

// SubsectorCenter returns the global coordinate of the central hex of
// subsector index (0..15).
func (s *Sector) SubsectorCenter(index int) astrometrics.Point {
	return astrometrics.SubsectorCenter(s.Location, index)
}

// ClipPath returns the traced outline of the sector for pathType.
func (s *Sector) ClipPath(pathType astrometrics.PathType) borderpath.Clip {
	return s.clips.Get(pathType, func() borderpath.Clip {
		return borderpath.SectorClip(s.Location, pathType)
	})
}

// Stylesheet returns the sector's parsed stylesheet. A sector without a
// stylesheet, or with one that fails to parse, uses the built-in sheet.
func (s *Sector) Stylesheet() *stylesheet.Sheet {
	s.sheetOnce.Do(func() {
		s.sheet, s.sheetErr = stylesheet.ForSector(s.StylesheetSource)
	})
	return s.sheet
}

// StylesheetError returns the parse error of the sector's stylesheet, if
// any.
func (s *Sector) StylesheetError() error {
	s.Stylesheet()
	return s.sheetErr
}

// StylesheetProperties types the properties sector stylesheets may set.
var StylesheetProperties = stylesheet.Table{
	"color": stylesheet.ColorValue,
	"width": stylesheet.NumberValue,
	"style": stylesheet.EnumValue(LineStyles),
}

// CheckStylesheet reports the parse error or the badly typed values of the
// sector's own stylesheet.
func (s *Sector) CheckStylesheet() []error {
	if s.StylesheetSource == "" {
		return nil
	}
	if err := s.StylesheetError(); err != nil {
		return []error{err}
	}
	return StylesheetProperties.Check(s.Stylesheet())
}

// ApplyStylesheet resolves (element, code) against the sector's sheet.
func (s *Sector) ApplyStylesheet(element, code string) *stylesheet.Result {
	return s.Stylesheet().Apply(element, code)
}

// RouteEndpoints returns the absolute locations of a route's endpoints.
func (s *Sector) RouteEndpoints(r *Route) (start, end astrometrics.Location) {
	start = astrometrics.Location{Sector: s.Location.Offset(r.StartOffset), Hex: r.Start}
	end = astrometrics.Location{Sector: s.Location.Offset(r.EndOffset), Hex: r.End}
	return start, end
}

// WorldAt returns the world in hex h, or nil.
func (s *Sector) WorldAt(h astrometrics.Hex) *World {
	for _, w := range s.Worlds {
		if w.Hex == h {
			return w
		}
	}
	return nil
}
