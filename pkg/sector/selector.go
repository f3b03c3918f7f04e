package sector

import (
	"math"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/errors"
)

// DefaultSlopFactor inflates a selection so that routes and labels anchored
// just outside a tile are still drawn.
const DefaultSlopFactor = 0.3

// MaxJump bounds the radius of a HexSelector.
const MaxJump = 36

// SectorRoute pairs a route with the sector that owns it.
type SectorRoute struct {
	Sector *Sector
	Route  *Route
}

// Selector chooses the data drawn for one render pass.
type Selector interface {
	Sectors() []*Sector
	Worlds() []*World
	Routes() []SectorRoute
}

// RectSelector selects the data within a rectangle of global coordinates.
type RectSelector struct {
	provider   Provider
	rect       astrometrics.RectangleF
	slop       bool
	slopFactor float64
}

// NewRectSelector selects data within rect. With slop, the rectangle is
// inflated by DefaultSlopFactor of its size on each side.
func NewRectSelector(p Provider, rect astrometrics.RectangleF, slop bool) *RectSelector {
	return &RectSelector{provider: p, rect: rect, slop: slop, slopFactor: DefaultSlopFactor}
}

// WithSlopFactor returns a copy of the selector using factor f.
func (s *RectSelector) WithSlopFactor(f float64) *RectSelector {
	c := *s
	c.slopFactor = f
	return &c
}

// SlopFactor returns the inflation factor.
func (s *RectSelector) SlopFactor() float64 { return s.slopFactor }

// Rect returns the selected rectangle including slop.
func (s *RectSelector) Rect() astrometrics.RectangleF {
	if !s.slop {
		return s.rect
	}
	return s.rect.Inflate(s.rect.Width*s.slopFactor, s.rect.Height*s.slopFactor)
}

func (s *RectSelector) Sectors() []*Sector {
	return s.provider.Sectors(s.Rect())
}

// Worlds returns the worlds whose hexes fall within the selection, column
// by column.
func (s *RectSelector) Worlds() []*World {
	r := s.Rect()
	hx1, hx2 := int(math.Floor(r.Left())), int(math.Ceil(r.Right()))
	hy1, hy2 := int(math.Floor(r.Top())), int(math.Ceil(r.Bottom()))

	type hexIndex map[astrometrics.Hex]*World
	indexes := make(map[astrometrics.Point]hexIndex)
	index := func(loc astrometrics.Point) hexIndex {
		if idx, ok := indexes[loc]; ok {
			return idx
		}
		var idx hexIndex
		if sec := s.provider.Sector(loc.X, loc.Y); sec != nil {
			idx = make(hexIndex, len(sec.Worlds))
			for _, w := range sec.Worlds {
				idx[w.Hex] = w
			}
		}
		indexes[loc] = idx
		return idx
	}

	var out []*World
	for x := hx1; x <= hx2; x++ {
		for y := hy1; y <= hy2; y++ {
			loc := astrometrics.CoordinatesToLocation(astrometrics.Point{X: x, Y: y})
			if w := index(loc.Sector)[loc.Hex]; w != nil {
				out = append(out, w)
			}
		}
	}
	return out
}

func (s *RectSelector) Routes() []SectorRoute {
	return routesOf(s.Sectors())
}

func routesOf(sectors []*Sector) []SectorRoute {
	var out []SectorRoute
	for _, sec := range sectors {
		for _, r := range sec.Routes {
			out = append(out, SectorRoute{Sector: sec, Route: r})
		}
	}
	return out
}

// HexSelector selects the worlds within a number of jumps of a location.
type HexSelector struct {
	provider Provider
	location astrometrics.Location
	jump     int
}

// NewHexSelector selects data within jump parsecs of loc. jump must be in
// 0..MaxJump.
func NewHexSelector(p Provider, loc astrometrics.Location, jump int) (*HexSelector, error) {
	if jump < 0 || jump > MaxJump {
		return nil, errors.New(errors.ErrCodeOutOfRange, "jump %d out of range [0,%d]", jump, MaxJump)
	}
	return &HexSelector{provider: p, location: loc, jump: jump}, nil
}

func (s *HexSelector) corners() (tl, br astrometrics.Location) {
	c := s.location.Coordinates()
	d := s.jump + 1
	tl = astrometrics.CoordinatesToLocation(astrometrics.Point{X: c.X - d, Y: c.Y - d})
	br = astrometrics.CoordinatesToLocation(astrometrics.Point{X: c.X + d, Y: c.Y + d})
	return tl, br
}

func (s *HexSelector) Sectors() []*Sector {
	tl, br := s.corners()
	var out []*Sector
	for x := tl.Sector.X; x <= br.Sector.X; x++ {
		for y := tl.Sector.Y; y <= br.Sector.Y; y++ {
			if sec := s.provider.Sector(x, y); sec != nil {
				out = append(out, sec)
			}
		}
	}
	return out
}

// Worlds returns the worlds within range, ordered by sector and then by the
// order they were loaded.
func (s *HexSelector) Worlds() []*World {
	c := s.location.Coordinates()
	var out []*World
	for _, sec := range s.Sectors() {
		for _, w := range sec.Worlds {
			if astrometrics.HexDistance(c, w.Coordinates()) <= s.jump {
				out = append(out, w)
			}
		}
	}
	return out
}

func (s *HexSelector) Routes() []SectorRoute {
	return routesOf(s.Sectors())
}
