// Package pipeline turns tile and sector requests into encoded images.
//
// It is the single entry point shared by the CLI and the tile service: it
// owns the defaults, validates requests, builds the style snapshot and
// render request, and fronts the renderer with a tile cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{X: 0, Y: 0, Scale: 64, Style: "atlas"}
//	result, err := runner.Render(ctx, provider, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("tile.png", result.Data, 0644)
//
// Setting Options.Sector renders that whole sector instead of a tile.
package pipeline

import (
	"strings"
	"time"

	"github.com/travellermap/hexmap/pkg/cache"
	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/render"
	"github.com/travellermap/hexmap/pkg/style"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and server
// =============================================================================

const (
	// DefaultScale is the default zoom, in pixels per parsec.
	DefaultScale = 64.0

	// DefaultTileSize is the default tile width and height in pixels.
	DefaultTileSize = 256

	// DefaultSectorScale is the scale used for whole-sector renders.
	DefaultSectorScale = 32.0

	// DefaultStyle is the default theme name.
	DefaultStyle = "poster"

	// DefaultTTL is how long rendered tiles are cached.
	DefaultTTL = 24 * time.Hour
)

// DefaultMapOptions is the option set used when a request names none.
const DefaultMapOptions = style.DefaultMapOptions

// Options contains all configuration for one render.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Tile coordinates, in tiles from the reference hex. Ignored when
	// Sector is set.
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// Width and Height are the tile size in pixels.
	Width  int `json:"w,omitempty"`
	Height int `json:"h,omitempty"`

	Scale      float64          `json:"scale,omitempty"`
	Style      string           `json:"style,omitempty"`
	MapOptions style.MapOptions `json:"options,omitempty"`
	// Format is png, jpeg or svg. Empty uses the style's preference.
	Format string `json:"format,omitempty"`

	ClipOutsectorBorders bool `json:"clip_outsector_borders,omitempty"`

	// Sector names a sector (name, abbreviation or "x,y") to render whole.
	Sector string `json:"sector,omitempty"`
	// SectorClip clips the sector render to the sector's outline.
	SectorClip bool `json:"sector_clip,omitempty"`

	// Overlays are optional style tweaks by name; see Overlays.
	Overlays []string `json:"overlays,omitempty"`
	// Highlight is a world pattern such as "stA", "p9+" or "b:NS".
	Highlight string `json:"highlight,omitempty"`

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool `json:"-"`
}

// Result is a rendered image.
type Result struct {
	Data        []byte
	Format      style.Format
	ContentType string
	// Cached reports that Data came from the cache.
	Cached   bool
	Duration time.Duration
}

// IsSector reports whether the options describe a whole-sector render.
func (o *Options) IsSector() bool {
	return o.Sector != ""
}

// SetDefaults fills zero fields with the package defaults.
func (o *Options) SetDefaults() {
	if o.Scale == 0 {
		if o.IsSector() {
			o.Scale = DefaultSectorScale
		} else {
			o.Scale = DefaultScale
		}
	}
	if o.Width == 0 {
		o.Width = DefaultTileSize
	}
	if o.Height == 0 {
		o.Height = DefaultTileSize
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.MapOptions == 0 {
		o.MapOptions = DefaultMapOptions
	}
	o.Style = strings.ToLower(strings.TrimSpace(o.Style))
}

// Validate checks every field. Call SetDefaults first.
func (o *Options) Validate() error {
	if err := errors.ValidateRange("scale", o.Scale, render.MinScale, render.MaxScale); err != nil {
		return err
	}
	if !o.IsSector() {
		if err := errors.ValidateRange("w", float64(o.Width), 1, render.MaxTileSize); err != nil {
			return err
		}
		if err := errors.ValidateRange("h", float64(o.Height), 1, render.MaxTileSize); err != nil {
			return err
		}
	}
	if _, err := style.ParseTheme(o.Style); err != nil {
		return err
	}
	if _, err := style.ParseFormat(o.Format); err != nil {
		return err
	}
	if _, err := overlayOptions(o.Overlays); err != nil {
		return err
	}
	if _, err := style.ParseHighlight(o.Highlight); err != nil {
		return err
	}
	return nil
}

// CacheKey identifies the rendered bytes of o. Two option sets with the
// same key render identically for the same data.
func (o *Options) CacheKey() string {
	overlays := append([]string(nil), o.Overlays...)
	for i := range overlays {
		overlays[i] = strings.ToLower(overlays[i])
	}
	if o.IsSector() {
		return cache.Key("sector", o.Sector, o.SectorClip, o.Scale, o.Style, uint32(o.MapOptions),
			o.Format, overlays, o.Highlight)
	}
	return cache.Key("tile", o.X, o.Y, o.Width, o.Height, o.Scale, o.Style, uint32(o.MapOptions),
		o.Format, o.ClipOutsectorBorders, overlays, o.Highlight)
}
