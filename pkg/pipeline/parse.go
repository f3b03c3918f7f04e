package pipeline

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
)

// overlays maps overlay names to the style tweaks they apply.
var overlays = map[string]func() style.Option{
	"stellar":         style.WithStellarOverlay,
	"population":      style.WithPopulationOverlay,
	"importance":      style.WithImportanceOverlay,
	"capitals":        style.WithCapitalOverlay,
	"dimunofficial":   style.WithDimUnofficial,
	"review":          style.WithReviewStatus,
	"droyne":          style.WithDroyneWorlds,
	"minorhomeworlds": style.WithMinorHomeworlds,
	"ancients":        style.WithAncientsWorlds,
	"subsectorhexes":  style.WithSubsectorCoordinates,
	"allhexes":        style.WithAllHexesNumbered,
	"nogrid":          style.WithoutParsecGrid,
	"noroutes":        style.WithoutRoutes,
	"norifts":         style.WithoutRifts,
}

// Overlays returns the accepted overlay names, sorted.
func Overlays() []string {
	names := make([]string, 0, len(overlays))
	for n := range overlays {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func overlayOptions(names []string) ([]style.Option, error) {
	var opts []style.Option
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		mk, ok := overlays[n]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown overlay %q (valid: %s)", n, strings.Join(Overlays(), ", "))
		}
		opts = append(opts, mk())
	}
	return opts, nil
}

// ParseMapOptions parses a map option bit set written in decimal or as
// 0x-prefixed hex. Blank input yields the defaults.
func ParseMapOptions(s string) (style.MapOptions, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultMapOptions, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "map options %q", s)
	}
	return style.MapOptions(v), nil
}

// ParseOverlays splits a comma separated overlay list.
func ParseOverlays(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Snapshot builds the style snapshot for o.
func (o *Options) Snapshot() (*style.Snapshot, error) {
	theme, err := style.ParseTheme(o.Style)
	if err != nil {
		return nil, err
	}
	opts, err := overlayOptions(o.Overlays)
	if err != nil {
		return nil, err
	}
	pattern, err := style.ParseHighlight(o.Highlight)
	if err != nil {
		return nil, err
	}
	if pattern != nil {
		opts = append(opts, style.WithHighlight(pattern))
	}
	return style.New(o.Scale, o.MapOptions, theme, opts...), nil
}

// sectorLookup is implemented by providers that can find sectors by name.
type sectorLookup interface {
	Lookup(name string) *sector.Sector
}

// FindSector resolves ref against p. A ref of the form "x,y" names sector
// coordinates; anything else is matched against names and abbreviations.
func FindSector(p sector.Provider, ref string) (*sector.Sector, error) {
	ref = strings.TrimSpace(ref)
	var x, y int
	if n, err := fmt.Sscanf(ref, "%d,%d", &x, &y); err == nil && n == 2 {
		if s := p.Sector(x, y); s != nil {
			return s, nil
		}
	} else if l, ok := p.(sectorLookup); ok {
		if s := l.Lookup(ref); s != nil {
			return s, nil
		}
	}
	return nil, errors.New(errors.ErrCodeSectorNotFound, "sector %q not found", ref)
}
