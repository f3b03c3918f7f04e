package pipeline

import (
	"github.com/travellermap/hexmap/pkg/render"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
)

// =============================================================================
// Request Layout
// =============================================================================

// BuildRequest resolves o against p into a render request: the tile
// rectangle for tiles, or the sector outline and image size for sectors.
// Options must already have defaults applied.
func BuildRequest(p sector.Provider, o Options) (*render.Request, error) {
	s, err := o.Snapshot()
	if err != nil {
		return nil, err
	}
	if o.IsSector() {
		return buildSectorRequest(p, s, o)
	}
	req, err := render.NewTileRequest(p, s, o.X, o.Y, o.Width, o.Height)
	if err != nil {
		return nil, err
	}
	req.ClipOutsectorBorders = o.ClipOutsectorBorders
	return req, nil
}

func buildSectorRequest(p sector.Provider, s *style.Snapshot, o Options) (*render.Request, error) {
	sec, err := FindSector(p, o.Sector)
	if err != nil {
		return nil, err
	}
	req, err := render.NewSectorRequest(p, s, sec, o.SectorClip)
	if err != nil {
		return nil, err
	}
	req.ClipOutsectorBorders = o.ClipOutsectorBorders
	return req, nil
}
