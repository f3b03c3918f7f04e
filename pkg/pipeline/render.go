package pipeline

import (
	"context"
	"time"

	"github.com/travellermap/hexmap/pkg/render"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
)

// Render draws o without caching. Defaults are applied and the options are
// validated first.
func Render(ctx context.Context, p sector.Provider, o Options) (*Result, error) {
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	req, err := BuildRequest(p, o)
	if err != nil {
		return nil, err
	}
	format, _ := style.ParseFormat(o.Format)
	data, format, err := render.Tile(ctx, req, format)
	if err != nil {
		return nil, err
	}
	return &Result{
		Data:        data,
		Format:      format,
		ContentType: format.ContentType(),
		Duration:    time.Since(start),
	}, nil
}
