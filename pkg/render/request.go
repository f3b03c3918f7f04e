package render

import (
	"math"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
)

// Scale limits accepted by the request constructors.
const (
	MinScale = 1.0 / 128
	MaxScale = 512
)

// MaxTileSize bounds either side of an output image, in pixels.
const MaxTileSize = 4096

// Request describes one render pass. It is not modified by the renderer and
// may be reused for several passes.
type Request struct {
	Provider sector.Provider
	// Selector chooses the sectors, worlds and routes drawn. Nil selects
	// everything overlapping TileRect, with slop.
	Selector sector.Selector

	// TileRect is the viewport in world space (parsecs).
	TileRect astrometrics.RectangleF
	Scale    float64
	// Width and Height are the output size in pixels.
	Width, Height int

	Style *style.Snapshot

	// ClipPath, in world space, replaces TileRect as the clip of the
	// clipped layers.
	ClipPath *graphics.Path
	// DrawBorder strokes ClipPath with the image border pen.
	DrawBorder bool
	// ClipOutsectorBorders clips micro borders to their own sector.
	ClipOutsectorBorders bool
}

// TileRect returns the world-space rectangle of tile (x, y) of size
// width x height pixels at scale.
func TileRect(x, y, scale float64, width, height int) astrometrics.RectangleF {
	px, py := astrometrics.ParsecToPixels(scale)
	return astrometrics.RectangleF{
		X:      x * float64(width) / px,
		Y:      y * float64(height) / py,
		Width:  float64(width) / px,
		Height: float64(height) / py,
	}
}

func checkScale(scale float64) error {
	if math.IsNaN(scale) || scale < MinScale || scale > MaxScale {
		return errors.New(errors.ErrCodeOutOfRange, "scale %g out of range [%g,%g]", scale, MinScale, MaxScale)
	}
	return nil
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxTileSize || height > MaxTileSize {
		return errors.New(errors.ErrCodeOutOfRange, "tile size %dx%d out of range [1,%d]", width, height, MaxTileSize)
	}
	return nil
}

// NewTileRequest returns the request for map tile (x, y).
func NewTileRequest(p sector.Provider, s *style.Snapshot, x, y float64, width, height int) (*Request, error) {
	if err := checkScale(s.Scale); err != nil {
		return nil, err
	}
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return &Request{
		Provider:             p,
		TileRect:             TileRect(x, y, s.Scale, width, height),
		Scale:                s.Scale,
		Width:                width,
		Height:               height,
		Style:                s,
		ClipOutsectorBorders: true,
	}, nil
}

// NewSectorRequest returns a request rendering the whole of sec. The image
// is sized to the sector at the snapshot's scale. With clip set, drawing is
// clipped to the sector's outline and the outline is stroked.
func NewSectorRequest(p sector.Provider, s *style.Snapshot, sec *sector.Sector, clip bool) (*Request, error) {
	if err := checkScale(s.Scale); err != nil {
		return nil, err
	}
	rect := sec.Bounds().Float()
	// Jagged hex columns overhang the bounds.
	rect.Height += 0.5
	rect = rect.Inflate(0.25, 0.10)
	if s.Theme == style.Candy {
		rect.Width += 0.75
	}
	px, py := astrometrics.ParsecToPixels(s.Scale)
	width, height := int(math.Floor(rect.Width*px)), int(math.Floor(rect.Height*py))
	if err := checkSize(width, height); err != nil {
		return nil, err
	}

	req := &Request{
		Provider: p,
		Selector: sectorSelector{sec},
		TileRect: rect,
		Scale:    s.Scale,
		Width:    width,
		Height:   height,
		Style:    s,
	}
	if clip {
		pathType := astrometrics.PathSquare
		if s.MicroBorderStyle != style.MicroBorderSquare {
			pathType = astrometrics.PathHex
		}
		c := sec.ClipPath(pathType)
		req.ClipPath = &c.Path
		req.DrawBorder = true
	}
	return req, nil
}

// sectorSelector selects the contents of a single sector.
type sectorSelector struct{ sec *sector.Sector }

func (s sectorSelector) Sectors() []*sector.Sector { return []*sector.Sector{s.sec} }
func (s sectorSelector) Worlds() []*sector.World   { return s.sec.Worlds }
func (s sectorSelector) Routes() []sector.SectorRoute {
	out := make([]sector.SectorRoute, len(s.sec.Routes))
	for i, r := range s.sec.Routes {
		out[i] = sector.SectorRoute{Sector: s.sec, Route: r}
	}
	return out
}

// ImageSpaceToWorldSpace maps world coordinates onto output pixels.
func (r *Request) ImageSpaceToWorldSpace() graphics.Matrix {
	px, py := astrometrics.ParsecToPixels(r.Scale)
	return graphics.Identity().
		Translate(-r.TileRect.Left()*px, -r.TileRect.Top()*py).
		Scale(px, py)
}

func (r *Request) validate() error {
	if r.Style == nil {
		return errors.New(errors.ErrCodeInvalidInput, "render request has no style")
	}
	if r.Provider == nil && r.Selector == nil {
		return errors.New(errors.ErrCodeInvalidInput, "render request has no data provider")
	}
	if err := checkScale(r.Scale); err != nil {
		return err
	}
	if err := checkSize(r.Width, r.Height); err != nil {
		return err
	}
	if r.ClipPath != nil {
		if err := r.ClipPath.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeRender, err, "clip path")
		}
	}
	return nil
}

func (r *Request) selector() sector.Selector {
	if r.Selector != nil {
		return r.Selector
	}
	return sector.NewRectSelector(r.Provider, r.TileRect, true)
}
