package render

import (
	"context"
	"slices"
	"time"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/observability"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
)

// layer is one step of the compositor. Clipped layers are drawn inside the
// tile clip; the rest may spill past it.
type layer struct {
	id   style.LayerID
	draw func(*pass) error
	clip bool
}

// layers lists every step. Render sorts them by the snapshot's stacking
// order, so the order here only matters for ties.
var layers = []layer{
	{style.LayerBackgroundSolid, (*pass).drawSolidBackground, true},
	{style.LayerBackgroundNebula, (*pass).drawNebulaBackground, true},
	{style.LayerBackgroundGalaxy, (*pass).drawGalaxyBackground, true},
	{style.LayerBackgroundPseudoRandomStars, (*pass).drawPseudoRandomStars, true},
	{style.LayerBackgroundRifts, (*pass).drawRifts, true},

	{style.LayerMacroBorders, (*pass).drawMacroBorders, true},
	{style.LayerMacroRoutes, (*pass).drawMacroRoutes, true},

	{style.LayerGridSector, (*pass).drawSectorGrid, true},
	{style.LayerGridSubsector, (*pass).drawSubsectorGrid, true},
	{style.LayerGridParsec, (*pass).drawParsecGrid, true},

	{style.LayerNamesSubsector, (*pass).drawSubsectorNames, true},

	{style.LayerMicroBordersFill, (*pass).drawMicroBordersFill, true},
	{style.LayerMicroBordersShade, (*pass).drawMicroBordersShade, true},
	{style.LayerMicroBordersStroke, (*pass).drawMicroBordersStroke, true},
	{style.LayerMicroRoutes, (*pass).drawRoutes, true},
	{style.LayerMicroBorderExplicitLabels, (*pass).drawExplicitLabels, true},

	{style.LayerNamesSector, (*pass).drawSectorNames, true},

	{style.LayerMacroNames, (*pass).drawMacroNames, true},
	{style.LayerMacroCapitals, (*pass).drawCapitals, true},
	{style.LayerMegaLabels, (*pass).drawMegaLabels, true},

	{style.LayerWorldsBackground, (*pass).drawWorldsBackground, false},
	{style.LayerWorldsForeground, (*pass).drawWorldsForeground, false},
	{style.LayerWorldsOverlays, (*pass).drawWorldsOverlays, false},

	{style.LayerOverlayDroyneChirper, (*pass).drawDroyneOverlay, false},
	{style.LayerOverlayMinorHomeworlds, (*pass).drawMinorHomeworldOverlay, false},
	{style.LayerOverlayAncients, (*pass).drawAncientsOverlay, false},
	{style.LayerOverlayReviewStatus, (*pass).drawReviewStatus, false},
}

// Layers returns the layer IDs in the order Render draws them for s.
func Layers(s *style.Snapshot) []style.LayerID {
	ordered := sortedLayers(s)
	out := make([]style.LayerID, len(ordered))
	for i, l := range ordered {
		out[i] = l.id
	}
	return out
}

func sortedLayers(s *style.Snapshot) []layer {
	out := slices.Clone(layers)
	slices.SortStableFunc(out, func(a, b layer) int {
		return s.LayerIndex(a.id) - s.LayerIndex(b.id)
	})
	return out
}

// pass carries the per-render scratch state. Pens and brushes are reused
// between draw calls and must be fully set before each use.
type pass struct {
	req   *Request
	s     *style.Snapshot
	g     graphics.Graphics
	sel   sector.Selector
	pen   graphics.Pen
	brush graphics.Brush

	clipping bool
	clipSave graphics.State
}

// Render composes the map described by req onto g. It may be called
// concurrently for different Graphics.
func Render(g graphics.Graphics, req *Request) error {
	return RenderContext(context.Background(), g, req)
}

// RenderContext is Render with cancellation checked between layers. Each
// finished layer is reported to observability.Render().OnLayer.
func RenderContext(ctx context.Context, g graphics.Graphics, req *Request) error {
	if err := req.validate(); err != nil {
		return err
	}
	p := &pass{req: req, s: req.Style, g: g, sel: req.selector()}

	outer := g.Save()
	defer g.Restore(outer)

	if req.DrawBorder && req.ClipPath != nil {
		if err := p.drawImageBorder(); err != nil {
			return err
		}
	}

	inner := g.Save()
	defer g.Restore(inner)
	g.MultiplyTransform(req.ImageSpaceToWorldSpace())

	for _, l := range sortedLayers(p.s) {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeRender, err, "render cancelled")
		}
		if err := p.setClip(l.clip); err != nil {
			return err
		}
		start := time.Now()
		if err := l.draw(p); err != nil {
			return errors.Wrap(errors.ErrCodeRender, err, "layer %s", l.id)
		}
		observability.Render().OnLayer(ctx, l.id.String(), time.Since(start))
	}
	return p.setClip(false)
}

// setClip moves the clip state machine. Entering the clipped state saves
// and intersects; leaving it restores. Raster output without an explicit
// clip path skips clipping: the tile edges already crop it.
func (p *pass) setClip(on bool) error {
	if on == p.clipping {
		return nil
	}
	if !on {
		p.g.Restore(p.clipSave)
		p.clipping = false
		return nil
	}
	if !p.g.Vector() && p.req.ClipPath == nil {
		return nil
	}
	p.clipSave = p.g.Save()
	p.clipping = true
	if p.req.ClipPath != nil {
		return p.g.IntersectClipPath(*p.req.ClipPath)
	}
	p.g.IntersectClipRect(p.req.TileRect)
	return nil
}

// drawImageBorder strokes the outer half of the clip path's outline.
func (p *pass) drawImageBorder() error {
	g, s, clip := p.g, p.s, *p.req.ClipPath
	state := g.Save()
	defer g.Restore(state)
	g.MultiplyTransform(p.req.ImageSpaceToWorldSpace())

	pen := graphics.Pen{Color: s.ImageBorderColor, Width: s.ImageBorderWidth}
	bounds := clip.Bounds().Inflate(2*pen.Width, 2*pen.Width)

	// Wind a rectangle around the path the opposite way: the inside of the
	// outline cancels out and only the band around it stays drawable.
	key := clip.Points[0]
	l, t, r, b := bounds.Left(), bounds.Top(), bounds.Right(), bounds.Bottom()
	points := append(slices.Clone(clip.Points),
		astrometrics.PointF{X: l, Y: key.Y},
		astrometrics.PointF{X: l, Y: b},
		astrometrics.PointF{X: r, Y: b},
		astrometrics.PointF{X: r, Y: t},
		astrometrics.PointF{X: l, Y: t},
		astrometrics.PointF{X: l, Y: key.Y},
		key,
	)
	types := append(slices.Clone(clip.Types), make([]graphics.PointType, 7)...)
	for i := len(clip.Types); i < len(types); i++ {
		types[i] = graphics.PointLine
	}
	types[len(types)-1] |= graphics.PointClose

	if err := g.IntersectClipPath(graphics.NewPath(points, types)); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "image border")
	}
	return g.DrawPath(&pen, nil, clip)
}

// worldSpaceToImageSpace returns the inverse of the image transform, for
// layers drawn in pixels.
func (p *pass) worldSpaceToImageSpace() graphics.Matrix {
	m, _ := p.req.ImageSpaceToWorldSpace().Invert()
	return m
}

// sectors returns the selected sectors. Selection may be lazy so callers
// ask once per layer.
func (p *pass) sectors() []*sector.Sector { return p.sel.Sectors() }

// mapOptions returns the option bits as the raw mask stored on vector
// objects and macro worlds.
func (p *pass) mapOptions() uint32 { return uint32(p.s.Options) }
