// Package render composes Traveller map images from sector data.
//
// # Overview
//
// A render pass draws one [Request] onto any [graphics.Graphics] backend.
// The pass is a fixed table of layers (backgrounds, grids, borders, routes,
// labels, worlds and overlays) sorted by the stacking order of the request's
// [style.Snapshot], so themes can reorder layers without touching the
// drawing code.
//
// # Requests
//
// [NewTileRequest] covers one map tile addressed by tile column and row at a
// scale. [NewSectorRequest] covers one whole sector and can clip the image
// to the sector's jagged outline:
//
//	s := style.New(64, style.DefaultMapOptions, style.Poster)
//	req, err := render.NewTileRequest(provider, s, 0, 0, 256, 256)
//	data, format, err := render.Tile(ctx, req, style.FormatPNG)
//
// # Clipping
//
// Most layers are clipped to the tile rectangle, or to the request's clip
// path when one is set. World and overlay layers are not clipped so that
// names near a tile edge are drawn whole on both tiles. Raster tiles without
// a clip path skip the tile clip entirely since the canvas already crops it.
//
// # Output
//
// [Tile] renders to PNG or JPEG through the raster backend and to SVG
// through the vector backend. Rendering the same request to both backends
// issues the same drawing calls, which [graphics.Recorder] can verify.
package render
