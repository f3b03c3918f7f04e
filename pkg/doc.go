// Package pkg provides the core libraries for hexmap, a renderer for
// Traveller-style hex star maps.
//
// # Overview
//
// The map is a plane of sectors, each 32 hexes wide and 40 tall. hexmap turns
// sector data (worlds, borders, routes, labels) into PNG, JPEG or SVG images
// at any scale from the whole charted space down to a few hexes. The pkg
// directory is organized into four main areas:
//
//  1. Coordinates and data ([astrometrics], [sector], [stylesheet])
//  2. Styling ([style])
//  3. Drawing ([graphics], [borderpath], [fonts], [render])
//  4. Orchestration and infrastructure ([pipeline], [cache], [errors],
//     [observability], [buildinfo])
//
// # Architecture
//
// The typical data flow through hexmap:
//
//	TOML scene
//	     ↓
//	[sector] package (sectors, worlds, borders, routes, stylesheets)
//	     ↓
//	[style] package (theme + scale + options → style snapshot)
//	     ↓
//	[render] package (layers drawn onto a graphics backend)
//	     ↓
//	PNG/JPEG/SVG output
//
// # Quick Start
//
// Render one tile:
//
//	import (
//	    "context"
//
//	    "github.com/travellermap/hexmap/pkg/pipeline"
//	    "github.com/travellermap/hexmap/pkg/sector"
//	)
//
//	// 1. Load the map data
//	p, _ := sector.LoadFile("scene.toml")
//
//	// 2. Render through the pipeline
//	res, _ := pipeline.Render(context.Background(), p, pipeline.Options{
//	    Scale: 64,
//	    Style: "atlas",
//	})
//
//	// 3. res.Data holds the encoded image
//	os.WriteFile("tile."+res.Format.Extension(), res.Data, 0o644)
//
// # Main Packages
//
// ## Coordinates and Data
//
// [astrometrics] - Hex, sector and world-space coordinates. Global
// coordinates are parsecs from the reference hex; odd columns sit half a hex
// lower than even ones.
//
// [sector] - The map data model and the [sector.Provider] interface renderers
// read from. [sector.MemoryProvider] is loaded from TOML scenes.
//
// [stylesheet] - The small CSS dialect sectors use to color their borders and
// routes, with a built-in default sheet.
//
// ## Styling
//
// [style] - Derives a [style.Snapshot] (every pen, font and visibility
// decision) from scale, map options and one of eight themes.
//
// ## Drawing
//
// [graphics] - The drawing interface with raster (fogleman/gg) and SVG
// backends.
//
// [borderpath] - Traces border and region outlines along hex edges.
//
// [fonts] - Font faces shared by both backends.
//
// [render] - The layered map renderer.
//
// ## Orchestration and Infrastructure
//
// [pipeline] - Validates options, renders, and caches the result. Used by
// both the CLI and the tile service.
//
// [cache] - Tile cache backends: file, Redis and null.
//
// [errors] - Coded errors that map to exit codes and HTTP statuses.
//
// [observability] - Hooks for render, cache and HTTP events.
//
// [buildinfo] - Version information set at link time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/render/...     # Specific package
//	go test -run Example ./...   # Examples only
//
// [astrometrics]: https://pkg.go.dev/github.com/travellermap/hexmap/pkg/astrometrics
// [sector]: https://pkg.go.dev/github.com/travellermap/hexmap/pkg/sector
// [stylesheet]: https://pkg.go.dev/github.com/travellermap/hexmap/pkg/stylesheet
// [style]: https://pkg.go.dev/github.com/travellermap/hexmap/pkg/style
// [graphics]: https://pkg.go.dev/github.com/travellermap/hexmap/pkg/graphics
// [borderpath]: https://pkg.go.dev/github.com/travellermap/hexmap/pkg/borderpath
// [fonts]: https://pkg.go.dev/github.com/travellermap/hexmap/pkg/fonts
// [render]: https://pkg.go.dev/github.com/travellermap/hexmap/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/travellermap/hexmap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/travellermap/hexmap/pkg/cache
// [errors]: https://pkg.go.dev/github.com/travellermap/hexmap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/travellermap/hexmap/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/travellermap/hexmap/pkg/buildinfo
package pkg
