// Package sector holds the map data consumed by the renderer: sectors with
// their subsectors, borders, regions, routes, labels and worlds, plus the
// galaxy-scale vector objects and capital lists drawn at low zoom.
//
// # Providers
//
// Renderers never read files. They ask a [Provider] for the sectors that
// intersect a tile and for optional resources such as background images.
// Providers must tolerate data that is not loaded: a missing sector or image
// is reported as nil, never as a panic.
//
//	p, err := sector.LoadFile("spinward.toml")
//	if err != nil {
//	    return err
//	}
//	sel := sector.NewRectSelector(p, tileRect, true)
//	for _, s := range sel.Sectors() {
//	    ...
//	}
//
// # Scene files
//
// [Decode] and [LoadFile] read a TOML scene: a list of sectors, each with
// optional subsector names, borders given as hex paths ("0101 0102 0202"),
// routes, labels, worlds and an inline stylesheet. See testdata/scene.toml
// for a complete example.
package sector
