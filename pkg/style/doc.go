// Package style derives the per-pass appearance of the map from the zoom
// scale, the request's option flags and a named theme.
//
// [New] returns a [Snapshot]: visibility of every feature class, pens,
// fills, fonts, label placement and the layer stacking order. Most
// visibilities are scale bands; a few values fade on a log2 scale through
// [ScaleInterpolate]. Themes apply their overrides after the scale-derived
// defaults, and per-request [Option]s apply last:
//
//	hw, _ := style.ParseHighlight("p9+")
//	s := style.New(64, style.DefaultMapOptions, style.Atlas,
//		style.WithHighlight(hw), style.WithoutRifts())
//	if s.MicroBorders.Visible {
//		// ...
//	}
//
// Glyph anchors (starport, bases, gas giant, allegiance, name) follow the
// detail tier chosen by scale: abbreviated below [WorldFullMinScale], full
// above it. Themes may move them afterwards.
package style
