// Package borderpath traces the outline of a set of adjacent hex cells.
//
// A border is described by the ordered cells along its inner perimeter. The
// tracer walks that sequence once and produces two views of the outline:
//
//   - a straight-edged polygon (a graphics.Path with start, line and close
//     tags) used for filling and clipping
//   - a list of polyline segments, each open or closed, used to draw smoothed
//     curves
//
// Segments break wherever the walk passes through a cell outside the sector,
// because a curve cannot be smoothed through cells that are not drawn.
//
// The walk itself is performed in global coordinates so the same algorithm
// serves sector borders, whose paths are sector-relative hexes, and sector
// clip outlines, whose paths are global cells.
package borderpath
