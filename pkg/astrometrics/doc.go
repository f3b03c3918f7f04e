// Package astrometrics implements the hex-grid coordinate system of the map.
//
// # Coordinate Spaces
//
// Three spaces are used throughout the renderer:
//
//   - Sector space: integer sector addresses ([Point]), one per 32x40 parsec sector.
//   - Hex space: 1-based [Hex] cells within a sector. Cells outside 1..32 x 1..40
//     are representable and mark border segments that leave the sector.
//   - Global space: a single unbounded integer grid ([Point]) centered on the
//     reference hex (Core 0140). [LocationToCoordinates] and
//     [CoordinatesToLocation] convert between sector+hex and global space and
//     round-trip exactly.
//
// World space is the continuous plane in which hexes are drawn: [HexToCenter]
// maps a global coordinate to the center of its cell, with even columns
// shifted up by half a parsec. Horizontal distances are compressed by
// [ParsecScaleX] (cos 30°) when projected to pixels.
//
// # Neighbors
//
// Directions 0..5 start at the lower-left edge and proceed clockwise. The
// column-parity rule for neighbors is inverted between [Hex.Neighbor] and
// [Point.Neighbor] because the reference hex sits in an odd column; both
// produce the same cell for the same location.
//
// # Edges
//
// [HexEdges] returns the six corner offsets for hex-shaped and square-shaped
// cells. Corner i+1 lies between the edges facing directions i and i+1,
// which is what the border tracer in package borderpath relies on.
package astrometrics
