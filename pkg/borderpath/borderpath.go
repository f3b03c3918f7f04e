package borderpath

import (
	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/graphics"
)

// Cell is one step of a perimeter walk.
type Cell struct {
	Point astrometrics.Point
	// Valid is false for cells outside the charted sector. Outline vertices
	// emitted from invalid cells start a new curve segment.
	Valid bool
}

// CurveSegment is a polyline through outline vertices. A closed segment does
// not repeat its first point at the end.
type CurveSegment struct {
	Points []astrometrics.PointF
	Closed bool
}

// Trace is the result of one perimeter walk.
type Trace struct {
	// Path is the straight-edged outline. Only the first vertex is a start
	// vertex and only the last vertex carries the close flag.
	Path graphics.Path

	// Curves holds the outline split into drawable curve segments.
	Curves []CurveSegment
}

// Bounds returns the bounding box of the traced outline.
func (t *Trace) Bounds() astrometrics.RectangleF {
	return t.Path.Bounds()
}

// Walk traces the outline of the cells. The sequence must be the cyclic
// perimeter of a region, normally ending where it started. Cells may repeat;
// the walk stops when the start cell is entered again with nothing left to
// check, and aborts if it is entered a third time.
func Walk(cells []Cell, pathType astrometrics.PathType) Trace {
	if len(cells) == 0 {
		return Trace{}
	}
	edgeX, edgeY := astrometrics.HexEdges(pathType)

	members := make(map[astrometrics.Point]struct{}, len(cells))
	for _, c := range cells {
		members[c.Point] = struct{}{}
	}

	points := make([]astrometrics.PointF, 0, len(cells)*3)
	types := make([]graphics.PointType, 0, len(cells)*3)
	var segments [][]astrometrics.PointF
	var current []astrometrics.PointF

	checkFirst := 0
	var start astrometrics.Point
	startVisited := false

	for _, cell := range cells {
		checkLast := checkFirst + 5

		if startVisited && cell.Point == start {
			// Back at the start: stop at direction 5 no matter what.
			checkLast = 5

			// Entering for the third time.
			if checkFirst < 3 {
				break
			}
		} else if !startVisited {
			start = cell.Point
			startVisited = true

			pt := astrometrics.HexToCenter(cell.Point).Add(edgeX[0], edgeY[0])
			points = append(points, pt)
			types = append(types, graphics.PointStart)
			current = append(current, pt)
		}

		center := astrometrics.HexToCenter(cell.Point)

		i := checkFirst
		for check := checkFirst; check <= checkLast; check++ {
			i = check
			if _, ok := members[cell.Point.Neighbor(i%6)]; ok {
				break
			}

			pt := center.Add(edgeX[(i+1)%6], edgeY[(i+1)%6])
			points = append(points, pt)
			types = append(types, graphics.PointLine)

			if cell.Valid {
				current = append(current, pt)
			} else {
				if len(current) > 1 {
					segments = append(segments, current)
				}
				current = []astrometrics.PointF{pt}
			}
		}

		// i is the direction to the next cell. Arriving there we come from
		// i+3, so checking resumes at i+4.
		i %= 6
		checkFirst = (i + 4) % 6
	}

	types[len(types)-1] |= graphics.PointClose

	if len(current) > 1 {
		segments = append(segments, current)
	}

	return Trace{
		Path:   graphics.NewPath(points, types),
		Curves: classify(mergeWraparound(segments)),
	}
}

// mergeWraparound joins the last segment to the first when the outline
// closes across a sector seam.
func mergeWraparound(segments [][]astrometrics.PointF) [][]astrometrics.PointF {
	n := len(segments)
	if n < 2 {
		return segments
	}
	first, last := segments[0], segments[n-1]
	if first[0] != last[len(last)-1] {
		return segments
	}
	merged := append(last, first[1:]...)
	out := segments[1:]
	out[len(out)-1] = merged
	return out
}

func classify(segments [][]astrometrics.PointF) []CurveSegment {
	curves := make([]CurveSegment, 0, len(segments))
	for _, s := range segments {
		if s[0] == s[len(s)-1] {
			curves = append(curves, CurveSegment{Points: s[:len(s)-1], Closed: true})
			continue
		}
		curves = append(curves, CurveSegment{Points: s})
	}
	return curves
}
