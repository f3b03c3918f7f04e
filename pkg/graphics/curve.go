package graphics

import (
	"math"

	"github.com/travellermap/hexmap/pkg/astrometrics"
)

// cubic is one cubic Bézier segment continuing from the previous end point.
type cubic struct {
	C1, C2, To astrometrics.PointF
}

// cardinal converts a cardinal spline through points into cubic segments.
// Tension 0 gives a Catmull-Rom spline. When closed, a final segment returns
// to the first point. Fewer than two points produce no segments.
func cardinal(points []astrometrics.PointF, tension float64, closed bool) []cubic {
	n := len(points)
	if n < 2 {
		return nil
	}
	a := tension + 1
	deriv := func(i int) astrometrics.PointF {
		var p, q astrometrics.PointF
		switch {
		case closed:
			p, q = points[(i+1)%n], points[(i+n-1)%n]
		case i == 0:
			p, q = points[1], points[0]
		case i == n-1:
			p, q = points[i], points[i-1]
		default:
			p, q = points[i+1], points[i-1]
		}
		return astrometrics.PointF{X: (p.X - q.X) / a, Y: (p.Y - q.Y) / a}
	}

	out := make([]cubic, 0, n)
	last, lastd := points[0], deriv(0)
	segment := func(pt, ptd astrometrics.PointF) {
		out = append(out, cubic{
			C1: astrometrics.PointF{X: last.X + lastd.X/3, Y: last.Y + lastd.Y/3},
			C2: astrometrics.PointF{X: pt.X - ptd.X/3, Y: pt.Y - ptd.Y/3},
			To: pt,
		})
		last, lastd = pt, ptd
	}
	for i := 1; i < n; i++ {
		segment(points[i], deriv(i))
	}
	if closed {
		segment(points[0], deriv(0))
	}
	return out
}

// arcEndpoints converts a center-parameterized arc inscribed in r, with
// clockwise angles in degrees, into SVG endpoint parameters.
func arcEndpoints(r astrometrics.RectangleF, startAngle, sweepAngle float64) (from, to astrometrics.PointF, rx, ry float64, large, sweep int) {
	rx, ry = r.Width/2, r.Height/2
	cx, cy := r.X+rx, r.Y+ry
	start := -startAngle * math.Pi / 180
	sw := -sweepAngle * math.Pi / 180
	from = astrometrics.PointF{X: rx*math.Cos(start) + cx, Y: -ry*math.Sin(start) + cy}
	to = astrometrics.PointF{X: rx*math.Cos(start+sw) + cx, Y: -ry*math.Sin(start+sw) + cy}
	if math.Abs(sw) > math.Pi {
		large = 1
	}
	if sw < 0 {
		sweep = 1
	}
	return from, to, rx, ry, large, sweep
}
