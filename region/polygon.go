package region

import (
	"errors"

	"github.com/katalvlaran/lvmesh/geom"
)

// ErrTooFewPoints is returned by New for polygons with fewer than three points.
var ErrTooFewPoints = errors.New("region: polygon needs at least three points")

// Polygon is the ordered region boundary. The closing edge from the last point
// back to the first is implicit.
type Polygon struct {
	pts []geom.Point
}

// New builds a polygon from an ordered boundary. The slice is copied.
func New(points []geom.Point) (*Polygon, error) {
	if len(points) < 3 {
		return nil, ErrTooFewPoints
	}
	p := &Polygon{pts: make([]geom.Point, len(points))}
	copy(p.pts, points)

	return p, nil
}

// Len returns the number of boundary points.
func (p *Polygon) Len() int { return len(p.pts) }

// Points returns a copy of the boundary in order.
func (p *Polygon) Points() []geom.Point {
	out := make([]geom.Point, len(p.pts))
	copy(out, p.pts)

	return out
}

// Clone returns an independent copy; points are immutable and shared.
func (p *Polygon) Clone() *Polygon {
	return &Polygon{pts: p.Points()}
}

// edge returns the i-th boundary edge (pts[i], pts[i+1 mod n]).
func (p *Polygon) edge(i int) (geom.Point, geom.Point) {
	return p.pts[i], p.pts[(i+1)%len(p.pts)]
}

// OnBoundary reports whether q lies on any boundary edge (endpoints included).
func (p *Polygon) OnBoundary(q geom.Point) bool {
	var i int
	for i = range p.pts {
		a, b := p.edge(i)
		if geom.OnSegment(q, a, b) {
			return true
		}
	}

	return false
}

// Contains reports whether q lies inside the region or on its boundary.
//
// Crossing-number test with exact arithmetic: a horizontal ray from q is
// intersected with every edge using the half-open rule on y, which counts
// shared vertices exactly once.
//
// Complexity: O(n).
func (p *Polygon) Contains(q geom.Point) bool {
	if p.OnBoundary(q) {
		return true
	}

	return p.strictlyInside(q)
}

// strictlyInside assumes q is not on the boundary.
func (p *Polygon) strictlyInside(q geom.Point) bool {
	var (
		i      int
		inside bool
	)
	for i = range p.pts {
		a, b := p.edge(i)
		aAbove := a.Y.Cmp(q.Y) > 0
		bAbove := b.Y.Cmp(q.Y) > 0
		if aAbove == bAbove {
			continue
		}
		// The edge straddles the ray's line; q is left of the edge iff the
		// orientation of (lower, upper, q) is positive.
		lo, hi := a, b
		if aAbove {
			lo, hi = b, a
		}
		if geom.Orientation(lo, hi, q) > 0 {
			inside = !inside
		}
	}

	return inside
}

// EdgeOnBoundary reports whether the segment p1p2 lies on a single boundary
// edge.
func (p *Polygon) EdgeOnBoundary(p1, p2 geom.Point) bool {
	var i int
	for i = range p.pts {
		a, b := p.edge(i)
		if geom.OnSegment(p1, a, b) && geom.OnSegment(p2, a, b) {
			return true
		}
	}

	return false
}

// EdgeInside reports whether the segment p1p2 lies in the closed region: both
// endpoints and the midpoint are contained and no boundary edge crosses it.
func (p *Polygon) EdgeInside(p1, p2 geom.Point) bool {
	if !p.Contains(p1) || !p.Contains(p2) || !p.Contains(geom.Midpoint(p1, p2)) {
		return false
	}
	var i int
	for i = range p.pts {
		a, b := p.edge(i)
		if geom.SegmentsCross(p1, p2, a, b) {
			return false
		}
	}

	return true
}

// FaceInside reports whether the triangle a, b, c belongs to the region.
// In a triangulation that contains every boundary edge a face is either
// entirely inside or entirely outside, so testing its centroid suffices.
func (p *Polygon) FaceInside(a, b, c geom.Point) bool {
	return p.Contains(geom.Centroid(a, b, c))
}

// FaceOnBoundary reports whether any edge of the triangle lies on the boundary.
func (p *Polygon) FaceOnBoundary(a, b, c geom.Point) bool {
	return p.EdgeOnBoundary(a, b) || p.EdgeOnBoundary(b, c) || p.EdgeOnBoundary(c, a)
}

// BoundaryEdgeContaining returns the endpoints of the boundary edge whose
// interior contains q, or false if q is not strictly inside any boundary edge.
func (p *Polygon) BoundaryEdgeContaining(q geom.Point) (geom.Point, geom.Point, bool) {
	var i int
	for i = range p.pts {
		a, b := p.edge(i)
		if geom.InsideSegment(q, a, b) {
			return a, b, true
		}
	}

	return geom.Point{}, geom.Point{}, false
}

// Update splices steiner between edgeP1 and edgeP2 when they are consecutive
// boundary points (in either order) and steiner lies strictly inside that
// edge. It reports whether the polygon changed. Order is otherwise preserved.
//
// Complexity: O(n).
func (p *Polygon) Update(steiner, edgeP1, edgeP2 geom.Point) bool {
	if !geom.InsideSegment(steiner, edgeP1, edgeP2) {
		return false
	}
	n := len(p.pts)
	var i int
	for i = 0; i < n; i++ {
		a, b := p.edge(i)
		if (a.Equal(edgeP1) && b.Equal(edgeP2)) || (a.Equal(edgeP2) && b.Equal(edgeP1)) {
			// Insert after position i; for the closing edge this appends.
			p.pts = append(p.pts, geom.Point{})
			copy(p.pts[i+2:], p.pts[i+1:])
			p.pts[i+1] = steiner

			return true
		}
	}

	return false
}

// Adopt replaces the boundary of p with the one of src.
func (p *Polygon) Adopt(src *Polygon) { p.pts = src.pts }
