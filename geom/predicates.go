package geom

import "math/big"

// Orientation returns +1 if a, b, c turn counter-clockwise, -1 if clockwise and
// 0 if they are collinear.
//
// Complexity: O(1).
func Orientation(a, b, c Point) int {
	ux, uy := sub(b, a)
	vx, vy := sub(c, a)

	return cross(ux, uy, vx, vy).Sign()
}

// InCircle returns +1 if d lies strictly inside the circumcircle of the
// counter-clockwise triangle a, b, c, -1 if strictly outside, 0 if on it.
// For a clockwise triangle the sign is inverted.
//
// Complexity: O(1).
func InCircle(a, b, c, d Point) int {
	adx, ady := sub(a, d)
	bdx, bdy := sub(b, d)
	cdx, cdy := sub(c, d)

	ad := dot(adx, ady, adx, ady)
	bd := dot(bdx, bdy, bdx, bdy)
	cd := dot(cdx, cdy, cdx, cdy)

	// det | adx ady ad ; bdx bdy bd ; cdx cdy cd |
	var t1, t2, t3, det big.Rat
	t1.Mul(ad, cross(bdx, bdy, cdx, cdy))
	t2.Mul(bd, cross(cdx, cdy, adx, ady))
	t3.Mul(cd, cross(adx, ady, bdx, bdy))
	det.Add(&t1, &t2)
	det.Add(&det, &t3)

	return det.Sign()
}

// IsDegenerate reports whether a, b, c are collinear (zero area).
func IsDegenerate(a, b, c Point) bool {
	return Orientation(a, b, c) == 0
}

// cornerSign returns the sign of the dot product of the two edge vectors
// leaving apex: negative means the angle at apex is obtuse, zero means right.
func cornerSign(apex, p, q Point) int {
	ux, uy := sub(p, apex)
	vx, vy := sub(q, apex)

	return dot(ux, uy, vx, vy).Sign()
}

// IsObtuse reports whether the triangle has an interior angle strictly greater
// than 90°. The test is symmetric in its arguments, so any permutation of the
// three vertices yields the same answer.
//
// Complexity: O(1).
func IsObtuse(p1, p2, p3 Point) bool {
	return cornerSign(p1, p2, p3) < 0 ||
		cornerSign(p2, p3, p1) < 0 ||
		cornerSign(p3, p1, p2) < 0
}

// ObtuseVertex returns the index (0, 1 or 2) of the vertex holding the obtuse
// angle, or false when the triangle has none. At most one angle can be obtuse.
func ObtuseVertex(p1, p2, p3 Point) (int, bool) {
	switch {
	case cornerSign(p1, p2, p3) < 0:
		return 0, true
	case cornerSign(p2, p3, p1) < 0:
		return 1, true
	case cornerSign(p3, p1, p2) < 0:
		return 2, true
	}

	return -1, false
}

// FindObtuseVertexAndAngle returns the obtuse vertex with its angle in degrees.
// The angle is an approximation for reporting; the classification is exact.
func FindObtuseVertexAndAngle(p1, p2, p3 Point) (Point, float64, bool) {
	pts := [3]Point{p1, p2, p3}
	i, ok := ObtuseVertex(p1, p2, p3)
	if !ok {
		return Point{}, 0, false
	}
	a := AngleAt(pts[i], pts[(i+1)%3], pts[(i+2)%3])

	return pts[i], a.Degrees(), true
}

// IsConvexQuad reports whether p1→p2→p3→p4 (in cyclic order) bounds a strictly
// convex quadrilateral. For two triangles sharing the diagonal p2p4 this is
// exactly the condition under which the diagonal may be flipped to p1p3.
//
// Complexity: O(1).
func IsConvexQuad(p1, p2, p3, p4 Point) bool {
	o1 := Orientation(p1, p2, p3)
	if o1 == 0 {
		return false
	}

	return Orientation(p2, p3, p4) == o1 &&
		Orientation(p3, p4, p1) == o1 &&
		Orientation(p4, p1, p2) == o1
}

// OnSegment reports whether p lies on the closed segment ab.
func OnSegment(p, a, b Point) bool {
	if Orientation(a, b, p) != 0 {
		return false
	}

	return between(p.X, a.X, b.X) && between(p.Y, a.Y, b.Y)
}

// InsideSegment reports whether p lies on segment ab but is neither endpoint.
func InsideSegment(p, a, b Point) bool {
	return OnSegment(p, a, b) && !p.Equal(a) && !p.Equal(b)
}

// between reports min(a,b) <= v <= max(a,b).
func between(v, a, b *big.Rat) bool {
	if a.Cmp(b) > 0 {
		a, b = b, a
	}

	return v.Cmp(a) >= 0 && v.Cmp(b) <= 0
}

// SegmentsCross reports whether the open segments ab and cd intersect in a
// single interior point of both (a proper crossing). Touching at endpoints or
// collinear overlap is not a crossing.
func SegmentsCross(a, b, c, d Point) bool {
	o1 := Orientation(a, b, c)
	o2 := Orientation(a, b, d)
	o3 := Orientation(c, d, a)
	o4 := Orientation(c, d, b)

	return o1*o2 < 0 && o3*o4 < 0
}

// PointLocation classifies a point against a triangle.
type PointLocation int

const (
	// Outside means the point is strictly outside the triangle.
	Outside PointLocation = iota
	// Inside means the point is strictly inside the triangle.
	Inside
	// OnEdge means the point lies in the interior of one of the three edges.
	OnEdge
	// OnVertex means the point coincides with a vertex.
	OnVertex
)

// LocateInTriangle classifies p against the counter-clockwise triangle a, b, c.
// When the result is OnEdge or OnVertex, idx tells which: for OnEdge, idx is the
// index of the vertex opposite the edge; for OnVertex, the index of the vertex.
func LocateInTriangle(p, a, b, c Point) (PointLocation, int) {
	pts := [3]Point{a, b, c}
	var i int
	for i = 0; i < 3; i++ {
		if p.Equal(pts[i]) {
			return OnVertex, i
		}
	}
	var (
		o    [3]int
		zero = -1
	)
	for i = 0; i < 3; i++ {
		// o[i] is the side of p against the edge opposite vertex i.
		o[i] = Orientation(pts[(i+1)%3], pts[(i+2)%3], p)
		if o[i] < 0 {
			return Outside, -1
		}
		if o[i] == 0 {
			zero = i
		}
	}
	if zero >= 0 {
		return OnEdge, zero
	}

	return Inside, -1
}

// LongestEdge returns the vertex indices (i, j) of the longest edge of the
// triangle. Ties are broken by the edge order (p1p2, p2p3, p3p1).
func LongestEdge(p1, p2, p3 Point) (int, int) {
	pts := [3]Point{p1, p2, p3}
	bi, bj := 0, 1
	best := SquaredDistance(p1, p2)
	var k int
	for k = 1; k < 3; k++ {
		d := SquaredDistance(pts[k], pts[(k+1)%3])
		if d.Cmp(best) > 0 {
			best = d
			bi, bj = k, (k+1)%3
		}
	}

	return bi, bj
}
