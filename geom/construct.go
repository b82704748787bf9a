package geom

import "math/big"

// Centroid returns the arithmetic mean of the given points. Callers pass at
// least one point; an empty call yields the origin so the result is still a
// usable Point.
func Centroid(points ...Point) Point {
	if len(points) == 0 {
		return Pt(0, 0)
	}
	var sx, sy big.Rat
	for _, p := range points {
		sx.Add(&sx, p.X)
		sy.Add(&sy, p.Y)
	}
	n := new(big.Rat).SetInt64(int64(len(points)))

	return Point{X: sx.Quo(&sx, n), Y: sy.Quo(&sy, n)}
}

// Midpoint returns the midpoint of segment ab.
func Midpoint(a, b Point) Point {
	return Centroid(a, b)
}

// Circumcenter returns the center of the circle through a, b, c.
// It returns ErrDegenerate when the points are collinear.
//
// Formula (relative to a, with b' = b-a, c' = c-a, D = 2·cross(b', c')):
//
//	ux = (|b'|²·c'y − |c'|²·b'y) / D
//	uy = (|c'|²·b'x − |b'|²·c'x) / D
func Circumcenter(a, b, c Point) (Point, error) {
	bx, by := sub(b, a)
	cx, cy := sub(c, a)
	d := cross(bx, by, cx, cy)
	if d.Sign() == 0 {
		return Point{}, ErrDegenerate
	}
	d.Add(d, d)

	b2 := dot(bx, by, bx, by)
	c2 := dot(cx, cy, cx, cy)

	var t1, t2 big.Rat
	ux := new(big.Rat).Sub(t1.Mul(b2, cy), t2.Mul(c2, by))
	uy := new(big.Rat).Sub(t1.Mul(c2, bx), t2.Mul(b2, cx))
	ux.Quo(ux, d).Add(ux, a.X)
	uy.Quo(uy, d).Add(uy, a.Y)

	return Point{X: ux, Y: uy}, nil
}

// Projection returns the foot of the perpendicular dropped from p onto the
// line through a and b. The foot may lie outside the segment; use
// InsideSegment to test. It returns ErrDegenerate when a == b.
func Projection(p, a, b Point) (Point, error) {
	abx, aby := sub(b, a)
	apx, apy := sub(p, a)
	den := dot(abx, aby, abx, aby)
	if den.Sign() == 0 {
		return Point{}, ErrDegenerate
	}
	t := dot(apx, apy, abx, aby)
	t.Quo(t, den)

	x := new(big.Rat).Mul(t, abx)
	y := new(big.Rat).Mul(t, aby)

	return Point{X: x.Add(x, a.X), Y: y.Add(y, a.Y)}, nil
}

// TwiceArea2 returns (2·area)², the square of the cross product of the edge
// vectors; zero for degenerate triangles.
func TwiceArea2(a, b, c Point) *big.Rat {
	ux, uy := sub(b, a)
	vx, vy := sub(c, a)
	cr := cross(ux, uy, vx, vy)

	return cr.Mul(cr, cr)
}
