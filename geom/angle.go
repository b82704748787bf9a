package geom

import (
	"math"
	"math/big"
)

// Angle is an exact representation of the angle between two vectors u, v
// leaving a common apex: the dot product u·v and the product |u|²·|v|².
// cos θ = dot / sqrt(norm2), so two angles can be ordered without roots.
type Angle struct {
	dot   *big.Rat
	norm2 *big.Rat
}

// AngleAt returns the angle at apex in the triangle apex, p, q.
func AngleAt(apex, p, q Point) Angle {
	ux, uy := sub(p, apex)
	vx, vy := sub(q, apex)
	n := dot(ux, uy, ux, uy)
	n.Mul(n, dot(vx, vy, vx, vy))

	return Angle{dot: dot(ux, uy, vx, vy), norm2: n}
}

// Cmp compares two angles: -1 if a < b, 0 if equal, +1 if a > b.
// Zero-length vectors compare as right angles.
func (a Angle) Cmp(b Angle) int {
	sa, sb := a.dot.Sign(), b.dot.Sign()
	// A larger angle has a smaller cosine; compare signs first.
	if sa != sb {
		if sa < sb {
			return 1
		}
		return -1
	}
	if sa == 0 {
		return 0
	}
	// Same sign: compare cos² = dot²/norm2 by cross-multiplication.
	var l, r big.Rat
	l.Mul(a.dot, a.dot)
	l.Mul(&l, b.norm2)
	r.Mul(b.dot, b.dot)
	r.Mul(&r, a.norm2)
	c := l.Cmp(&r)
	if sa > 0 {
		// Acute: larger cos² means smaller angle.
		return -c
	}

	return c
}

// Degrees approximates the angle in degrees.
func (a Angle) Degrees() float64 {
	if a.norm2.Sign() == 0 {
		return 90
	}
	d, _ := a.dot.Float64()
	n, _ := a.norm2.Float64()
	c := d / math.Sqrt(n)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}

	return math.Acos(c) * 180 / math.Pi
}

// MaxAngle returns the largest interior angle of the triangle.
func MaxAngle(p1, p2, p3 Point) Angle {
	best := AngleAt(p1, p2, p3)
	if a := AngleAt(p2, p3, p1); a.Cmp(best) > 0 {
		best = a
	}
	if a := AngleAt(p3, p1, p2); a.Cmp(best) > 0 {
		best = a
	}

	return best
}
