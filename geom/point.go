package geom

import (
	"errors"
	"fmt"
	"math/big"
)

// Sentinel errors for geometric constructions.
var (
	// ErrDegenerate indicates a zero-area triangle or a zero-length segment was
	// passed to a construction that requires a proper one.
	ErrDegenerate = errors.New("geom: degenerate input")

	// ErrBadCoordinate indicates a NaN or infinite float coordinate.
	ErrBadCoordinate = errors.New("geom: coordinate is not finite")
)

// Point is a planar point with exact rational coordinates.
//
// Points are values; their coordinates are never mutated after construction,
// so copies may share the underlying *big.Rat safely.
type Point struct {
	X *big.Rat
	Y *big.Rat
}

// NewPoint converts float coordinates exactly (every finite float64 is a
// dyadic rational). It returns ErrBadCoordinate for NaN or ±Inf.
func NewPoint(x, y float64) (Point, error) {
	var rx, ry big.Rat
	if rx.SetFloat64(x) == nil || ry.SetFloat64(y) == nil {
		return Point{}, ErrBadCoordinate
	}

	return Point{X: &rx, Y: &ry}, nil
}

// Pt builds a point from integer coordinates. Handy for tests and fixtures.
func Pt(x, y int64) Point {
	return Point{X: new(big.Rat).SetInt64(x), Y: new(big.Rat).SetInt64(y)}
}

// PtRat builds a point from existing rationals; the arguments are copied.
func PtRat(x, y *big.Rat) Point {
	return Point{X: new(big.Rat).Set(x), Y: new(big.Rat).Set(y)}
}

// Equal reports exact coordinate equality.
func (p Point) Equal(q Point) bool {
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// Key returns a canonical string usable as a map key; equal points share a key.
func (p Point) Key() string {
	return p.X.RatString() + "," + p.Y.RatString()
}

// Float64 returns the nearest float64 approximation of both coordinates.
func (p Point) Float64() (float64, float64) {
	x, _ := p.X.Float64()
	y, _ := p.Y.Float64()

	return x, y
}

// String implements fmt.Stringer with exact rational output.
func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", p.X.RatString(), p.Y.RatString())
}

// sub returns the vector q→p as a pair of fresh rationals.
func sub(p, q Point) (*big.Rat, *big.Rat) {
	return new(big.Rat).Sub(p.X, q.X), new(big.Rat).Sub(p.Y, q.Y)
}

// dot returns ux*vx + uy*vy.
func dot(ux, uy, vx, vy *big.Rat) *big.Rat {
	var a, b big.Rat
	a.Mul(ux, vx)
	b.Mul(uy, vy)

	return a.Add(&a, &b)
}

// cross returns ux*vy - uy*vx.
func cross(ux, uy, vx, vy *big.Rat) *big.Rat {
	var a, b big.Rat
	a.Mul(ux, vy)
	b.Mul(uy, vx)

	return a.Sub(&a, &b)
}

// SquaredDistance returns |a-b|² exactly.
func SquaredDistance(a, b Point) *big.Rat {
	dx, dy := sub(a, b)

	return dot(dx, dy, dx, dy)
}
