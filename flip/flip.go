package flip

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/region"
)

// Worth reports whether replacing the diagonal p2-p4 of the convex
// quadrilateral p1,p2,p3,p4 (cyclic order) by p1-p3 strictly improves the pair
// of triangles. The key is (obtuse count, maximum angle), compared
// lexicographically.
func Worth(p1, p2, p3, p4 geom.Point) bool {
	oldCount, oldMax := score(p1, p2, p4, p2, p3, p4)
	newCount, newMax := score(p1, p2, p3, p1, p3, p4)
	if newCount != oldCount {
		return newCount < oldCount
	}

	return newMax.Cmp(oldMax) < 0
}

// score returns the obtuse count and the largest angle of two triangles.
func score(a1, b1, c1, a2, b2, c2 geom.Point) (int, geom.Angle) {
	var count int
	if geom.IsObtuse(a1, b1, c1) {
		count++
	}
	if geom.IsObtuse(a2, b2, c2) {
		count++
	}
	m1, m2 := geom.MaxAngle(a1, b1, c1), geom.MaxAngle(a2, b2, c2)
	if m2.Cmp(m1) > 0 {
		m1 = m2
	}

	return count, m1
}

// Run flips beneficial edges of tr inside poly until a full pass makes no
// flip, and returns the number of flips performed.
//
// Only edges whose two faces both lie inside poly are considered; constrained
// edges are never flipped.
func Run(tr *cdt.Triangulation, poly *region.Polygon) (int, error) {
	var total int
	for {
		n, err := pass(tr, poly)
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, nil
		}
	}
}

// RunAround flips beneficial edges near vertex v, typically a fresh Steiner
// point. The worklist starts with every edge of the faces around v; each flip
// queues the four outer edges of its quadrilateral. Only edges whose faces
// changed can become worth flipping, so on a mesh that was a Run fixpoint
// before v was inserted the result is again a Run fixpoint.
//
// Complexity: O(deg(v) + k) edge tests for k flips, plus the O(F) face lookup.
func RunAround(tr *cdt.Triangulation, poly *region.Polygon, v int) (int, error) {
	var (
		stack []edgeRef
		flips int
		i     int
	)
	for _, f := range tr.FacesAround(v) {
		for i = 0; i < 3; i++ {
			stack = append(stack, edgeRef{f, i})
		}
	}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !tr.IsFaceInside(e.f, poly) {
			continue
		}
		g := tr.Face(e.f).N[e.i]
		ok, err := tryFlip(tr, poly, e.f, e.i)
		if err != nil {
			return flips, err
		}
		if !ok {
			continue
		}
		flips++
		// Flip keeps a at index 0 of both faces: f=(a,b,d), g=(a,d,c).
		stack = append(stack, edgeRef{e.f, 0}, edgeRef{e.f, 2}, edgeRef{g, 0}, edgeRef{g, 1})
	}

	return flips, nil
}

// edgeRef names the edge opposite V[i] of face f.
type edgeRef struct {
	f, i int
}

// tryFlip flips the edge opposite V[i] of f when the neighbor lies inside
// poly, the edge is free and convex, and Worth holds. Callers have already
// checked that f itself is inside.
func tryFlip(tr *cdt.Triangulation, poly *region.Polygon, f, i int) (bool, error) {
	F := tr.Face(f)
	g := F.N[i]
	if g == cdt.NoFace || F.C[i] {
		return false, nil
	}
	if tr.CanFlip(f, i) != nil {
		return false, nil
	}
	if !tr.IsFaceInside(g, poly) {
		return false, nil
	}
	q, _ := tr.Quad(f, i)
	// Quad lists a, b, d, c with bc the current diagonal.
	if !Worth(tr.Vertex(q[0]), tr.Vertex(q[1]), tr.Vertex(q[2]), tr.Vertex(q[3])) {
		return false, nil
	}
	if err := tr.Flip(f, i); err != nil {
		return false, fmt.Errorf("flip: face %d edge %d: %w", f, i, err)
	}

	return true, nil
}

// pass performs one sweep over the arena.
func pass(tr *cdt.Triangulation, poly *region.Polygon) (int, error) {
	var (
		flips int
		f, i  int
	)
	for f = 0; f < tr.NumFaces(); f++ {
		if !tr.IsFaceInside(f, poly) {
			continue
		}
		for i = 0; i < 3; i++ {
			ok, err := tryFlip(tr, poly, f, i)
			if err != nil {
				return flips, err
			}
			if ok {
				flips++
			}
		}
	}

	return flips, nil
}
