package cdt

import (
	"errors"

	"github.com/katalvlaran/lvmesh/geom"
)

// ErrRecoveryStalled indicates constraint recovery did not converge. It only
// happens on inputs that violate the triangulation preconditions.
var ErrRecoveryStalled = errors.New("cdt: constraint recovery did not converge")

// InsertPoint adds p to the mesh and restores the Delaunay property around it
// (constrained edges are never flipped). If p coincides with an existing
// vertex, that vertex id is returned and nothing changes. A point inside a
// constrained edge splits it into two constrained halves.
//
// Errors: ErrOutsideDomain when p is outside the bounding triangle.
//
// Complexity: O(F) worst-case location + O(deg) legalization.
func (t *Triangulation) InsertPoint(p geom.Point) (int, error) {
	loc := t.Locate(p)
	if loc.Face != NoFace {
		t.last = loc.Face
	}
	switch loc.Kind {
	case geom.OnVertex:
		return t.faces[loc.Face].V[loc.Index], nil
	case geom.Inside:
		v := t.addVertex(p)
		t.legalize(t.splitFace(loc.Face, v), v)
		return v, nil
	case geom.OnEdge:
		if t.faces[loc.Face].N[loc.Index] == NoFace {
			return -1, ErrOutsideDomain
		}
		v := t.addVertex(p)
		t.legalize(t.splitEdge(loc.Face, loc.Index, v), v)
		return v, nil
	default:
		return -1, ErrOutsideDomain
	}
}

// faceEdge is a (face, index) pair naming the edge opposite V[index].
type faceEdge struct {
	f, i int
}

// splitFace replaces f=(a,b,c) with (a,b,p), (b,c,p), (c,a,p) and returns the
// three edges opposite p.
func (t *Triangulation) splitFace(f, p int) []faceEdge {
	F := t.faces[f]
	a, b, c := F.V[0], F.V[1], F.V[2]
	g1 := len(t.faces)
	g2 := g1 + 1

	t.faces[f] = Face{
		V: [3]int{a, b, p},
		N: [3]int{g1, g2, F.N[2]},
		C: [3]bool{false, false, F.C[2]},
	}
	t.faces = append(t.faces,
		Face{
			V: [3]int{b, c, p},
			N: [3]int{g2, f, F.N[0]},
			C: [3]bool{false, false, F.C[0]},
		},
		Face{
			V: [3]int{c, a, p},
			N: [3]int{f, g1, F.N[1]},
			C: [3]bool{false, false, F.C[1]},
		},
	)
	t.setNeighbor(F.N[0], b, c, g1)
	t.setNeighbor(F.N[1], c, a, g2)

	return []faceEdge{{f, 2}, {g1, 2}, {g2, 2}}
}

// splitEdge splits the edge opposite V[i] of f, shared with g, at p:
// f=(a,b,c), g=(d,c,b) become (a,b,p), (a,p,c), (d,c,p), (d,p,b).
func (t *Triangulation) splitEdge(f, i, p int) []faceEdge {
	F := t.faces[f]
	g := F.N[i]
	j := t.mirror(f, i)
	G := t.faces[g]

	a, b, c := F.V[i], F.V[ccw(i)], F.V[cw(i)]
	d := G.V[j]
	shared := F.C[i]

	nfB, cfB := F.N[ccw(i)], F.C[ccw(i)] // edge c-a
	nfC, cfC := F.N[cw(i)], F.C[cw(i)]   // edge a-b
	ngC, cgC := G.N[ccw(j)], G.C[ccw(j)] // edge b-d
	ngB, cgB := G.N[cw(j)], G.C[cw(j)]   // edge d-c

	f2 := len(t.faces)
	g2 := f2 + 1

	t.faces[f] = Face{
		V: [3]int{a, b, p},
		N: [3]int{g2, f2, nfC},
		C: [3]bool{shared, false, cfC},
	}
	t.faces[g] = Face{
		V: [3]int{d, c, p},
		N: [3]int{f2, g2, ngB},
		C: [3]bool{shared, false, cgB},
	}
	t.faces = append(t.faces,
		Face{
			V: [3]int{a, p, c},
			N: [3]int{g, nfB, f},
			C: [3]bool{shared, cfB, false},
		},
		Face{
			V: [3]int{d, p, b},
			N: [3]int{f, ngC, g},
			C: [3]bool{shared, cgC, false},
		},
	)
	t.setNeighbor(nfB, c, a, f2)
	t.setNeighbor(ngC, b, d, g2)

	if shared {
		delete(t.constraints, edgeKey(b, c))
		t.constraints[edgeKey(b, p)] = struct{}{}
		t.constraints[edgeKey(p, c)] = struct{}{}
	}

	return []faceEdge{{f, 2}, {f2, 1}, {g, 2}, {g2, 1}}
}

// legalize runs Lawson flips on the given edges, each opposite the new vertex
// p, until every edge around p is locally Delaunay or constrained.
func (t *Triangulation) legalize(stack []faceEdge, p int) {
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		F := t.faces[e.f]
		if F.V[e.i] != p {
			// Rotate to the index of p; earlier flips may have rewritten f.
			k := t.indexOf(e.f, p)
			if k < 0 {
				continue
			}
			e.i = k
			F = t.faces[e.f]
		}
		g := F.N[e.i]
		if g == NoFace || F.C[e.i] {
			continue
		}
		d := t.faces[g].V[t.mirror(e.f, e.i)]
		a, b, c := t.Triangle(e.f)
		if geom.InCircle(a, b, c, t.verts[d]) <= 0 {
			continue
		}
		if err := t.Flip(e.f, e.i); err != nil {
			continue
		}
		// After the flip p is V[0] of both faces.
		stack = append(stack, faceEdge{e.f, 0}, faceEdge{g, 0})
	}
}

// indexOf returns the position of vertex v in face f, or -1.
func (t *Triangulation) indexOf(f, v int) int {
	var i int
	for i = 0; i < 3; i++ {
		if t.faces[f].V[i] == v {
			return i
		}
	}

	return -1
}

// CanFlip reports whether the edge opposite V[i] of face f may be flipped:
// it has two faces, is not constrained, and the quadrilateral is strictly
// convex.
func (t *Triangulation) CanFlip(f, i int) error {
	if f < 0 || f >= len(t.faces) || i < 0 || i > 2 {
		return ErrFaceIndex
	}
	F := t.faces[f]
	if F.N[i] == NoFace {
		return ErrNoNeighbor
	}
	if F.C[i] {
		return ErrConstrainedEdge
	}
	d := t.faces[F.N[i]].V[t.mirror(f, i)]
	a, b, c := t.verts[F.V[i]], t.verts[F.V[ccw(i)]], t.verts[F.V[cw(i)]]
	if !geom.IsConvexQuad(a, b, t.verts[d], c) {
		return ErrNotConvex
	}

	return nil
}

// Quad returns the four vertex ids around the edge opposite V[i] of f in
// counter-clockwise order a, b, d, c, where bc is the current diagonal and
// ad the flipped one.
func (t *Triangulation) Quad(f, i int) ([4]int, bool) {
	F := t.faces[f]
	if F.N[i] == NoFace {
		return [4]int{}, false
	}
	d := t.faces[F.N[i]].V[t.mirror(f, i)]

	return [4]int{F.V[i], F.V[ccw(i)], d, F.V[cw(i)]}, true
}

// Flip replaces the edge opposite V[i] of face f with the other diagonal of
// its quadrilateral. Faces f and its neighbor are rewritten in place as
// (a,b,d) and (a,d,c), keeping a = V[i] of f at index 0 of both.
//
// Errors: ErrFaceIndex, ErrNoNeighbor, ErrConstrainedEdge, ErrNotConvex.
//
// Complexity: O(1).
func (t *Triangulation) Flip(f, i int) error {
	if err := t.CanFlip(f, i); err != nil {
		return err
	}
	F := t.faces[f]
	g := F.N[i]
	j := t.mirror(f, i)
	G := t.faces[g]

	a, b, c := F.V[i], F.V[ccw(i)], F.V[cw(i)]
	d := G.V[j]

	nfB, cfB := F.N[ccw(i)], F.C[ccw(i)] // edge c-a
	nfC, cfC := F.N[cw(i)], F.C[cw(i)]   // edge a-b
	ngC, cgC := G.N[ccw(j)], G.C[ccw(j)] // edge b-d
	ngB, cgB := G.N[cw(j)], G.C[cw(j)]   // edge d-c

	t.faces[f] = Face{
		V: [3]int{a, b, d},
		N: [3]int{ngC, g, nfC},
		C: [3]bool{cgC, false, cfC},
	}
	t.faces[g] = Face{
		V: [3]int{a, d, c},
		N: [3]int{ngB, nfB, f},
		C: [3]bool{cgB, cfB, false},
	}
	t.setNeighbor(ngC, b, d, f)
	t.setNeighbor(nfB, c, a, g)

	return nil
}

// InsertConstraint forces the edge between vertices a and b to exist and
// marks it constrained. Vertices lying exactly on the segment split it into
// consecutive constraints.
//
// Errors: ErrVertexIndex, ErrDegenerateConstraint, ErrConstraintCrossing,
// ErrRecoveryStalled.
//
// Complexity: O(k·F) where k is the number of crossed edges.
func (t *Triangulation) InsertConstraint(a, b int) error {
	if a < boundingVertices || b < boundingVertices || a >= len(t.verts) || b >= len(t.verts) {
		return ErrVertexIndex
	}
	if a == b {
		return ErrDegenerateConstraint
	}
	if _, _, ok := t.FindEdge(a, b); ok {
		t.setConstrained(a, b, true)
		return nil
	}
	A, B := t.verts[a], t.verts[b]

	// A vertex on the open segment splits the constraint.
	var v int
	for v = boundingVertices; v < len(t.verts); v++ {
		if v != a && v != b && geom.InsideSegment(t.verts[v], A, B) {
			if err := t.InsertConstraint(a, v); err != nil {
				return err
			}
			return t.InsertConstraint(v, b)
		}
	}

	queue, err := t.crossingEdges(A, B)
	if err != nil {
		return err
	}

	// Phase 1: flip crossing edges away (Sloan 1993).
	var (
		fresh []Edge
		steps int
		limit = 64 * (len(queue) + 1) * (len(queue) + 1)
	)
	for len(queue) > 0 {
		steps++
		if steps > limit {
			return ErrRecoveryStalled
		}
		e := queue[0]
		queue = queue[1:]
		f, i, ok := t.FindEdge(e.U, e.V)
		if !ok {
			continue
		}
		if t.CanFlip(f, i) != nil {
			queue = append(queue, e)
			continue
		}
		if err = t.Flip(f, i); err != nil {
			return err
		}
		// The new diagonal joins V[0] and V[2] of the rewritten face f.
		nv := t.faces[f].V
		ne := edgeKey(nv[0], nv[2])
		if geom.SegmentsCross(A, B, t.verts[ne.U], t.verts[ne.V]) {
			queue = append(queue, ne)
		} else {
			fresh = append(fresh, ne)
		}
	}

	// Phase 2: restore the Delaunay property on the new edges.
	target := edgeKey(a, b)
	swapped := true
	for swapped {
		swapped = false
		for k, e := range fresh {
			if e == target {
				continue
			}
			f, i, ok := t.FindEdge(e.U, e.V)
			if !ok || t.CanFlip(f, i) != nil {
				continue
			}
			F := t.faces[f]
			d := t.faces[F.N[i]].V[t.mirror(f, i)]
			p1, p2, p3 := t.Triangle(f)
			if geom.InCircle(p1, p2, p3, t.verts[d]) <= 0 {
				continue
			}
			if err = t.Flip(f, i); err != nil {
				return err
			}
			nv := t.faces[f].V
			fresh[k] = edgeKey(nv[0], nv[2])
			swapped = true
		}
	}

	t.setConstrained(a, b, true)

	return nil
}

// crossingEdges lists every edge properly crossed by segment AB.
func (t *Triangulation) crossingEdges(A, B geom.Point) ([]Edge, error) {
	seen := make(map[Edge]struct{})
	var out []Edge
	var (
		f, i int
	)
	for f = range t.faces {
		fv := t.faces[f].V
		for i = 0; i < 3; i++ {
			e := edgeKey(fv[ccw(i)], fv[cw(i)])
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			if !geom.SegmentsCross(A, B, t.verts[e.U], t.verts[e.V]) {
				continue
			}
			if t.faces[f].C[i] {
				return nil, ErrConstraintCrossing
			}
			out = append(out, e)
		}
	}

	return out, nil
}
