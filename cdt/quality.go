package cdt

import (
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/region"
)

// IsObtuseFace reports whether face f has an angle strictly above 90°.
// Recomputed from the current vertices on every call.
func (t *Triangulation) IsObtuseFace(f int) bool {
	a, b, c := t.Triangle(f)

	return geom.IsObtuse(a, b, c)
}

// IsFaceInside reports whether f is a real face lying in the region.
func (t *Triangulation) IsFaceInside(f int, poly *region.Polygon) bool {
	if t.IsVirtual(f) {
		return false
	}
	a, b, c := t.Triangle(f)

	return poly.FaceInside(a, b, c)
}

// InsideFaces returns the ids of all faces inside the region, ascending.
func (t *Triangulation) InsideFaces(poly *region.Polygon) []int {
	var out []int
	var f int
	for f = range t.faces {
		if t.IsFaceInside(f, poly) {
			out = append(out, f)
		}
	}

	return out
}

// ObtuseFaces returns the ids of obtuse faces inside the region, ascending.
func (t *Triangulation) ObtuseFaces(poly *region.Polygon) []int {
	var out []int
	var f int
	for f = range t.faces {
		if t.IsFaceInside(f, poly) && t.IsObtuseFace(f) {
			out = append(out, f)
		}
	}

	return out
}

// CountObtuseTriangles counts obtuse faces inside the region. It walks the
// whole arena every time; callers must not cache the result across mutations.
//
// Complexity: O(F·n) with n the polygon size.
func (t *Triangulation) CountObtuseTriangles(poly *region.Polygon) int {
	return len(t.ObtuseFaces(poly))
}

// HasObtuseNeighbors reports whether some neighbor of f inside the region is
// obtuse.
func (t *Triangulation) HasObtuseNeighbors(f int, poly *region.Polygon) bool {
	for _, g := range t.faces[f].N {
		if g != NoFace && t.IsFaceInside(g, poly) && t.IsObtuseFace(g) {
			return true
		}
	}

	return false
}

// Edges returns every edge of the faces inside the region plus every
// constrained edge between real vertices, sorted and without duplicates.
func (t *Triangulation) Edges(poly *region.Polygon) []Edge {
	set := make(map[Edge]struct{})
	var i int
	for _, f := range t.InsideFaces(poly) {
		fv := t.faces[f].V
		for i = 0; i < 3; i++ {
			set[edgeKey(fv[ccw(i)], fv[cw(i)])] = struct{}{}
		}
	}
	for e := range t.constraints {
		set[e] = struct{}{}
	}
	out := make([]Edge, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sortEdges(out)

	return out
}
