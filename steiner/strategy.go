package steiner

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/flip"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/region"
)

// ErrNotApplicable indicates a strategy cannot produce a usable point for the
// face. Callers fall back to the next method.
var ErrNotApplicable = errors.New("steiner: strategy not applicable")

// Candidate is a proposed Steiner point.
type Candidate struct {
	Method Method
	Face   int
	Point  geom.Point

	// Edge is the mesh edge the point was derived from, valid when HasEdge.
	// Apply uses it to splice the region boundary.
	Edge    [2]geom.Point
	HasEdge bool
}

// Outcome is the result of a trial insertion on private copies.
type Outcome struct {
	Candidate Candidate
	Mesh      *cdt.Triangulation
	Region    *region.Polygon
	Obtuse    int
}

// Propose builds the candidate point of method m for face f.
//
// Errors: ErrNotApplicable, cdt.ErrFaceIndex.
func Propose(tr *cdt.Triangulation, poly *region.Polygon, f int, m Method) (Candidate, error) {
	if f < 0 || f >= tr.NumFaces() {
		return Candidate{}, cdt.ErrFaceIndex
	}
	if !tr.IsFaceInside(f, poly) {
		return Candidate{}, ErrNotApplicable
	}
	a, b, c := tr.Triangle(f)
	pts := [3]geom.Point{a, b, c}
	cand := Candidate{Method: m, Face: f}

	switch m {
	case Circumcenter:
		cc, err := geom.Circumcenter(a, b, c)
		if err != nil {
			return Candidate{}, ErrNotApplicable
		}
		if !poly.Contains(cc) || !IsCircumcenterInNeighbor(tr, poly, f, cc) {
			return Candidate{}, ErrNotApplicable
		}
		cand.Point = cc
	case Projection:
		i, ok := geom.ObtuseVertex(a, b, c)
		if !ok {
			return Candidate{}, ErrNotApplicable
		}
		p, q := pts[(i+1)%3], pts[(i+2)%3]
		foot, err := geom.Projection(pts[i], p, q)
		if err != nil || !geom.InsideSegment(foot, p, q) {
			return Candidate{}, ErrNotApplicable
		}
		cand.Point, cand.Edge, cand.HasEdge = foot, [2]geom.Point{p, q}, true
	case Midpoint:
		i, j := geom.LongestEdge(a, b, c)
		cand.Point = geom.Midpoint(pts[i], pts[j])
		cand.Edge, cand.HasEdge = [2]geom.Point{pts[i], pts[j]}, true
	case Adjacent:
		return proposeAdjacent(tr, poly, f)
	case Centroid:
		cand.Point = geom.Centroid(a, b, c)
	default:
		return Candidate{}, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	}
	if _, dup := tr.VertexID(cand.Point); dup {
		return Candidate{}, ErrNotApplicable
	}

	return cand, nil
}

// IsCircumcenterInNeighbor reports whether cc lies in face f or in one of its
// neighbors inside the region (closed triangles).
func IsCircumcenterInNeighbor(tr *cdt.Triangulation, poly *region.Polygon, f int, cc geom.Point) bool {
	if inFace(tr, f, cc) {
		return true
	}
	for _, g := range tr.Neighbors(f) {
		if g != cdt.NoFace && tr.IsFaceInside(g, poly) && inFace(tr, g, cc) {
			return true
		}
	}

	return false
}

func inFace(tr *cdt.Triangulation, f int, p geom.Point) bool {
	a, b, c := tr.Triangle(f)
	kind, _ := geom.LocateInTriangle(p, a, b, c)

	return kind != geom.Outside
}

// Apply inserts cand into tr, splices the region boundary when the point lands
// strictly inside a boundary edge, and runs flip.RunAround on the new vertex.
// It returns the new vertex id.
//
// Errors: ErrNotApplicable when the point already is a vertex or falls outside
// the mesh; flip errors are wrapped.
func Apply(tr *cdt.Triangulation, poly *region.Polygon, cand Candidate) (int, error) {
	if _, dup := tr.VertexID(cand.Point); dup {
		return -1, ErrNotApplicable
	}
	v, err := tr.InsertPoint(cand.Point)
	if err != nil {
		return -1, fmt.Errorf("%w: %v", ErrNotApplicable, err)
	}
	updated := cand.HasEdge && poly.Update(cand.Point, cand.Edge[0], cand.Edge[1])
	if !updated {
		if p, q, ok := poly.BoundaryEdgeContaining(cand.Point); ok {
			poly.Update(cand.Point, p, q)
		}
	}
	if _, err = flip.RunAround(tr, poly, v); err != nil {
		return v, fmt.Errorf("steiner: after %s insertion: %w", cand.Method, err)
	}

	return v, nil
}

// Evaluate applies cand to clones of tr and poly and reports the obtuse count
// of the result. tr and poly are left untouched.
func Evaluate(tr *cdt.Triangulation, poly *region.Polygon, cand Candidate) (Outcome, error) {
	mesh, ring := tr.Clone(), poly.Clone()
	if _, err := Apply(mesh, ring, cand); err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Candidate: cand,
		Mesh:      mesh,
		Region:    ring,
		Obtuse:    mesh.CountObtuseTriangles(ring),
	}, nil
}

// Best evaluates every applicable method on face f and returns the outcome
// with the lowest obtuse count; ties go to the earlier method in Priority.
// Outcomes that would raise the obtuse count are not applicable.
//
// Complexity: five trial insertions, each O(V + F) for the clone plus the
// local flip pass.
func Best(tr *cdt.Triangulation, poly *region.Polygon, f int) (Outcome, error) {
	var (
		best   Outcome
		found  bool
		before = tr.CountObtuseTriangles(poly)
	)
	for _, m := range Priority {
		o, err := try(tr, poly, f, m, before)
		if errors.Is(err, ErrNotApplicable) {
			continue
		}
		if err != nil {
			return Outcome{}, err
		}
		if !found || o.Obtuse < best.Obtuse {
			best, found = o, true
		}
	}
	if !found {
		return Outcome{}, ErrNotApplicable
	}

	return best, nil
}

// TryFrom evaluates methods round-robin starting at start and returns the
// first one that applies without raising the obtuse count.
func TryFrom(tr *cdt.Triangulation, poly *region.Polygon, f int, start Method) (Outcome, error) {
	var (
		k      = rank(start)
		before = tr.CountObtuseTriangles(poly)
	)
	for n := 0; n < len(Priority); n++ {
		o, err := try(tr, poly, f, Priority[(k+n)%len(Priority)], before)
		if errors.Is(err, ErrNotApplicable) {
			continue
		}

		return o, err
	}

	return Outcome{}, ErrNotApplicable
}

// try proposes and evaluates one method. An outcome with more than before
// obtuse faces is reported as ErrNotApplicable.
func try(tr *cdt.Triangulation, poly *region.Polygon, f int, m Method, before int) (Outcome, error) {
	cand, err := Propose(tr, poly, f, m)
	if err != nil {
		return Outcome{}, err
	}
	o, err := Evaluate(tr, poly, cand)
	if err != nil {
		return Outcome{}, err
	}
	if o.Obtuse > before {
		return Outcome{}, ErrNotApplicable
	}

	return o, nil
}

// WorthInsertCentroid reports whether inserting the centroid of f strictly
// lowers the obtuse count.
func WorthInsertCentroid(tr *cdt.Triangulation, poly *region.Polygon, f int) bool {
	before := tr.CountObtuseTriangles(poly)
	o, err := try(tr, poly, f, Centroid, before)
	if err != nil {
		return false
	}

	return o.Obtuse < before
}
