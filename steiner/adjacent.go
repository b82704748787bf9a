package steiner

import (
	"errors"
	"math/big"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/region"
)

// proposeAdjacent merges f with the obtuse in-region neighbor across their
// longest shared edge. A convex union yields its vertex centroid; otherwise
// adjacentLocalSearch picks among nearby points.
func proposeAdjacent(tr *cdt.Triangulation, poly *region.Polygon, f int) (Candidate, error) {
	if !tr.HasObtuseNeighbors(f, poly) {
		return Candidate{}, ErrNotApplicable
	}
	F := tr.Face(f)
	var (
		edge    = -1
		longest *big.Rat
	)
	for i, g := range F.N {
		if g == cdt.NoFace || !tr.IsFaceInside(g, poly) || !tr.IsObtuseFace(g) {
			continue
		}
		d2 := geom.SquaredDistance(tr.Vertex(F.V[(i+1)%3]), tr.Vertex(F.V[(i+2)%3]))
		if edge < 0 || d2.Cmp(longest) > 0 {
			edge, longest = i, d2
		}
	}
	if edge < 0 {
		return Candidate{}, ErrNotApplicable
	}

	q, _ := tr.Quad(f, edge)
	a, b, d, c := tr.Vertex(q[0]), tr.Vertex(q[1]), tr.Vertex(q[2]), tr.Vertex(q[3])
	if geom.IsConvexQuad(a, b, d, c) {
		cand := Candidate{Method: Adjacent, Face: f, Point: geom.Centroid(a, b, d, c)}
		if geom.InsideSegment(cand.Point, b, c) {
			cand.Edge, cand.HasEdge = [2]geom.Point{b, c}, true
		}
		if _, dup := tr.VertexID(cand.Point); !dup {
			return cand, nil
		}
	}

	return adjacentLocalSearch(tr, poly, f, F.N[edge], q)
}

// adjacentLocalSearch tries the centroids of both faces, the midpoint of the
// shared edge and the quadrilateral centroid (when it falls inside either
// face), and keeps the one leaving the fewest obtuse faces.
func adjacentLocalSearch(tr *cdt.Triangulation, poly *region.Polygon, f, g int, q [4]int) (Candidate, error) {
	a, b, d, c := tr.Vertex(q[0]), tr.Vertex(q[1]), tr.Vertex(q[2]), tr.Vertex(q[3])
	shared := [2]geom.Point{b, c}

	pool := []Candidate{
		{Method: Adjacent, Face: f, Point: geom.Centroid(a, b, c)},
		{Method: Adjacent, Face: f, Point: geom.Centroid(d, c, b)},
		{Method: Adjacent, Face: f, Point: geom.Midpoint(b, c), Edge: shared, HasEdge: true},
	}
	if quad := geom.Centroid(a, b, d, c); inFace(tr, f, quad) || inFace(tr, g, quad) {
		pool = append(pool, Candidate{Method: Adjacent, Face: f, Point: quad})
	}

	var (
		best   Candidate
		lowest = -1
	)
	for _, cand := range pool {
		if _, dup := tr.VertexID(cand.Point); dup || !poly.Contains(cand.Point) {
			continue
		}
		o, err := Evaluate(tr, poly, cand)
		if errors.Is(err, ErrNotApplicable) {
			continue
		}
		if err != nil {
			return Candidate{}, err
		}
		if lowest < 0 || o.Obtuse < lowest {
			best, lowest = cand, o.Obtuse
		}
	}
	if lowest < 0 {
		return Candidate{}, ErrNotApplicable
	}

	return best, nil
}
