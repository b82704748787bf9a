package cdt

import (
	"math/big"
	"sort"

	"github.com/katalvlaran/lvmesh/geom"
)

// Triangulation is a constrained Delaunay triangulation stored as an arena.
// The zero value is not usable; construct with New or Build.
//
// Not safe for concurrent use; drivers mutate a single instance or clones.
type Triangulation struct {
	verts []geom.Point
	faces []Face

	// index maps a point key to its vertex id (exact coincidence).
	index map[string]int

	// constraints holds every constrained edge by normalized vertex pair.
	constraints map[Edge]struct{}

	// original is the set of input point keys; it never changes after Build.
	original map[string]struct{}

	// initial is the vertex count right after Build.
	initial int

	// last is the face of the latest insertion; Locate walks from it.
	last int
}

// New creates a triangulation whose bounding triangle encloses every point in
// points with a wide margin. No point is inserted.
//
// Complexity: O(n) for the bounding box.
func New(points []geom.Point) (*Triangulation, error) {
	if len(points) < 3 {
		return nil, ErrEmptyInput
	}
	minX, maxX := new(big.Rat).Set(points[0].X), new(big.Rat).Set(points[0].X)
	minY, maxY := new(big.Rat).Set(points[0].Y), new(big.Rat).Set(points[0].Y)
	for _, p := range points[1:] {
		if p.X.Cmp(minX) < 0 {
			minX.Set(p.X)
		}
		if p.X.Cmp(maxX) > 0 {
			maxX.Set(p.X)
		}
		if p.Y.Cmp(minY) < 0 {
			minY.Set(p.Y)
		}
		if p.Y.Cmp(maxY) > 0 {
			maxY.Set(p.Y)
		}
	}
	// d = max(dx, dy) + 1 keeps the triangle proper even for a single point.
	dx := new(big.Rat).Sub(maxX, minX)
	dy := new(big.Rat).Sub(maxY, minY)
	d := dx
	if dy.Cmp(dx) > 0 {
		d = dy
	}
	d.Add(d, big.NewRat(1, 1))
	cx := new(big.Rat).Add(minX, maxX)
	cx.Quo(cx, big.NewRat(2, 1))
	cy := new(big.Rat).Add(minY, maxY)
	cy.Quo(cy, big.NewRat(2, 1))

	scaled := func(base *big.Rat, k int64) *big.Rat {
		r := new(big.Rat).Mul(d, big.NewRat(k, 1))
		return r.Add(r, base)
	}

	t := &Triangulation{
		index:       make(map[string]int),
		constraints: make(map[Edge]struct{}),
		original:    make(map[string]struct{}),
	}
	t.addVertex(geom.Point{X: scaled(cx, -20), Y: scaled(cy, -10)})
	t.addVertex(geom.Point{X: scaled(cx, 20), Y: scaled(cy, -10)})
	t.addVertex(geom.Point{X: new(big.Rat).Set(cx), Y: scaled(cy, 20)})
	t.faces = append(t.faces, Face{V: [3]int{0, 1, 2}, N: [3]int{NoFace, NoFace, NoFace}})

	return t, nil
}

// Build triangulates points and then inserts every constraint, given as pairs
// of indices into points. Duplicate points collapse onto one vertex. The
// resulting vertex set is recorded as the original input for Steiner
// classification.
//
// Errors: ErrEmptyInput, ErrVertexIndex, ErrDegenerateConstraint,
// ErrConstraintCrossing.
func Build(points []geom.Point, constraints [][2]int) (*Triangulation, error) {
	t, err := New(points)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(points))
	var i int
	for i = range points {
		if ids[i], err = t.InsertPoint(points[i]); err != nil {
			return nil, err
		}
		t.original[points[i].Key()] = struct{}{}
	}
	for _, c := range constraints {
		if c[0] < 0 || c[0] >= len(points) || c[1] < 0 || c[1] >= len(points) {
			return nil, ErrVertexIndex
		}
		if err = t.InsertConstraint(ids[c[0]], ids[c[1]]); err != nil {
			return nil, err
		}
	}
	t.initial = t.CountVertices()

	return t, nil
}

// addVertex appends p to the arena and indexes it.
func (t *Triangulation) addVertex(p geom.Point) int {
	id := len(t.verts)
	t.verts = append(t.verts, p)
	t.index[p.Key()] = id

	return id
}

// Clone returns a deep copy of the arena. Points are immutable and shared.
//
// Complexity: O(V + F).
func (t *Triangulation) Clone() *Triangulation {
	c := &Triangulation{
		verts:       make([]geom.Point, len(t.verts)),
		faces:       make([]Face, len(t.faces)),
		index:       make(map[string]int, len(t.index)),
		constraints: make(map[Edge]struct{}, len(t.constraints)),
		original:    t.original, // read-only after Build
		initial:     t.initial,
		last:        t.last,
	}
	copy(c.verts, t.verts)
	copy(c.faces, t.faces)
	for k, v := range t.index {
		c.index[k] = v
	}
	for e := range t.constraints {
		c.constraints[e] = struct{}{}
	}

	return c
}

// Vertex returns the point of vertex v.
func (t *Triangulation) Vertex(v int) geom.Point { return t.verts[v] }

// VertexID returns the id of the vertex exactly at p.
func (t *Triangulation) VertexID(p geom.Point) (int, bool) {
	id, ok := t.index[p.Key()]

	return id, ok
}

// IsBounding reports whether v is one of the artificial bounding vertices.
func (t *Triangulation) IsBounding(v int) bool { return v < boundingVertices }

// Vertices returns the ids of all real vertices in insertion order.
func (t *Triangulation) Vertices() []int {
	out := make([]int, 0, len(t.verts)-boundingVertices)
	var v int
	for v = boundingVertices; v < len(t.verts); v++ {
		out = append(out, v)
	}

	return out
}

// CountVertices returns the number of real vertices currently in the mesh.
func (t *Triangulation) CountVertices() int { return len(t.verts) - boundingVertices }

// InitialVertexCount returns the vertex count recorded when Build finished.
func (t *Triangulation) InitialVertexCount() int { return t.initial }

// SteinerCount returns CountVertices() - InitialVertexCount().
func (t *Triangulation) SteinerCount() int { return t.CountVertices() - t.initial }

// IsSteinerPoint reports whether vertex v is not exactly equal to any input
// point.
func (t *Triangulation) IsSteinerPoint(v int) bool {
	if t.IsBounding(v) {
		return false
	}
	_, ok := t.original[t.verts[v].Key()]

	return !ok
}

// SteinerPoints returns the ids of Steiner vertices in insertion order.
func (t *Triangulation) SteinerPoints() []int {
	var out []int
	for _, v := range t.Vertices() {
		if t.IsSteinerPoint(v) {
			out = append(out, v)
		}
	}

	return out
}

// NumFaces returns the arena size, virtual faces included. Valid face ids are
// 0..NumFaces()-1.
func (t *Triangulation) NumFaces() int { return len(t.faces) }

// Face returns a copy of face f.
func (t *Triangulation) Face(f int) Face { return t.faces[f] }

// Triangle returns the three points of face f in counter-clockwise order.
func (t *Triangulation) Triangle(f int) (geom.Point, geom.Point, geom.Point) {
	v := t.faces[f].V

	return t.verts[v[0]], t.verts[v[1]], t.verts[v[2]]
}

// IsVirtual reports whether face f touches a bounding vertex.
func (t *Triangulation) IsVirtual(f int) bool {
	v := t.faces[f].V

	return t.IsBounding(v[0]) || t.IsBounding(v[1]) || t.IsBounding(v[2])
}

// Faces returns the ids of all non-virtual faces in ascending order.
func (t *Triangulation) Faces() []int {
	var out []int
	var f int
	for f = range t.faces {
		if !t.IsVirtual(f) {
			out = append(out, f)
		}
	}

	return out
}

// Neighbors returns the three neighbor face ids of f (NoFace where missing).
func (t *Triangulation) Neighbors(f int) [3]int { return t.faces[f].N }

// FindFace returns the face whose vertex set is exactly {u, v, w}.
func (t *Triangulation) FindFace(u, v, w int) (int, bool) {
	var f int
	for f = range t.faces {
		if t.hasVertex(f, u) && t.hasVertex(f, v) && t.hasVertex(f, w) {
			return f, true
		}
	}

	return NoFace, false
}

// FindEdge returns a face f and index i such that the edge opposite
// Face(f).V[i] joins u and v.
func (t *Triangulation) FindEdge(u, v int) (int, int, bool) {
	var f int
	for f = range t.faces {
		if i := t.edgeIndex(f, u, v); i >= 0 {
			return f, i, true
		}
	}

	return NoFace, -1, false
}

// IsConstrained reports whether the edge uv is constrained.
func (t *Triangulation) IsConstrained(u, v int) bool {
	_, ok := t.constraints[edgeKey(u, v)]

	return ok
}

// Constraints returns all constrained edges sorted by (U, V).
func (t *Triangulation) Constraints() []Edge {
	out := make([]Edge, 0, len(t.constraints))
	for e := range t.constraints {
		out = append(out, e)
	}
	sortEdges(out)

	return out
}

func sortEdges(es []Edge) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].U != es[j].U {
			return es[i].U < es[j].U
		}
		return es[i].V < es[j].V
	})
}

// Locate finds the face containing p. It walks from the face of the latest
// insertion, stepping across the first edge that separates the face from p,
// and falls back to a full scan when the walk leaves the arena or exceeds F
// steps. For a point on an edge the lower of the two face ids is reported, so
// the result matches a scan in face order.
//
// Complexity: O(√F) expected on spread-out input, O(F) worst case.
func (t *Triangulation) Locate(p geom.Point) Location {
	if loc, ok := t.walk(p); ok {
		return loc
	}

	return t.scan(p)
}

// walk is the straight visibility walk behind Locate. The starting edge of
// the test rotates with the step count so that the walk cannot cycle through
// the same three faces forever.
func (t *Triangulation) walk(p geom.Point) (Location, bool) {
	f := t.last
	if f < 0 || f >= len(t.faces) {
		f = 0
	}
	var step, k, i int
	for step = 0; step <= len(t.faces); step++ {
		F := t.faces[f]
		for k = 0; k < 3; k++ {
			i = (step + k) % 3
			if geom.Orientation(t.verts[F.V[ccw(i)]], t.verts[F.V[cw(i)]], p) < 0 {
				break
			}
		}
		if k < 3 {
			if F.N[i] == NoFace {
				return Location{}, false
			}
			f = F.N[i]
			continue
		}
		a, b, c := t.Triangle(f)
		kind, idx := geom.LocateInTriangle(p, a, b, c)
		switch kind {
		case geom.Outside:
			return Location{}, false
		case geom.OnEdge:
			if g := F.N[idx]; g != NoFace && g < f {
				return Location{Kind: kind, Face: g, Index: t.mirror(f, idx)}, true
			}
		}

		return Location{Kind: kind, Face: f, Index: idx}, true
	}

	return Location{}, false
}

// scan tests every face in id order.
//
// Complexity: O(F).
func (t *Triangulation) scan(p geom.Point) Location {
	var f int
	for f = range t.faces {
		a, b, c := t.Triangle(f)
		kind, idx := geom.LocateInTriangle(p, a, b, c)
		if kind != geom.Outside {
			return Location{Kind: kind, Face: f, Index: idx}
		}
	}

	return Location{Kind: geom.Outside, Face: NoFace, Index: -1}
}

// FacesAround returns the ids of every face that uses vertex v, ascending.
//
// Complexity: O(F) integer comparisons.
func (t *Triangulation) FacesAround(v int) []int {
	var out []int
	var f int
	for f = range t.faces {
		if t.hasVertex(f, v) {
			out = append(out, f)
		}
	}

	return out
}

// hasVertex reports whether face f uses vertex v.
func (t *Triangulation) hasVertex(f, v int) bool {
	fv := t.faces[f].V

	return fv[0] == v || fv[1] == v || fv[2] == v
}

// edgeIndex returns i such that the edge opposite V[i] of face f joins u and
// v, or -1.
func (t *Triangulation) edgeIndex(f, u, v int) int {
	fv := t.faces[f].V
	var i int
	for i = 0; i < 3; i++ {
		a, b := fv[ccw(i)], fv[cw(i)]
		if (a == u && b == v) || (a == v && b == u) {
			return i
		}
	}

	return -1
}

// mirror returns the index in the neighbor across edge i of f that refers to
// the same edge, or -1 when there is no neighbor.
func (t *Triangulation) mirror(f, i int) int {
	g := t.faces[f].N[i]
	if g == NoFace {
		return -1
	}
	fv := t.faces[f].V

	return t.edgeIndex(g, fv[ccw(i)], fv[cw(i)])
}

// setNeighbor points face f's edge uv at g. No-op for NoFace.
func (t *Triangulation) setNeighbor(f, u, v, g int) {
	if f == NoFace {
		return
	}
	if i := t.edgeIndex(f, u, v); i >= 0 {
		t.faces[f].N[i] = g
	}
}

// setConstrained flags the edge uv on every face that has it.
func (t *Triangulation) setConstrained(u, v int, on bool) {
	if on {
		t.constraints[edgeKey(u, v)] = struct{}{}
	} else {
		delete(t.constraints, edgeKey(u, v))
	}
	var f int
	for f = range t.faces {
		if i := t.edgeIndex(f, u, v); i >= 0 {
			t.faces[f].C[i] = on
		}
	}
}

// Adopt replaces the contents of t with those of src, typically a clone that
// a search produced. src must not be mutated afterwards.
func (t *Triangulation) Adopt(src *Triangulation) { *t = *src }
