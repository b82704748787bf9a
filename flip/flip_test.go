package flip_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/flip"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/region"
)

// kite is a flat quadrilateral whose long diagonal makes two obtuse triangles.
var kite = []geom.Point{geom.Pt(0, 0), geom.Pt(4, -1), geom.Pt(8, 0), geom.Pt(4, 1)}

func buildMesh(t *testing.T, pts []geom.Point, boundary []int, extra [][2]int) (*cdt.Triangulation, *region.Polygon) {
	t.Helper()
	ring := make([]geom.Point, len(boundary))
	cons := make([][2]int, 0, len(boundary)+len(extra))
	for k, idx := range boundary {
		ring[k] = pts[idx]
		cons = append(cons, [2]int{idx, boundary[(k+1)%len(boundary)]})
	}
	cons = append(cons, extra...)
	tr, err := cdt.Build(pts, cons)
	require.NoError(t, err)
	poly, err := region.New(ring)
	require.NoError(t, err)

	return tr, poly
}

// assertLocallyOptimal checks that no eligible edge would still pass Worth.
func assertLocallyOptimal(t *testing.T, tr *cdt.Triangulation, poly *region.Polygon) {
	t.Helper()
	for _, f := range tr.InsideFaces(poly) {
		F := tr.Face(f)
		for i := 0; i < 3; i++ {
			g := F.N[i]
			if g == cdt.NoFace || F.C[i] || !tr.IsFaceInside(g, poly) || tr.CanFlip(f, i) != nil {
				continue
			}
			q, _ := tr.Quad(f, i)
			assert.False(t, flip.Worth(tr.Vertex(q[0]), tr.Vertex(q[1]), tr.Vertex(q[2]), tr.Vertex(q[3])),
				"edge %d-%d should not be worth flipping", q[1], q[3])
		}
	}
}

func TestWorth(t *testing.T) {
	a, b, c, d := kite[0], kite[1], kite[2], kite[3]
	// Current diagonal b-d is already optimal.
	assert.False(t, flip.Worth(a, b, c, d))
	// Current diagonal a-c leaves two obtuse triangles.
	assert.True(t, flip.Worth(b, c, d, a))

	// A square is symmetric: neither diagonal is strictly better.
	sq := []geom.Point{geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 2), geom.Pt(0, 2)}
	assert.False(t, flip.Worth(sq[0], sq[1], sq[2], sq[3]))
	assert.False(t, flip.Worth(sq[1], sq[2], sq[3], sq[0]))
}

func TestWorth_Antisymmetric(t *testing.T) {
	p1, p2, p3, p4 := geom.Pt(0, 0), geom.Pt(6, 0), geom.Pt(7, 3), geom.Pt(1, 1)
	before := flip.Worth(p1, p2, p3, p4)
	after := flip.Worth(p2, p3, p4, p1)
	assert.False(t, before && after, "a flip and its inverse cannot both improve")
}

func TestRun_RestoresBetterDiagonal(t *testing.T) {
	tr, poly := buildMesh(t, kite, []int{0, 1, 2, 3}, nil)
	require.Equal(t, 0, tr.CountObtuseTriangles(poly))

	a, _ := tr.VertexID(kite[0])
	c, _ := tr.VertexID(kite[2])
	b, _ := tr.VertexID(kite[1])
	d, _ := tr.VertexID(kite[3])
	f, i, ok := tr.FindEdge(b, d)
	require.True(t, ok)
	require.NoError(t, tr.Flip(f, i))
	require.Equal(t, 2, tr.CountObtuseTriangles(poly))

	n, err := flip.Run(tr, poly)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, tr.CountObtuseTriangles(poly))
	_, _, ok = tr.FindEdge(b, d)
	assert.True(t, ok)
	_, _, ok = tr.FindEdge(a, c)
	assert.False(t, ok)
}

func TestRun_KeepsConstrainedEdges(t *testing.T) {
	tr, poly := buildMesh(t, kite, []int{0, 1, 2, 3}, [][2]int{{0, 2}})
	require.Equal(t, 2, tr.CountObtuseTriangles(poly))

	n, err := flip.Run(tr, poly)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 2, tr.CountObtuseTriangles(poly))
}

func TestRun_FixpointAndIdempotence(t *testing.T) {
	pts := []geom.Point{
		geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10),
		geom.Pt(3, 1), geom.Pt(7, 2), geom.Pt(5, 5), geom.Pt(2, 7),
		geom.Pt(8, 8), geom.Pt(1, 4), geom.Pt(6, 9), geom.Pt(9, 5),
	}
	tr, poly := buildMesh(t, pts, []int{0, 1, 2, 3}, [][2]int{{4, 6}})
	before := tr.CountObtuseTriangles(poly)

	_, err := flip.Run(tr, poly)
	require.NoError(t, err)
	assert.LessOrEqual(t, tr.CountObtuseTriangles(poly), before)
	assertLocallyOptimal(t, tr, poly)

	snapshot := tr.Clone()
	n, err := flip.Run(tr, poly)
	require.NoError(t, err)
	assert.Zero(t, n, "a second run must find nothing to flip")
	assert.Equal(t, snapshot.Constraints(), tr.Constraints())
	assert.Equal(t, snapshot.Edges(poly), tr.Edges(poly))
}

// TestRunAround_KeepsGlobalFixpoint inserts seeded points one at a time into a
// flipped mesh and cleans up around each; a global pass must find nothing.
func TestRunAround_KeepsGlobalFixpoint(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(60, 0), geom.Pt(60, 40), geom.Pt(30, 55), geom.Pt(0, 40)}
	tr, poly := buildMesh(t, pts, []int{0, 1, 2, 3, 4}, nil)
	_, err := flip.Run(tr, poly)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for k := 0; k < 25; k++ {
		p := geom.Pt(1+rng.Int63n(59), 1+rng.Int63n(39))
		if _, dup := tr.VertexID(p); dup {
			continue
		}
		v, err := tr.InsertPoint(p)
		require.NoError(t, err)
		_, err = flip.RunAround(tr, poly, v)
		require.NoError(t, err)

		again, err := flip.Run(tr, poly)
		require.NoError(t, err)
		require.Zero(t, again, "insertion %d at %s", k, p)
	}
	assertLocallyOptimal(t, tr, poly)
}

func TestRunAround_RestoresBetterDiagonal(t *testing.T) {
	tr, poly := buildMesh(t, kite, []int{0, 1, 2, 3}, nil)
	a, _ := tr.VertexID(kite[0])
	b, _ := tr.VertexID(kite[1])
	c, _ := tr.VertexID(kite[2])
	d, _ := tr.VertexID(kite[3])
	f, i, ok := tr.FindEdge(b, d)
	require.True(t, ok)
	require.NoError(t, tr.Flip(f, i))
	require.Equal(t, 2, tr.CountObtuseTriangles(poly))

	// b touches the bad diagonal a-c through one of its faces.
	n, err := flip.RunAround(tr, poly, b)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, tr.CountObtuseTriangles(poly))
	_, _, ok = tr.FindEdge(a, c)
	assert.False(t, ok)
	assertLocallyOptimal(t, tr, poly)
}
