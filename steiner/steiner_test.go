package steiner_test

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/flip"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/region"
	"github.com/katalvlaran/lvmesh/steiner"
)

// mesh builds a triangulation whose boundary is the whole point list, in order.
func mesh(t *testing.T, pts []geom.Point, extra ...[2]int) (*cdt.Triangulation, *region.Polygon) {
	t.Helper()
	cons := make([][2]int, 0, len(pts)+len(extra))
	for i := range pts {
		cons = append(cons, [2]int{i, (i + 1) % len(pts)})
	}
	tr, err := cdt.Build(pts, append(cons, extra...))
	require.NoError(t, err)
	poly, err := region.New(pts)
	require.NoError(t, err)

	return tr, poly
}

func ratio(a, b int64) *big.Rat { return big.NewRat(a, b) }

// scattered builds the square [0,100]² with n distinct seeded interior points
// and flips it to a fixpoint.
func scattered(t *testing.T, seed int64, n int) (*cdt.Triangulation, *region.Polygon) {
	t.Helper()
	var (
		rng     = rand.New(rand.NewSource(seed))
		corners = []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 100), geom.Pt(0, 100)}
		pts     = append([]geom.Point(nil), corners...)
		seen    = make(map[string]bool)
	)
	for len(pts) < len(corners)+n {
		p := geom.Pt(1+rng.Int63n(99), 1+rng.Int63n(99))
		if seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		pts = append(pts, p)
	}
	tr, err := cdt.Build(pts, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
	require.NoError(t, err)
	poly, err := region.New(corners)
	require.NoError(t, err)
	_, err = flip.Run(tr, poly)
	require.NoError(t, err)

	return tr, poly
}

func thin(t *testing.T) (*cdt.Triangulation, *region.Polygon, int) {
	t.Helper()
	tr, poly := mesh(t, []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(5, 1)})
	faces := tr.ObtuseFaces(poly)
	require.Len(t, faces, 1)

	return tr, poly, faces[0]
}

func TestMethod_StringAndParse(t *testing.T) {
	for _, m := range steiner.Priority {
		got, err := steiner.ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := steiner.ParseMethod("MidPoint")
	require.NoError(t, err)
	assert.Equal(t, steiner.Midpoint, got)

	_, err = steiner.ParseMethod("voronoi")
	assert.ErrorIs(t, err, steiner.ErrUnknownMethod)
	assert.Equal(t, "method(42)", steiner.Method(42).String())
}

func TestPropose_RightTriangle(t *testing.T) {
	tr, poly := mesh(t, []geom.Point{geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(0, 4)})
	f := tr.InsideFaces(poly)[0]

	c, err := steiner.Propose(tr, poly, f, steiner.Circumcenter)
	require.NoError(t, err)
	assert.True(t, c.Point.Equal(geom.Pt(2, 2)))

	_, err = steiner.Propose(tr, poly, f, steiner.Projection)
	assert.ErrorIs(t, err, steiner.ErrNotApplicable, "no obtuse vertex")

	m, err := steiner.Propose(tr, poly, f, steiner.Midpoint)
	require.NoError(t, err)
	assert.True(t, m.Point.Equal(geom.Pt(2, 2)))
	assert.True(t, m.HasEdge)

	g, err := steiner.Propose(tr, poly, f, steiner.Centroid)
	require.NoError(t, err)
	assert.True(t, g.Point.Equal(geom.PtRat(ratio(4, 3), ratio(4, 3))))

	_, err = steiner.Propose(tr, poly, f, steiner.Adjacent)
	assert.ErrorIs(t, err, steiner.ErrNotApplicable)

	_, err = steiner.Propose(tr, poly, tr.NumFaces(), steiner.Centroid)
	assert.ErrorIs(t, err, cdt.ErrFaceIndex)
}

func TestPropose_ThinTriangle(t *testing.T) {
	tr, poly, f := thin(t)

	_, err := steiner.Propose(tr, poly, f, steiner.Circumcenter)
	assert.ErrorIs(t, err, steiner.ErrNotApplicable, "circumcenter lies outside the region")

	p, err := steiner.Propose(tr, poly, f, steiner.Projection)
	require.NoError(t, err)
	assert.True(t, p.Point.Equal(geom.Pt(5, 0)))
	require.True(t, p.HasEdge)
	assert.True(t, geom.InsideSegment(p.Point, p.Edge[0], p.Edge[1]))
	assert.False(t, steiner.IsCircumcenterInNeighbor(tr, poly, f, geom.Pt(5, -12)))
}

func TestApply_ProjectionSplitsBoundary(t *testing.T) {
	tr, poly, f := thin(t)
	cand, err := steiner.Propose(tr, poly, f, steiner.Projection)
	require.NoError(t, err)

	before := tr.CountVertices()
	v, err := steiner.Apply(tr, poly, cand)
	require.NoError(t, err)

	assert.Equal(t, before+1, tr.CountVertices())
	assert.True(t, tr.IsSteinerPoint(v))
	assert.Equal(t, 4, poly.Len(), "the foot is spliced into the boundary")
	assert.Zero(t, tr.CountObtuseTriangles(poly))

	_, err = steiner.Apply(tr, poly, cand)
	assert.ErrorIs(t, err, steiner.ErrNotApplicable, "the point is already a vertex")
	assert.Equal(t, before+1, tr.CountVertices())
}

func TestEvaluate_LeavesInputUntouched(t *testing.T) {
	tr, poly, f := thin(t)
	cand, err := steiner.Propose(tr, poly, f, steiner.Centroid)
	require.NoError(t, err)

	o, err := steiner.Evaluate(tr, poly, cand)
	require.NoError(t, err)
	assert.Equal(t, 4, o.Mesh.CountVertices())
	assert.Equal(t, 3, tr.CountVertices())
	assert.Equal(t, 3, poly.Len())
	assert.Equal(t, 1, tr.CountObtuseTriangles(poly))
	assert.Equal(t, o.Obtuse, o.Mesh.CountObtuseTriangles(o.Region))
}

func TestBest_TieGoesToPriority(t *testing.T) {
	tr, poly, f := thin(t)
	o, err := steiner.Best(tr, poly, f)
	require.NoError(t, err)
	// Projection and midpoint both land on (5,0); projection ranks first.
	assert.Equal(t, steiner.Projection, o.Candidate.Method)
	assert.Zero(t, o.Obtuse)
}

func TestTryFrom_RoundRobin(t *testing.T) {
	tr, poly, f := thin(t)

	o, err := steiner.TryFrom(tr, poly, f, steiner.Circumcenter)
	require.NoError(t, err)
	assert.Equal(t, steiner.Projection, o.Candidate.Method)

	// Adjacent does not apply and the centroid would leave three obtuse
	// faces, so the chain wraps around to projection.
	o, err = steiner.TryFrom(tr, poly, f, steiner.Adjacent)
	require.NoError(t, err)
	assert.Equal(t, steiner.Projection, o.Candidate.Method)
	assert.Zero(t, o.Obtuse)
}

func TestCentroid_RaisingOutcomeIsNotSelected(t *testing.T) {
	tr, poly, f := thin(t)
	cand, err := steiner.Propose(tr, poly, f, steiner.Centroid)
	require.NoError(t, err)

	// The insertion itself succeeds and leaves three obtuse faces ...
	o, err := steiner.Evaluate(tr, poly, cand)
	require.NoError(t, err)
	assert.Equal(t, 3, o.Obtuse)

	// ... so selection never hands it out.
	best, err := steiner.Best(tr, poly, f)
	require.NoError(t, err)
	assert.NotEqual(t, steiner.Centroid, best.Candidate.Method)
}

// TestSelection_NeverRaisesObtuseCount runs every selection entry point on
// every obtuse face of seeded scattered meshes.
func TestSelection_NeverRaisesObtuseCount(t *testing.T) {
	var checked int
	for seed := int64(1); seed <= 6; seed++ {
		tr, poly := scattered(t, seed, 10)
		before := tr.CountObtuseTriangles(poly)
		vertices := tr.CountVertices()

		for _, f := range tr.ObtuseFaces(poly) {
			for _, m := range steiner.Priority {
				o, err := steiner.TryFrom(tr, poly, f, m)
				if errors.Is(err, steiner.ErrNotApplicable) {
					continue
				}
				require.NoError(t, err)
				checked++
				assert.LessOrEqual(t, o.Obtuse, before, "seed %d face %d from %s", seed, f, m)
				assert.Equal(t, vertices+1, o.Mesh.CountVertices())

				// The local cleanup leaves nothing for a global pass.
				n, err := flip.Run(o.Mesh, o.Region)
				require.NoError(t, err)
				assert.Zero(t, n, "seed %d face %d via %s", seed, f, o.Candidate.Method)
			}

			o, err := steiner.Best(tr, poly, f)
			if !errors.Is(err, steiner.ErrNotApplicable) {
				require.NoError(t, err)
				assert.LessOrEqual(t, o.Obtuse, before)
			}

			cand, err := steiner.Propose(tr, poly, f, steiner.Centroid)
			require.NoError(t, err, "centroid always proposes")
			_, err = steiner.Evaluate(tr, poly, cand)
			require.NoError(t, err, "centroid always inserts")
		}
		assert.Equal(t, vertices, tr.CountVertices(), "trials never touch the input")
	}
	assert.Positive(t, checked)
}

func TestCentroid_AlwaysSucceeds(t *testing.T) {
	shapes := [][]geom.Point{
		{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(5, 1)},
		{geom.Pt(0, 0), geom.Pt(3, 0), geom.Pt(-7, 2)},
		{geom.Pt(1, 1), geom.Pt(9, 2), geom.Pt(2, 3)},
	}
	for _, pts := range shapes {
		tr, poly := mesh(t, pts)
		for _, f := range tr.ObtuseFaces(poly) {
			cand, err := steiner.Propose(tr, poly, f, steiner.Centroid)
			require.NoError(t, err)
			before := tr.CountVertices()
			_, err = steiner.Apply(tr, poly, cand)
			require.NoError(t, err)
			assert.Equal(t, before+1, tr.CountVertices())
			break
		}
	}
}

func TestWorthInsertCentroid(t *testing.T) {
	tr, poly, f := thin(t)
	assert.False(t, steiner.WorthInsertCentroid(tr, poly, f), "the centroid of a flat triangle stays obtuse")
}

func TestAdjacent_ConvexUnion(t *testing.T) {
	// Constraining the long diagonal leaves two obtuse faces sharing it.
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(4, -1), geom.Pt(8, 0), geom.Pt(4, 1)}
	tr, poly := mesh(t, pts, [2]int{0, 2})
	faces := tr.ObtuseFaces(poly)
	require.Len(t, faces, 2)
	require.True(t, tr.HasObtuseNeighbors(faces[0], poly))

	cand, err := steiner.Propose(tr, poly, faces[0], steiner.Adjacent)
	require.NoError(t, err)
	assert.True(t, cand.Point.Equal(geom.Pt(4, 0)))

	_, err = steiner.Apply(tr, poly, cand)
	require.NoError(t, err)
	assert.Zero(t, tr.CountObtuseTriangles(poly))
	assert.Equal(t, 5, tr.CountVertices())
	assert.Equal(t, 4, poly.Len(), "the diagonal is not a boundary edge")
}
