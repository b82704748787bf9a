package region_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/region"
)

// lShape is a non-convex hexagon used across the region tests:
//
//	(0,4)──(2,4)
//	  │      │
//	  │    (2,2)──(4,2)
//	  │             │
//	(0,0)────────(4,0)
func lShape(t *testing.T) *region.Polygon {
	t.Helper()
	p, err := region.New([]geom.Point{
		geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(4, 2),
		geom.Pt(2, 2), geom.Pt(2, 4), geom.Pt(0, 4),
	})
	require.NoError(t, err)

	return p
}

// TestNew_TooFewPoints rejects degenerate boundaries.
func TestNew_TooFewPoints(t *testing.T) {
	_, err := region.New([]geom.Point{geom.Pt(0, 0), geom.Pt(1, 0)})
	assert.ErrorIs(t, err, region.ErrTooFewPoints)
}

// TestContains covers interior, boundary, vertex and the notch of the L.
func TestContains(t *testing.T) {
	p := lShape(t)

	assert.True(t, p.Contains(geom.Pt(1, 1)))
	assert.True(t, p.Contains(geom.Pt(1, 3)))
	assert.True(t, p.Contains(geom.Pt(3, 1)))
	assert.True(t, p.Contains(geom.Pt(2, 0)), "boundary point")
	assert.True(t, p.Contains(geom.Pt(2, 2)), "reflex vertex")
	assert.False(t, p.Contains(geom.Pt(3, 3)), "notch is outside")
	assert.False(t, p.Contains(geom.Pt(5, 1)))
	assert.False(t, p.Contains(geom.Pt(-1, 2)))
	// Ray through a vertex at the same height must not double count.
	assert.True(t, p.Contains(geom.Pt(1, 2)))
	assert.False(t, p.Contains(geom.Pt(-1, 4)))
}

// TestEdgesAndFaces checks the edge and face classification helpers.
func TestEdgesAndFaces(t *testing.T) {
	p := lShape(t)

	assert.True(t, p.EdgeOnBoundary(geom.Pt(1, 0), geom.Pt(3, 0)))
	assert.False(t, p.EdgeOnBoundary(geom.Pt(0, 0), geom.Pt(2, 2)))

	assert.True(t, p.EdgeInside(geom.Pt(0, 0), geom.Pt(2, 2)))
	assert.False(t, p.EdgeInside(geom.Pt(4, 2), geom.Pt(2, 4)), "chord across the notch")

	assert.True(t, p.FaceInside(geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(2, 2)))
	assert.False(t, p.FaceInside(geom.Pt(2, 2), geom.Pt(4, 2), geom.Pt(2, 4)))
	assert.True(t, p.FaceOnBoundary(geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(2, 2)))
	assert.False(t, p.FaceOnBoundary(geom.Pt(1, 1), geom.Pt(3, 1), geom.Pt(1, 3)))
}

// TestUpdate splices a point into a boundary edge and ignores anything else.
func TestUpdate(t *testing.T) {
	p := lShape(t)

	// Not on the edge: no-op.
	assert.False(t, p.Update(geom.Pt(2, 1), geom.Pt(0, 0), geom.Pt(4, 0)))
	// Endpoints not consecutive: no-op.
	assert.False(t, p.Update(geom.Pt(1, 1), geom.Pt(0, 0), geom.Pt(2, 2)))
	require.Equal(t, 6, p.Len())

	// Reversed endpoints are accepted.
	require.True(t, p.Update(geom.Pt(2, 0), geom.Pt(4, 0), geom.Pt(0, 0)))
	pts := p.Points()
	require.Len(t, pts, 7)
	assert.True(t, pts[1].Equal(geom.Pt(2, 0)))
	assert.True(t, pts[2].Equal(geom.Pt(4, 0)))

	// Closing edge (0,4)→(0,0) appends at the end.
	require.True(t, p.Update(geom.Pt(0, 2), geom.Pt(0, 4), geom.Pt(0, 0)))
	pts = p.Points()
	assert.True(t, pts[len(pts)-1].Equal(geom.Pt(0, 2)))

	a, b, ok := p.BoundaryEdgeContaining(geom.Pt(0, 1))
	require.True(t, ok)
	assert.True(t, a.Equal(geom.Pt(0, 2)))
	assert.True(t, b.Equal(geom.Pt(0, 0)))
}

// TestClone_Independent ensures clones do not share the point slice.
func TestClone_Independent(t *testing.T) {
	p := lShape(t)
	c := p.Clone()
	require.True(t, c.Update(geom.Pt(2, 0), geom.Pt(0, 0), geom.Pt(4, 0)))
	assert.Equal(t, 6, p.Len())
	assert.Equal(t, 7, c.Len())
}
