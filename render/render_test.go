package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/region"
	"github.com/katalvlaran/lvmesh/render"
)

// meshWithSteiner is the flat triangle split by one point on its base.
func meshWithSteiner(t *testing.T) (*cdt.Triangulation, *region.Polygon) {
	t.Helper()
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(5, 1)}
	tr, err := cdt.Build(pts, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	require.NoError(t, err)
	poly, err := region.New(pts)
	require.NoError(t, err)
	_, err = tr.InsertPoint(geom.Pt(5, 0))
	require.NoError(t, err)
	require.True(t, poly.Update(geom.Pt(5, 0), pts[0], pts[1]))

	return tr, poly
}

func TestBound(t *testing.T) {
	_, poly := meshWithSteiner(t)
	b := render.Bound(poly)
	assert.Equal(t, orb.Point{0, 0}, b.Min)
	assert.Equal(t, orb.Point{10, 1}, b.Max)
}

func TestSVG(t *testing.T) {
	tr, poly := meshWithSteiner(t)
	var buf bytes.Buffer
	require.NoError(t, render.SVG(&buf, tr, poly, 400))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "</svg>")
	assert.Equal(t, 3, strings.Count(out, "<polygon"), "two faces and the region")
	assert.Equal(t, 4, strings.Count(out, "<circle"))
	assert.Contains(t, out, "4 vertices, 1 Steiner, 0 obtuse")

	assert.ErrorIs(t, render.SVG(&buf, nil, poly, 0), render.ErrNilMesh)
}

func TestGeoJSON(t *testing.T) {
	tr, poly := meshWithSteiner(t)
	fc, err := render.GeoJSON(tr, poly)
	require.NoError(t, err)

	kinds := map[string]int{}
	for _, f := range fc.Features {
		kinds[f.Properties.MustString("kind")]++
	}
	assert.Equal(t, map[string]int{"region": 1, "face": 2, "steiner": 1}, kinds)

	region := fc.Features[0].Geometry.(orb.Polygon)
	require.Len(t, region, 1)
	assert.Len(t, region[0], 5, "closed ring of four boundary points")
	assert.True(t, region[0].Closed())

	var buf bytes.Buffer
	require.NoError(t, render.WriteGeoJSON(&buf, tr, poly))
	back, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, back.Features, 4)
}
