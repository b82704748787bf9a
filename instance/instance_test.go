package instance_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/instance"
	"github.com/katalvlaran/lvmesh/optimize"
)

const thinJSON = `{
  "instance_uid": "thin-01",
  "num_points": 4,
  "points_x": [0, 10, 5, "5/2"],
  "points_y": [0, 0, 1, 0.25],
  "region_boundary": [0, 1, 2],
  "num_constraints": 0,
  "additional_constraints": [],
  "method": "sa",
  "parameters": {"L": 50, "alpha": 3.5, "batch_size": 7, "xi": 2},
  "delaunay": false
}`

const squareYAML = `
instance_uid: square
points_x: [0, 4, 4, 0]
points_y: [0, 0, 4, 4]
region_boundary: [0, 1, 2, 3]
additional_constraints:
  - [0, 2]
method: ant
parameters:
  kappa: 9
  lambda: 0.25
`

func TestParse_JSON(t *testing.T) {
	inst, err := instance.Parse([]byte(thinJSON), instance.JSON)
	require.NoError(t, err)
	require.NoError(t, instance.Validate(inst))

	assert.Equal(t, "thin-01", inst.UID)
	pts := inst.Points()
	require.Len(t, pts, 4)
	assert.Equal(t, "5/2,1/4", pts[3].Key())
	require.NotNil(t, inst.Delaunay)
	assert.False(t, *inst.Delaunay)

	o, err := instance.Options(inst, optimize.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, optimize.Annealing, o.Method)
	assert.Equal(t, 50, o.Iterations)
	assert.Equal(t, 3.5, o.Alpha)
	assert.Equal(t, optimize.DefaultBeta, o.Beta)
	assert.Equal(t, 7, o.BatchSize)
	assert.Equal(t, 2.0, o.Chi)
	assert.False(t, o.Delaunay)
}

func TestParse_YAML(t *testing.T) {
	inst, err := instance.Parse([]byte(squareYAML), instance.YAML)
	require.NoError(t, err)
	require.NoError(t, instance.Validate(inst))
	assert.Equal(t, [][2]int{{0, 2}}, inst.AdditionalConstraints)
	assert.Nil(t, inst.Delaunay)

	o, err := instance.Options(inst, optimize.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, optimize.Ant, o.Method)
	assert.Equal(t, 9, o.Kappa)
	assert.Equal(t, 0.25, o.Lambda)
	assert.True(t, o.Delaunay)
	assert.Equal(t, optimize.DefaultIterations, o.Iterations)
}

func TestParse_BadCoordinate(t *testing.T) {
	_, err := instance.Parse([]byte(`{"points_x": ["x"], "points_y": [0]}`), instance.JSON)
	assert.ErrorIs(t, err, instance.ErrCoordinate)

	_, err = instance.Parse([]byte("points_x: [abc]\n"), instance.YAML)
	assert.ErrorIs(t, err, instance.ErrCoordinate)
}

func TestValidate(t *testing.T) {
	base := func() *instance.Instance {
		inst, err := instance.Parse([]byte(thinJSON), instance.JSON)
		require.NoError(t, err)
		return inst
	}
	cases := []struct {
		name   string
		mutate func(*instance.Instance)
		want   error
	}{
		{"length mismatch", func(i *instance.Instance) { i.PointsY = i.PointsY[:2] }, instance.ErrLengthMismatch},
		{"too few points", func(i *instance.Instance) {
			i.PointsX, i.PointsY, i.NumPoints = i.PointsX[:2], i.PointsY[:2], 0
		}, instance.ErrTooFewPoints},
		{"num_points", func(i *instance.Instance) { i.NumPoints = 9 }, instance.ErrLengthMismatch},
		{"short boundary", func(i *instance.Instance) { i.RegionBoundary = []int{0, 1} }, instance.ErrBoundary},
		{"boundary range", func(i *instance.Instance) { i.RegionBoundary = []int{0, 1, 4} }, instance.ErrBoundary},
		{"boundary repeat", func(i *instance.Instance) { i.RegionBoundary = []int{0, 1, 1} }, instance.ErrBoundary},
		{"constraint range", func(i *instance.Instance) { i.AdditionalConstraints = [][2]int{{0, 8}} }, instance.ErrConstraint},
		{"constraint loop", func(i *instance.Instance) { i.AdditionalConstraints = [][2]int{{2, 2}} }, instance.ErrConstraint},
		{"num_constraints", func(i *instance.Instance) { i.NumConstraints = 3 }, instance.ErrLengthMismatch},
		{"method", func(i *instance.Instance) { i.Method = "genetic" }, optimize.ErrUnknownMethod},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inst := base()
			tc.mutate(inst)
			assert.ErrorIs(t, instance.Validate(inst), tc.want)
		})
	}
}

func TestBuild(t *testing.T) {
	inst, err := instance.Parse([]byte(squareYAML), instance.YAML)
	require.NoError(t, err)
	tr, poly, err := instance.Build(inst)
	require.NoError(t, err)

	assert.Equal(t, 4, tr.CountVertices())
	assert.Equal(t, 4, poly.Len())
	a, _ := tr.VertexID(geom.Pt(0, 0))
	c, _ := tr.VertexID(geom.Pt(4, 4))
	assert.True(t, tr.IsConstrained(a, c))
	assert.Len(t, tr.Constraints(), 5)
}

func TestSolution_RoundTrip(t *testing.T) {
	inst, err := instance.Parse([]byte(thinJSON), instance.JSON)
	require.NoError(t, err)
	inst.RegionBoundary = []int{0, 1, 2}
	tr, poly, err := instance.Build(inst)
	require.NoError(t, err)

	_, err = tr.InsertPoint(geom.Pt(5, 0))
	require.NoError(t, err)
	require.True(t, poly.Update(geom.Pt(5, 0), geom.Pt(0, 0), geom.Pt(10, 0)))

	sol, err := instance.NewSolution(inst, tr, poly, optimize.Annealing)
	require.NoError(t, err)
	assert.Equal(t, instance.ContentType, sol.ContentType)
	assert.Equal(t, "thin-01", sol.UID)
	assert.Equal(t, []string{"5"}, sol.SteinerPointsX)
	assert.Equal(t, []string{"0"}, sol.SteinerPointsY)
	assert.Equal(t, "sa", sol.Method)
	assert.Equal(t, 50, *sol.Parameters.L)
	// The Steiner point takes index 4, after the four input points.
	assert.Contains(t, sol.Edges, [2]int{0, 4})
	assert.Contains(t, sol.Edges, [2]int{1, 4})
	for _, e := range sol.Edges {
		assert.Less(t, e[0], e[1])
	}

	var buf bytes.Buffer
	require.NoError(t, instance.WriteSolution(&buf, sol))
	assert.Contains(t, buf.String(), `"content_type": "CG_SHOP_2025_Solution"`)
	back, err := instance.ReadSolution(&buf)
	require.NoError(t, err)
	assert.Equal(t, sol, back)
}

func TestSolution_GeneratesUID(t *testing.T) {
	inst, err := instance.Parse([]byte(squareYAML), instance.YAML)
	require.NoError(t, err)
	inst.UID = ""
	tr, poly, err := instance.Build(inst)
	require.NoError(t, err)

	sol, err := instance.NewSolution(inst, tr, poly, optimize.Ant)
	require.NoError(t, err)
	assert.Len(t, sol.UID, 36)
	assert.Empty(t, sol.SteinerPointsX)
	assert.Len(t, sol.Edges, 5)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "thin.json")
	yamlPath := filepath.Join(dir, "square.YML")
	require.NoError(t, os.WriteFile(jsonPath, []byte(thinJSON), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte(squareYAML), 0o600))

	inst, err := instance.Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "thin-01", inst.UID)

	inst, err = instance.Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "square", inst.UID)

	_, err = instance.Load(filepath.Join(dir, "mesh.txt"))
	assert.ErrorIs(t, err, instance.ErrFormat)

	_, err = instance.Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	out := filepath.Join(dir, "out.json")
	tr, poly, err := instance.Build(inst)
	require.NoError(t, err)
	sol, err := instance.NewSolution(inst, tr, poly, optimize.Ant)
	require.NoError(t, err)
	require.NoError(t, instance.SaveSolution(out, sol))
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	back, err := instance.ReadSolution(f)
	require.NoError(t, err)
	assert.Equal(t, sol.Edges, back.Edges)
}
