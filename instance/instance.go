package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/optimize"
	"github.com/katalvlaran/lvmesh/region"
)

// Sentinel errors for instance handling.
var (
	// ErrFormat indicates an unsupported file extension.
	ErrFormat = errors.New("instance: unsupported format")

	// ErrCoordinate indicates a coordinate that is not a number.
	ErrCoordinate = errors.New("instance: bad coordinate")

	// ErrTooFewPoints indicates fewer than three points.
	ErrTooFewPoints = errors.New("instance: need at least three points")

	// ErrLengthMismatch indicates inconsistent array lengths or counts.
	ErrLengthMismatch = errors.New("instance: length mismatch")

	// ErrBoundary indicates a malformed region boundary.
	ErrBoundary = errors.New("instance: bad region boundary")

	// ErrConstraint indicates an out-of-range or degenerate constraint.
	ErrConstraint = errors.New("instance: bad constraint")
)

// Format is an instance encoding.
type Format int

const (
	// JSON documents, decoded with goccy/go-json.
	JSON Format = iota
	// YAML documents, decoded with yaml.v3.
	YAML
)

// Parameters holds the optional tuning values of an instance. Nil fields are
// absent from the document.
type Parameters struct {
	L         *int     `json:"L,omitempty" yaml:"L,omitempty"`
	Alpha     *float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Beta      *float64 `json:"beta,omitempty" yaml:"beta,omitempty"`
	BatchSize *int     `json:"batch_size,omitempty" yaml:"batch_size,omitempty"`
	Lambda    *float64 `json:"lambda,omitempty" yaml:"lambda,omitempty"`
	Xi        *float64 `json:"xi,omitempty" yaml:"xi,omitempty"`
	Psi       *float64 `json:"psi,omitempty" yaml:"psi,omitempty"`
	Kappa     *int     `json:"kappa,omitempty" yaml:"kappa,omitempty"`
}

// Instance is one optimization problem.
type Instance struct {
	UID                   string     `json:"instance_uid" yaml:"instance_uid"`
	NumPoints             int        `json:"num_points" yaml:"num_points"`
	PointsX               []Coord    `json:"points_x" yaml:"points_x"`
	PointsY               []Coord    `json:"points_y" yaml:"points_y"`
	RegionBoundary        []int      `json:"region_boundary" yaml:"region_boundary"`
	NumConstraints        int        `json:"num_constraints" yaml:"num_constraints"`
	AdditionalConstraints [][2]int   `json:"additional_constraints" yaml:"additional_constraints"`
	Method                string     `json:"method" yaml:"method"`
	Parameters            Parameters `json:"parameters" yaml:"parameters"`
	// Delaunay defaults to true when absent.
	Delaunay *bool `json:"delaunay,omitempty" yaml:"delaunay,omitempty"`
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}

// Load reads and parses the instance at path.
func Load(path string) (*Instance, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("instance: read %s: %w", path, err)
	}

	return Parse(data, format)
}

// Parse decodes an instance document. It does not validate it.
func Parse(data []byte, format Format) (*Instance, error) {
	inst := new(Instance)
	var err error
	switch format {
	case JSON:
		err = json.Unmarshal(data, inst)
	case YAML:
		err = yaml.Unmarshal(data, inst)
	default:
		return nil, ErrFormat
	}
	if err != nil {
		return nil, fmt.Errorf("instance: decode: %w", err)
	}

	return inst, nil
}

// Validate checks the input contract.
//
// Complexity: O(n + b + c).
func Validate(inst *Instance) error {
	n := len(inst.PointsX)
	if n != len(inst.PointsY) {
		return fmt.Errorf("%w: %d x and %d y coordinates", ErrLengthMismatch, n, len(inst.PointsY))
	}
	if n < 3 {
		return ErrTooFewPoints
	}
	if inst.NumPoints != 0 && inst.NumPoints != n {
		return fmt.Errorf("%w: num_points=%d, got %d", ErrLengthMismatch, inst.NumPoints, n)
	}
	if inst.NumConstraints != 0 && inst.NumConstraints != len(inst.AdditionalConstraints) {
		return fmt.Errorf("%w: num_constraints=%d, got %d", ErrLengthMismatch, inst.NumConstraints, len(inst.AdditionalConstraints))
	}
	if len(inst.RegionBoundary) < 3 {
		return fmt.Errorf("%w: %d vertices", ErrBoundary, len(inst.RegionBoundary))
	}
	seen := make(map[int]struct{}, len(inst.RegionBoundary))
	for _, idx := range inst.RegionBoundary {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: index %d out of range", ErrBoundary, idx)
		}
		if _, dup := seen[idx]; dup {
			return fmt.Errorf("%w: index %d repeated", ErrBoundary, idx)
		}
		seen[idx] = struct{}{}
	}
	for _, c := range inst.AdditionalConstraints {
		if c[0] < 0 || c[0] >= n || c[1] < 0 || c[1] >= n {
			return fmt.Errorf("%w: %v out of range", ErrConstraint, c)
		}
		if c[0] == c[1] {
			return fmt.Errorf("%w: %v is degenerate", ErrConstraint, c)
		}
	}
	if inst.Method != "" {
		if _, err := optimize.ParseMethod(inst.Method); err != nil {
			return err
		}
	}

	return nil
}

// Points returns the input points in order.
func (inst *Instance) Points() []geom.Point {
	pts := make([]geom.Point, len(inst.PointsX))
	for i := range pts {
		pts[i] = geom.PtRat(&inst.PointsX[i].Rat, &inst.PointsY[i].Rat)
	}

	return pts
}

// Build validates inst and constructs the constrained triangulation and the
// region polygon.
func Build(inst *Instance) (*cdt.Triangulation, *region.Polygon, error) {
	if err := Validate(inst); err != nil {
		return nil, nil, err
	}
	pts := inst.Points()
	b := inst.RegionBoundary
	ring := make([]geom.Point, len(b))
	cons := make([][2]int, 0, len(b)+len(inst.AdditionalConstraints))
	for k, idx := range b {
		ring[k] = pts[idx]
		cons = append(cons, [2]int{idx, b[(k+1)%len(b)]})
	}
	cons = append(cons, inst.AdditionalConstraints...)

	tr, err := cdt.Build(pts, cons)
	if err != nil {
		return nil, nil, fmt.Errorf("instance: triangulate: %w", err)
	}
	poly, err := region.New(ring)
	if err != nil {
		return nil, nil, fmt.Errorf("instance: region: %w", err)
	}

	return tr, poly, nil
}

// Options overlays the instance method and parameters on base.
func Options(inst *Instance, base optimize.Options) (optimize.Options, error) {
	o := base
	if inst.Method != "" {
		m, err := optimize.ParseMethod(inst.Method)
		if err != nil {
			return o, err
		}
		o.Method = m
	}
	p := inst.Parameters
	if p.L != nil {
		o.Iterations = *p.L
	}
	if p.Alpha != nil {
		o.Alpha = *p.Alpha
	}
	if p.Beta != nil {
		o.Beta = *p.Beta
	}
	if p.BatchSize != nil {
		o.BatchSize = *p.BatchSize
	}
	if p.Lambda != nil {
		o.Lambda = *p.Lambda
	}
	if p.Xi != nil {
		o.Chi = *p.Xi
	}
	if p.Psi != nil {
		o.Psi = *p.Psi
	}
	if p.Kappa != nil {
		o.Kappa = *p.Kappa
	}
	if inst.Delaunay != nil {
		o.Delaunay = *inst.Delaunay
	}

	return o, nil
}
