package optimize

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/lvmesh/steiner"
)

// Sentinel errors returned by the drivers.
var (
	// ErrNilMesh indicates a nil triangulation or region.
	ErrNilMesh = errors.New("optimize: mesh or region is nil")

	// ErrBadParameter indicates an out-of-range option; the wrapped message
	// names the field.
	ErrBadParameter = errors.New("optimize: bad parameter")

	// ErrUnknownMethod indicates an unsupported driver name.
	ErrUnknownMethod = errors.New("optimize: unknown method")
)

// Method selects the search driver.
type Method int

const (
	// Local runs the greedy local search.
	Local Method = iota
	// Annealing runs simulated annealing.
	Annealing
	// Ant runs the ant colony.
	Ant
)

// String returns the instance-file name of the method.
func (m Method) String() string {
	switch m {
	case Local:
		return "local"
	case Annealing:
		return "sa"
	case Ant:
		return "ant"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod accepts "local", "sa" and "ant" (case-insensitive).
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local":
		return Local, nil
	case "sa":
		return Annealing, nil
	case "ant":
		return Ant, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Default parameter values.
const (
	DefaultIterations = 1230
	DefaultAlpha      = 2.2
	DefaultBeta       = 0.1
	DefaultBatchSize  = 5
	DefaultLambda     = 0.5
	DefaultChi        = 3
	DefaultPsi        = 1
	DefaultKappa      = 5
)

// Options configures Solve and the drivers.
//
// Iterations – L, the iteration cap for every driver (cycles for Ant).
// Alpha/Beta – energy weights for obtuse faces and Steiner points.
// BatchSize  – consecutive rejections before annealing restarts from the best mesh.
// Lambda     – pheromone evaporation rate in [0, 1].
// Chi/Psi    – exponents on pheromone and heuristic desirability.
// Kappa      – ants per cycle.
// Delaunay   – the input is already Delaunay; false runs Prepass first.
// Seed       – RNG seed; 0 selects a fixed default.
type Options struct {
	Method     Method
	Iterations int
	Alpha      float64
	Beta       float64
	BatchSize  int
	Lambda     float64
	Chi        float64
	Psi        float64
	Kappa      int
	Delaunay   bool
	Seed       int64
	Logger     *zap.Logger
}

// Option represents a functional option for configuring Solve.
type Option func(*Options)

// WithMethod selects the driver.
func WithMethod(m Method) Option {
	return func(o *Options) { o.Method = m }
}

// WithIterations sets the iteration cap L.
func WithIterations(n int) Option {
	return func(o *Options) { o.Iterations = n }
}

// WithEnergyWeights sets Alpha and Beta.
func WithEnergyWeights(alpha, beta float64) Option {
	return func(o *Options) {
		o.Alpha = alpha
		o.Beta = beta
	}
}

// WithBatchSize sets the annealing rejection batch.
func WithBatchSize(n int) Option {
	return func(o *Options) { o.BatchSize = n }
}

// WithPheromone sets the evaporation rate and both selection exponents.
func WithPheromone(lambda, chi, psi float64) Option {
	return func(o *Options) {
		o.Lambda = lambda
		o.Chi = chi
		o.Psi = psi
	}
}

// WithKappa sets the number of ants per cycle.
func WithKappa(n int) Option {
	return func(o *Options) { o.Kappa = n }
}

// WithDelaunay marks whether the input mesh is Delaunay; false enables Prepass.
func WithDelaunay(on bool) Option {
	return func(o *Options) { o.Delaunay = on }
}

// WithSeed sets the RNG seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithLogger routes driver logs to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// DefaultOptions returns the defaults of the reference configuration:
// local search, L=1230, alpha=2.2, beta=0.1, batch_size=5, lambda=0.5,
// chi=3, psi=1, kappa=5, Delaunay input, seed 0 and no logging.
func DefaultOptions() Options {
	return Options{
		Method:     Local,
		Iterations: DefaultIterations,
		Alpha:      DefaultAlpha,
		Beta:       DefaultBeta,
		BatchSize:  DefaultBatchSize,
		Lambda:     DefaultLambda,
		Chi:        DefaultChi,
		Psi:        DefaultPsi,
		Kappa:      DefaultKappa,
		Delaunay:   true,
	}
}

// logger returns the configured logger or a no-op one.
func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}

	return o.Logger
}

// Pheromones maps each ant-colony strategy to its trail strength.
type Pheromones map[steiner.Method]float64

// MarshalLogObject writes the trails in a fixed strategy order.
func (p Pheromones) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, m := range colonyMethods {
		enc.AddFloat64(m.String(), p[m])
	}

	return nil
}

// colonyMethods are the strategies the ant colony chooses between; centroid
// is only reached through fallback.
var colonyMethods = []steiner.Method{steiner.Circumcenter, steiner.Projection, steiner.Midpoint, steiner.Adjacent}

// Result summarizes a run.
type Result struct {
	Method       Method
	ObtuseBefore int
	ObtuseAfter  int
	// Steiner is the number of Steiner vertices in the final mesh.
	Steiner    int
	Iterations int
	Flips      int
	Prepass    int
	Energy     float64
	// Pheromones is the final trail table (ant colony only).
	Pheromones Pheromones
}

// Reduction returns the percentage of obtuse faces removed.
func (r Result) Reduction() float64 {
	if r.ObtuseBefore == 0 {
		return 0
	}

	return 100 * float64(r.ObtuseBefore-r.ObtuseAfter) / float64(r.ObtuseBefore)
}
