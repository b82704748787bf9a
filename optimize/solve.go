package optimize

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/flip"
	"github.com/katalvlaran/lvmesh/region"
)

// Solve applies opts over DefaultOptions, runs the Prepass when the input is
// not Delaunay, then the flip pass, and then the selected driver. tr and poly are
// updated in place.
//
// Errors: ErrNilMesh, ErrBadParameter, ErrUnknownMethod, and wrapped
// failures of the flip pass.
func Solve(tr *cdt.Triangulation, poly *region.Polygon, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return SolveWithOptions(tr, poly, o)
}

// SolveWithOptions is Solve with a fully built Options value.
func SolveWithOptions(tr *cdt.Triangulation, poly *region.Polygon, o Options) (Result, error) {
	if err := validateAll(tr, poly, o); err != nil {
		return Result{}, err
	}
	log := o.logger()
	before := tr.CountObtuseTriangles(poly)

	var (
		inserted int
		err      error
	)
	if !o.Delaunay {
		if inserted, err = Prepass(tr, poly, o); err != nil {
			return Result{}, err
		}
	}

	flips, err := flip.Run(tr, poly)
	if err != nil {
		return Result{}, fmt.Errorf("optimize: initial flips: %w", err)
	}
	log.Info("initial flips", zap.Int("flips", flips), zap.Int("obtuse", tr.CountObtuseTriangles(poly)))

	var res Result
	switch o.Method {
	case Local:
		res, err = LocalSearch(tr, poly, o)
	case Annealing:
		res, err = SimulatedAnnealing(tr, poly, o)
	case Ant:
		res, err = AntColony(tr, poly, o)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownMethod, o.Method)
	}
	if err != nil {
		return res, err
	}
	res.ObtuseBefore = before
	res.Flips = flips
	res.Prepass = inserted

	return res, nil
}
