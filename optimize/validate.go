package optimize

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/region"
)

// validateAll checks the mesh pointers and the options.
//
// Complexity: O(1).
func validateAll(tr *cdt.Triangulation, poly *region.Polygon, opts Options) error {
	if tr == nil || poly == nil {
		return ErrNilMesh
	}

	return validateOptions(opts)
}

// validateOptions checks every numeric option independently of the mesh.
// Fields unused by the selected driver are still checked so that a
// configuration is valid or invalid regardless of the method.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	switch opts.Method {
	case Local, Annealing, Ant:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMethod, opts.Method)
	}
	if opts.Iterations < 0 {
		return fmt.Errorf("%w: iterations %d < 0", ErrBadParameter, opts.Iterations)
	}
	if !finiteNonNegative(opts.Alpha) || !finiteNonNegative(opts.Beta) {
		return fmt.Errorf("%w: energy weights alpha=%g beta=%g", ErrBadParameter, opts.Alpha, opts.Beta)
	}
	if opts.BatchSize < 1 {
		return fmt.Errorf("%w: batch size %d < 1", ErrBadParameter, opts.BatchSize)
	}
	if !finiteNonNegative(opts.Lambda) || opts.Lambda > 1 {
		return fmt.Errorf("%w: lambda %g outside [0,1]", ErrBadParameter, opts.Lambda)
	}
	if !finiteNonNegative(opts.Chi) || !finiteNonNegative(opts.Psi) {
		return fmt.Errorf("%w: exponents chi=%g psi=%g", ErrBadParameter, opts.Chi, opts.Psi)
	}
	if opts.Kappa < 1 {
		return fmt.Errorf("%w: kappa %d < 1", ErrBadParameter, opts.Kappa)
	}

	return nil
}

// finiteNonNegative rejects NaN, ±Inf and negatives.
func finiteNonNegative(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x >= 0
}
