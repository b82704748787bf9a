package optimize

import (
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/region"
	"github.com/katalvlaran/lvmesh/steiner"
)

// LocalSearch greedily inserts Steiner points while the obtuse count drops.
//
// Each iteration walks the obtuse faces in ascending face id and applies, to
// the first face where it helps, the strategy returned by steiner.Best. The
// loop ends after opts.Iterations iterations, at zero obtuse faces, or when a
// whole scan finds no strictly improving insertion. tr and poly are updated in
// place.
//
// Complexity: O(L · k · S) where k is the number of obtuse faces scanned and S
// the cost of five trial insertions.
func LocalSearch(tr *cdt.Triangulation, poly *region.Polygon, opts Options) (Result, error) {
	if err := validateAll(tr, poly, opts); err != nil {
		return Result{}, err
	}
	var (
		log   = opts.logger().With(zap.Stringer("driver", Local))
		count = tr.CountObtuseTriangles(poly)
		res   = Result{Method: Local, ObtuseBefore: count}
		iter  int
	)

	for iter = 0; iter < opts.Iterations && count > 0; iter++ {
		improved := false
		for _, f := range tr.ObtuseFaces(poly) {
			o, err := steiner.Best(tr, poly, f)
			if errors.Is(err, steiner.ErrNotApplicable) {
				continue
			}
			if err != nil {
				return res, err
			}
			if o.Obtuse >= count {
				continue
			}
			tr.Adopt(o.Mesh)
			poly.Adopt(o.Region)
			log.Debug("insertion",
				zap.Int("iteration", iter),
				zap.Int("face", f),
				zap.Stringer("strategy", o.Candidate.Method),
				zap.Int("obtuse", o.Obtuse),
			)
			count = o.Obtuse
			improved = true
			break
		}
		if !improved {
			break
		}
	}

	res.Iterations = iter
	res.ObtuseAfter = count
	res.Steiner = tr.SteinerCount()
	res.Energy = Energy(count, res.Steiner, opts.Alpha, opts.Beta)
	log.Info("local search finished",
		zap.Int("iterations", res.Iterations),
		zap.Int("obtuse", res.ObtuseAfter),
		zap.Int("steiner", res.Steiner),
	)

	return res, nil
}
