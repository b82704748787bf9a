package optimize

import (
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/region"
	"github.com/katalvlaran/lvmesh/steiner"
)

// SimulatedAnnealing explores insertions with the Metropolis criterion.
//
// Iteration i runs at temperature T = 1 - i/L. A random obtuse face and a
// random starting strategy are drawn; steiner.TryFrom falls back round-robin
// to the next applicable strategy. Trial meshes are private clones, so the
// current and best states are plain pointers that are never mutated. After
// opts.BatchSize consecutive rejections the search resumes from the best
// state. The lowest-energy mesh seen is written back into tr and poly.
//
// Complexity: O(L · S) with S the cost of one trial insertion.
func SimulatedAnnealing(tr *cdt.Triangulation, poly *region.Polygon, opts Options) (Result, error) {
	if err := validateAll(tr, poly, opts); err != nil {
		return Result{}, err
	}
	var (
		log     = opts.logger().With(zap.Stringer("driver", Annealing))
		rng     = rngFromSeed(opts.Seed)
		res     = Result{Method: Annealing, ObtuseBefore: tr.CountObtuseTriangles(poly)}
		cur     = tr
		curPoly = poly
		curE    = meshEnergy(tr, poly, opts)
		best    = cur
		bestPly = curPoly
		bestE   = curE
		rejects = batch{size: opts.BatchSize}
		iter    int
	)

	for iter = 0; iter < opts.Iterations; iter++ {
		faces := cur.ObtuseFaces(curPoly)
		if len(faces) == 0 {
			break
		}
		temperature := 1 - float64(iter)/float64(opts.Iterations)
		f := faces[rng.Intn(len(faces))]
		start := steiner.Priority[rng.Intn(len(steiner.Priority))]

		o, err := steiner.TryFrom(cur, curPoly, f, start)
		if err != nil && !errors.Is(err, steiner.ErrNotApplicable) {
			return res, err
		}
		if err == nil {
			nextE := Energy(o.Obtuse, o.Mesh.SteinerCount(), opts.Alpha, opts.Beta)
			if ShouldAcceptTransition(nextE-curE, temperature, rng) {
				cur, curPoly, curE = o.Mesh, o.Region, nextE
				rejects.accept()
				if curE < bestE {
					best, bestPly, bestE = cur, curPoly, curE
				}
				log.Debug("accepted",
					zap.Int("iteration", iter),
					zap.Stringer("strategy", o.Candidate.Method),
					zap.Float64("temperature", temperature),
					zap.Float64("energy", curE),
				)
				continue
			}
		}

		// Not applicable and Metropolis-rejected draws count alike.
		if rejects.reject() {
			cur, curPoly, curE = best, bestPly, bestE
			log.Debug("restart from best", zap.Int("iteration", iter), zap.Float64("energy", bestE))
		}
	}

	if best != tr {
		tr.Adopt(best)
		poly.Adopt(bestPly)
	}
	res.Iterations = iter
	res.ObtuseAfter = tr.CountObtuseTriangles(poly)
	res.Steiner = tr.SteinerCount()
	res.Energy = bestE
	log.Info("annealing finished",
		zap.Int("iterations", res.Iterations),
		zap.Int("obtuse", res.ObtuseAfter),
		zap.Int("steiner", res.Steiner),
		zap.Float64("energy", res.Energy),
	)

	return res, nil
}

// batch counts consecutive rejections.
type batch struct {
	size    int
	rejects int
}

// reject records a rejection and reports whether a restart is due, resetting
// the count when it is.
func (b *batch) reject() bool {
	b.rejects++
	if b.rejects < b.size {
		return false
	}
	b.rejects = 0

	return true
}

// accept clears the count.
func (b *batch) accept() { b.rejects = 0 }
