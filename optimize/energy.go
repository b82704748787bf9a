package optimize

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/region"
)

// Energy returns alpha·obtuse + beta·steiner.
func Energy(obtuse, steinerPoints int, alpha, beta float64) float64 {
	return alpha*float64(obtuse) + beta*float64(steinerPoints)
}

// meshEnergy recomputes the energy of a mesh from its current counts.
func meshEnergy(tr *cdt.Triangulation, poly *region.Polygon, opts Options) float64 {
	return Energy(tr.CountObtuseTriangles(poly), tr.SteinerCount(), opts.Alpha, opts.Beta)
}

// ShouldAcceptTransition implements the Metropolis rule: always accept when
// deltaE <= 0, otherwise accept with probability exp(-deltaE/T). A
// non-positive temperature rejects every uphill move.
func ShouldAcceptTransition(deltaE, temperature float64, rng *rand.Rand) bool {
	if deltaE <= 0 {
		return true
	}
	if temperature <= 0 {
		return false
	}

	return rng.Float64() < math.Exp(-deltaE/temperature)
}
