package optimize

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/region"
	"github.com/katalvlaran/lvmesh/steiner"
)

// Choice is one insertion kept by an ant. Face names the target by its vertex
// ids, which stay valid across clones of the authoritative mesh.
type Choice struct {
	Face   [3]int
	Method steiner.Method
	Point  geom.Point
}

// AntState is one agent of a colony cycle: its kept choices, the counts and
// energy of its private mesh, and the authoritative faces its choices touch.
type AntState struct {
	ID       int
	Choices  []Choice
	Obtuse   int
	Steiner  int
	Energy   float64
	Affected map[int]struct{}

	mesh *cdt.Triangulation
	ring *region.Polygon
}

// Heuristics returns the desirability hta of each colony strategy for face f.
// With ρ = R/h (circumradius over the height on the longest edge):
//
//	projection   = max(0, (ρ-1)/ρ)
//	circumcenter = ρ/(2+ρ)
//	midpoint     = max(0, (3-2ρ)/3)
//	adjacent     = 1 when f has an obtuse in-region neighbor, else 0
func Heuristics(tr *cdt.Triangulation, poly *region.Polygon, f int) Pheromones {
	rho := radiusToHeight(tr.Triangle(f))
	hta := Pheromones{
		steiner.Projection:   0,
		steiner.Circumcenter: 0,
		steiner.Midpoint:     0,
		steiner.Adjacent:     0,
	}
	if rho > 0 && !math.IsInf(rho, 0) {
		hta[steiner.Projection] = math.Max(0, (rho-1)/rho)
		hta[steiner.Circumcenter] = rho / (2 + rho)
		hta[steiner.Midpoint] = math.Max(0, (3-2*rho)/3)
	}
	if tr.HasObtuseNeighbors(f, poly) {
		hta[steiner.Adjacent] = 1
	}

	return hta
}

// radiusToHeight computes R/h = abc·L / (2·cross²) in float64; +Inf for a
// degenerate triangle.
func radiusToHeight(p, q, r geom.Point) float64 {
	px, py := p.Float64()
	qx, qy := q.Float64()
	rx, ry := r.Float64()
	a := math.Hypot(qx-rx, qy-ry)
	b := math.Hypot(px-rx, py-ry)
	c := math.Hypot(px-qx, py-qy)
	cross := (qx-px)*(ry-py) - (qy-py)*(rx-px)
	if cross == 0 {
		return math.Inf(1)
	}
	longest := math.Max(a, math.Max(b, c))

	return a * b * c * longest / (2 * cross * cross)
}

// SelectSteinerMethod draws a colony strategy with probability proportional to
// taf[m]^chi · hta[m]^psi. When every weight is zero the draw is uniform.
func SelectSteinerMethod(taf, hta Pheromones, chi, psi float64, rng *rand.Rand) steiner.Method {
	weights := make([]float64, len(colonyMethods))
	var total float64
	for i, m := range colonyMethods {
		w := math.Pow(taf[m], chi) * math.Pow(hta[m], psi)
		if math.IsNaN(w) || w < 0 {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total <= 0 || math.IsInf(total, 0) {
		return colonyMethods[rng.Intn(len(colonyMethods))]
	}
	x := rng.Float64() * total
	for i, w := range weights {
		if x < w {
			return colonyMethods[i]
		}
		x -= w
	}

	return colonyMethods[len(colonyMethods)-1]
}

// HaveConflict reports whether two ants touch a common authoritative face.
func HaveConflict(a, b *AntState) bool {
	small, large := a.Affected, b.Affected
	if len(small) > len(large) {
		small, large = large, small
	}
	for f := range small {
		if _, ok := large[f]; ok {
			return true
		}
	}

	return false
}

// SaveTheBest sorts ants by energy (then id) and greedily accepts those that
// made at least one choice and do not conflict with an accepted ant.
//
// Complexity: O(k log k + k²·a) for k ants touching a faces each.
func SaveTheBest(ants []*AntState) []*AntState {
	sorted := make([]*AntState, 0, len(ants))
	for _, a := range ants {
		if len(a.Choices) > 0 {
			sorted = append(sorted, a)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Energy != sorted[j].Energy {
			return sorted[i].Energy < sorted[j].Energy
		}
		return sorted[i].ID < sorted[j].ID
	})

	var accepted []*AntState
	for _, a := range sorted {
		ok := true
		for _, b := range accepted {
			if HaveConflict(a, b) {
				ok = false
				break
			}
		}
		if ok {
			accepted = append(accepted, a)
		}
	}

	return accepted
}

// UpdatePheromones returns the next trail table:
// taf'[m] = (1-lambda)·taf[m] + Σ 1/(1+E_ant) over the accepted ants' choices
// that used m.
func UpdatePheromones(taf Pheromones, accepted []*AntState, lambda float64) Pheromones {
	next := make(Pheromones, len(colonyMethods))
	for _, m := range colonyMethods {
		next[m] = (1 - lambda) * taf[m]
	}
	for _, a := range accepted {
		deposit := 1 / (1 + a.Energy)
		for _, c := range a.Choices {
			if _, ok := next[c.Method]; ok {
				next[c.Method] += deposit
			}
		}
	}

	return next
}

// runAnt builds one ant on a private copy of tr. It visits the obtuse faces of
// the authoritative mesh in a random order and keeps a strategy only when it
// lowers the energy of its copy.
func runAnt(id int, tr *cdt.Triangulation, poly *region.Polygon, taf Pheromones, opts Options, rng *rand.Rand) (*AntState, error) {
	ant := &AntState{
		ID:       id,
		Affected: make(map[int]struct{}),
		mesh:     tr.Clone(),
		ring:     poly.Clone(),
	}
	energy := meshEnergy(ant.mesh, ant.ring, opts)
	targets := tr.ObtuseFaces(poly)
	shuffleInts(targets, rng)

	for _, fa := range targets {
		verts := tr.Face(fa).V
		f, ok := ant.mesh.FindFace(verts[0], verts[1], verts[2])
		if !ok || !ant.mesh.IsObtuseFace(f) {
			continue
		}
		m := SelectSteinerMethod(taf, Heuristics(ant.mesh, ant.ring, f), opts.Chi, opts.Psi, rng)
		o, err := steiner.TryFrom(ant.mesh, ant.ring, f, m)
		if errors.Is(err, steiner.ErrNotApplicable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		next := Energy(o.Obtuse, o.Mesh.SteinerCount(), opts.Alpha, opts.Beta)
		if next >= energy {
			continue
		}
		ant.mesh, ant.ring, energy = o.Mesh, o.Region, next
		ant.Choices = append(ant.Choices, Choice{Face: verts, Method: o.Candidate.Method, Point: o.Candidate.Point})
		ant.Affected[fa] = struct{}{}
		for _, g := range tr.Neighbors(fa) {
			if g != cdt.NoFace && !tr.IsVirtual(g) {
				ant.Affected[g] = struct{}{}
			}
		}
	}
	ant.Obtuse = ant.mesh.CountObtuseTriangles(ant.ring)
	ant.Steiner = ant.mesh.SteinerCount()
	ant.Energy = energy

	return ant, nil
}

// commit adopts the best accepted ant's mesh and replays the other accepted
// ants' choices on it, keeping each replay only when it lowers the energy.
func commit(tr *cdt.Triangulation, poly *region.Polygon, accepted []*AntState, opts Options) error {
	if len(accepted) == 0 {
		return nil
	}
	tr.Adopt(accepted[0].mesh)
	poly.Adopt(accepted[0].ring)

	for _, a := range accepted[1:] {
		mesh, ring := tr.Clone(), poly.Clone()
		for _, c := range a.Choices {
			_, err := steiner.Apply(mesh, ring, steiner.Candidate{Method: c.Method, Face: cdt.NoFace, Point: c.Point})
			if errors.Is(err, steiner.ErrNotApplicable) {
				continue
			}
			if err != nil {
				return err
			}
		}
		if meshEnergy(mesh, ring, opts) < meshEnergy(tr, poly, opts) {
			tr.Adopt(mesh)
			poly.Adopt(ring)
		}
	}

	return nil
}

// AntColony runs up to opts.Iterations cycles of opts.Kappa ants, committing
// conflict-free ants after each cycle and updating the pheromone table.
// Trails start at 1 for every colony strategy.
//
// Complexity: O(L · κ · k · S) for k obtuse faces per cycle and S the cost of
// one trial insertion.
func AntColony(tr *cdt.Triangulation, poly *region.Polygon, opts Options) (Result, error) {
	if err := validateAll(tr, poly, opts); err != nil {
		return Result{}, err
	}
	var (
		log   = opts.logger().With(zap.Stringer("driver", Ant))
		base  = rngFromSeed(opts.Seed)
		res   = Result{Method: Ant, ObtuseBefore: tr.CountObtuseTriangles(poly)}
		taf   = make(Pheromones, len(colonyMethods))
		cycle int
	)
	for _, m := range colonyMethods {
		taf[m] = 1
	}

	for cycle = 0; cycle < opts.Iterations; cycle++ {
		if tr.CountObtuseTriangles(poly) == 0 {
			break
		}
		ants := make([]*AntState, opts.Kappa)
		for k := range ants {
			a, err := runAnt(k, tr, poly, taf, opts, deriveRNG(base, uint64(cycle*opts.Kappa+k)))
			if err != nil {
				return res, err
			}
			ants[k] = a
		}
		accepted := SaveTheBest(ants)
		if err := commit(tr, poly, accepted, opts); err != nil {
			return res, err
		}
		taf = UpdatePheromones(taf, accepted, opts.Lambda)
		log.Debug("cycle",
			zap.Int("cycle", cycle),
			zap.Int("accepted", len(accepted)),
			zap.Int("obtuse", tr.CountObtuseTriangles(poly)),
			zap.Object("pheromones", taf),
		)
	}

	res.Iterations = cycle
	res.ObtuseAfter = tr.CountObtuseTriangles(poly)
	res.Steiner = tr.SteinerCount()
	res.Energy = Energy(res.ObtuseAfter, res.Steiner, opts.Alpha, opts.Beta)
	res.Pheromones = taf
	log.Info("ant colony finished",
		zap.Int("cycles", res.Iterations),
		zap.Int("obtuse", res.ObtuseAfter),
		zap.Int("steiner", res.Steiner),
	)

	return res, nil
}
