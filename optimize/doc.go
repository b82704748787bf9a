// Package optimize drives obtuse-triangle reduction over a constrained mesh.
//
// Drivers:
//
//   - LocalSearch: greedy. Each iteration applies, to the first obtuse face
//     that admits one, the strategy that strictly lowers the obtuse count the
//     most (ties by steiner.Priority). Stops at zero obtuse faces or when no
//     face improves.
//   - SimulatedAnnealing: random face, random starting strategy with
//     round-robin fallback, Metropolis acceptance on the energy
//     E = Alpha·obtuse + Beta·steiner at temperature T = 1 − i/L. After
//     BatchSize consecutive rejections the search resumes from the best mesh
//     seen; the best mesh is written back at the end.
//   - AntColony: Kappa ants per cycle each work on a private copy, choosing a
//     strategy per obtuse face with probability ∝ taf^Chi · hta^Psi and
//     keeping only energy-lowering choices. Conflict-free ants are committed
//     greedily by energy and the pheromone table decays by (1 − Lambda) before
//     being reinforced by the committed ants.
//   - Prepass: a single sweep of projection and midpoint insertions used when
//     the input was not produced as a Delaunay triangulation.
//
// Solve runs the optional Prepass, the flip pass and the selected driver, and
// reports the counts in a Result.
//
// Determinism:
//
//	All randomness flows from Options.Seed (0 ⇒ a fixed default seed); per-ant
//	streams are derived with a SplitMix64 mix. Same input and seed ⇒ same mesh.
//
// Concurrency:
//
//	Single goroutine. Ants run one after another on clones; only the commit
//	step and the flip pass write to the caller's mesh.
//
// Logging:
//
//	Drivers log progress at Debug and a summary at Info through
//	Options.Logger (nil ⇒ no-op logger).
package optimize
