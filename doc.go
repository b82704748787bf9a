// Package lvmesh reduces the number of obtuse triangles in a constrained
// planar triangulation by flipping edges and inserting Steiner points.
//
// 🚀 What is lvmesh?
//
//	An exact-arithmetic mesh optimizer that brings together:
//		• Geometry kernel: big.Rat points, orientation, in-circle, angle classes
//		• Region model: a simple polygon that grows as Steiner points split its edges
//		• Constrained Delaunay triangulation with flips and point insertion
//		• Five Steiner placement methods with trial evaluation on clones
//		• Three drivers: local search, simulated annealing, ant colony
//		• Instance/solution I/O (JSON, YAML) plus SVG and GeoJSON renderings
//
// ✨ Why lvmesh?
//
//   - Exact – every predicate runs on rationals, no epsilon tuning
//   - Deterministic – seeded random streams, same input gives the same mesh
//   - Observable – structured zap logging through every driver
//
// Subpackages:
//
//	geom/     — rational points and the orientation, in-circle and angle predicates
//	region/   — the evolving boundary polygon and point-in-region tests
//	cdt/      — arena-based constrained Delaunay triangulation
//	flip/     — the obtuse-reducing edge-flip pass
//	steiner/  — Steiner methods, trial evaluation, best-candidate choice
//	optimize/ — Prepass, local search, simulated annealing, ant colony, Solve
//	instance/ — instance parsing, validation, mesh building, solution output
//	render/   — SVG and GeoJSON views of the mesh
//	cmd/lvmesh — the command-line driver
//
// Quick example:
//
//	tr, poly, err := instance.Build(inst)
//	res, err := optimize.Solve(tr, poly, optimize.WithMethod(optimize.Annealing))
//	fmt.Println(res.ObtuseBefore, "->", res.ObtuseAfter)
package lvmesh
