// Package region models the domain of the mesh: an ordered, closed, simple
// boundary polygon with exact membership tests.
//
// Only faces inside the region take part in obtuse counting, flipping and
// Steiner insertion. The polygon is mutated in exactly one way: when a Steiner
// point is placed strictly inside a boundary edge, Update splices it between
// the edge's endpoints, so the boundary always matches the constrained edges of
// the triangulation.
package region
