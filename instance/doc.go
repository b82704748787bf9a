// Package instance reads problem instances and writes solutions.
//
// Instances are JSON (github.com/goccy/go-json) or YAML (gopkg.in/yaml.v3)
// documents with the fields
//
//	instance_uid, num_points, points_x, points_y, region_boundary,
//	num_constraints, additional_constraints, method, parameters, delaunay
//
// Coordinates may be integers, decimals or "p/q" strings; they are parsed
// exactly into big.Rat. Parameters use the names L, alpha, beta, batch_size,
// lambda, xi, psi and kappa; absent ones keep optimize.DefaultOptions.
//
// Validate rejects contract violations (too few points, length mismatches,
// out-of-range or degenerate indices, unknown methods) before any mesh is
// built. Build constrains every boundary edge and every additional
// constraint.
//
// Solutions list the Steiner points as exact rational strings and the edges
// of the final mesh inside the region, indexing input points first and then
// Steiner points in insertion order.
package instance
