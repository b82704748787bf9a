// Package geom is the exact planar geometry kernel used by every other lvmesh
// package.
//
// All coordinates are arbitrary-precision rationals (math/big.Rat), so every
// predicate below is exact: orientation, incircle, obtuseness and angle
// comparisons never produce false positives or negatives from rounding.
//
// Contents:
//
//   - Point          — immutable rational point with exact equality and a map Key.
//   - Orientation    — sign of the cross product (CCW / CW / collinear).
//   - InCircle       — sign of the classic 3×3 incircle determinant.
//   - IsObtuse       — dot-product sign test, no trigonometry.
//   - IsConvexQuad   — strict convexity of a quadrilateral (flip legality).
//   - Centroid, Midpoint, Circumcenter, Projection — Steiner candidate constructions.
//   - ObtuseVertex, FindObtuseVertexAndAngle, LongestEdge — triangle classification.
//   - Angle          — exact angle value with Cmp, used to compare maximum angles.
//
// Preconditions:
//
//	Constructions over triangles (Circumcenter) and segments (Projection) require
//	non-degenerate input. Violations return ErrDegenerate; the kernel never guesses.
//
// Complexity:
//
//	Every function is O(1) rational operations; the bit length of results grows
//	with the bit length of inputs (no rounding).
package geom
