// Package steiner proposes and applies Steiner points for obtuse faces.
//
// Strategies (Method, in tie-break priority order):
//
//   - Circumcenter: center of the face's circumcircle. Rejected when it falls
//     outside the region or outside the face and its in-region neighbors.
//   - Projection: foot of the obtuse vertex on the opposite edge. Valid only
//     strictly inside that edge.
//   - Midpoint: midpoint of the longest edge. Always valid.
//   - Adjacent: needs an obtuse neighbor. Uses the centroid of the convex
//     quadrilateral formed with the neighbor across the longest shared edge;
//     otherwise tries nearby points by trial insertion.
//   - Centroid: centroid of the face. Always valid for a face inside the
//     region, so it ends every fallback chain.
//
// Flow:
//
//	Propose  → Candidate (point + edge context) or ErrNotApplicable
//	Apply    → insert, splice the region boundary, run flip.Run
//	Evaluate → Apply on clones, report the resulting obtuse count
//	Best     → Evaluate every applicable method, lowest count wins,
//	           ties resolved by priority
//
// Candidates never coincide with existing vertices: such points are reported
// as not applicable, so every successful Apply adds exactly one vertex.
package steiner
