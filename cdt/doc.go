// Package cdt implements the constrained Delaunay triangulation that every
// lvmesh optimizer mutates in place.
//
// Representation:
//
//	The mesh is an arena. Vertices live in a slice addressed by stable int ids,
//	faces live in a slice addressed by stable int ids, and adjacency is stored
//	as index arrays inside each face:
//
//	  Face.V[i] — the i-th vertex, counter-clockwise;
//	  Face.N[i] — the face across the edge opposite V[i] (-1 when none);
//	  Face.C[i] — whether that edge is constrained.
//
//	Faces are never deleted: splits and flips rewrite existing faces and append
//	new ones, so a face id stays valid for the lifetime of the mesh (its
//	triangle may change). Three bounding vertices (ids 0, 1, 2) enclose all
//	input; faces that touch them are virtual and excluded from every public
//	enumeration.
//
// Invariants:
//
//   - Every face is counter-clockwise and non-degenerate.
//   - Adjacency is symmetric: if Face(f).N[i] == g then g points back to f
//     across the same two vertices.
//   - A constrained edge is flagged on both of its faces and is never flipped;
//     inserting a point on it splits it into two constrained halves.
//   - Obtuse classification and all counts are derived on demand, never cached.
//
// Algorithms:
//
//   - InsertPoint: locate, split 1→3 (interior) or 2→4 (edge), then Lawson
//     legalization of the edges opposite the new vertex, skipping constraints.
//   - InsertConstraint: Sloan's edge recovery: flip every edge crossing the
//     segment until it appears, then restore the Delaunay property on the
//     new edges.
//
// Complexity:
//
//	Locate walks from the face of the latest insertion across separating
//	edges and falls back to a linear scan over faces (O(F)) when the walk
//	fails. FacesAround is a linear scan.
package cdt
