// Package flip improves a constrained triangulation by edge flips alone.
//
// What:
//
//   - Run scans every non-constrained edge shared by two faces inside the
//     region and flips it when the surrounding quadrilateral is strictly
//     convex and Worth reports a strict improvement.
//   - RunAround does the same from a worklist seeded with the edges around
//     one vertex, re-queuing the outer edges of every flipped quadrilateral.
//   - Worth compares the pair of triangles before and after a flip by the
//     key (obtuse-triangle count, maximum angle), lexicographically.
//
// Why:
//
//   - Flips cost nothing in Steiner points. Solve runs Run once before the
//     search starts, and every insertion is followed by RunAround on the new
//     vertex.
//
// Termination:
//
//	A flip either lowers the global obtuse count or keeps it and replaces two
//	per-triangle maximum angles by two strictly smaller ones. The descending
//	vector of per-triangle maximum angles therefore decreases
//	lexicographically, and a finite mesh admits finitely many diagonals, so
//	the pass loop stops.
//
// Complexity:
//
//   - One pass is O(F·n) (face membership tests against an n-gon region);
//     the number of passes is bounded by the number of possible flips.
//   - RunAround touches only the faces a flip rewrote, O(deg + flips) tests.
package flip
