package cdt

import (
	"errors"

	"github.com/katalvlaran/lvmesh/geom"
)

// Sentinel errors for triangulation operations.
var (
	// ErrConstrainedEdge indicates a flip was requested on a constrained edge.
	ErrConstrainedEdge = errors.New("cdt: edge is constrained")

	// ErrNoNeighbor indicates a flip was requested on an edge with a single face.
	ErrNoNeighbor = errors.New("cdt: edge has no opposite face")

	// ErrNotConvex indicates the two faces of an edge do not form a strictly
	// convex quadrilateral, so the edge cannot be flipped.
	ErrNotConvex = errors.New("cdt: quadrilateral is not convex")

	// ErrOutsideDomain indicates a point outside the bounding triangle.
	ErrOutsideDomain = errors.New("cdt: point outside the triangulation domain")

	// ErrVertexIndex indicates a vertex index out of range.
	ErrVertexIndex = errors.New("cdt: vertex index out of range")

	// ErrFaceIndex indicates a face index out of range.
	ErrFaceIndex = errors.New("cdt: face index out of range")

	// ErrConstraintCrossing indicates a new constraint crosses an existing one.
	ErrConstraintCrossing = errors.New("cdt: constraints intersect")

	// ErrDegenerateConstraint indicates a constraint between identical points.
	ErrDegenerateConstraint = errors.New("cdt: constraint endpoints coincide")

	// ErrEmptyInput indicates Build was called with fewer than three points.
	ErrEmptyInput = errors.New("cdt: need at least three points")
)

// NoFace marks a missing neighbor.
const NoFace = -1

// boundingVertices is the number of artificial vertices enclosing the input.
const boundingVertices = 3

// Face is one triangle of the arena.
type Face struct {
	// V holds vertex ids in counter-clockwise order.
	V [3]int

	// N[i] is the face across the edge opposite V[i], or NoFace.
	N [3]int

	// C[i] reports whether the edge opposite V[i] is constrained.
	C [3]bool
}

// Location is the result of Locate.
type Location struct {
	// Kind classifies the point against Face.
	Kind geom.PointLocation

	// Face is the face containing the point (or one of the faces, for points
	// on edges and vertices).
	Face int

	// Index is the edge (opposite vertex index) for OnEdge, the vertex index
	// within the face for OnVertex, and -1 otherwise.
	Index int
}

// Edge is an undirected mesh edge between two vertex ids.
type Edge struct {
	U, V int
}

// ccw and cw rotate an index inside a face.
func ccw(i int) int { return (i + 1) % 3 }
func cw(i int) int  { return (i + 2) % 3 }

// edgeKey normalizes a vertex pair for use as a map key.
func edgeKey(u, v int) Edge {
	if u > v {
		u, v = v, u
	}

	return Edge{U: u, V: v}
}
