package steiner

import (
	"errors"
	"fmt"
	"strings"
)

// Method selects a Steiner point strategy.
type Method int

const (
	// Circumcenter inserts the face's circumcenter.
	Circumcenter Method = iota
	// Projection inserts the foot of the obtuse vertex on the opposite edge.
	Projection
	// Midpoint inserts the midpoint of the longest edge.
	Midpoint
	// Adjacent inserts a point shared with an obtuse neighbor.
	Adjacent
	// Centroid inserts the face's centroid.
	Centroid
)

// Priority lists all methods in tie-break order.
var Priority = []Method{Circumcenter, Projection, Midpoint, Adjacent, Centroid}

// ErrUnknownMethod is returned by ParseMethod for unrecognized names.
var ErrUnknownMethod = errors.New("steiner: unknown method")

// String returns the lower-case method name.
func (m Method) String() string {
	switch m {
	case Circumcenter:
		return "circumcenter"
	case Projection:
		return "projection"
	case Midpoint:
		return "midpoint"
	case Adjacent:
		return "adjacent"
	case Centroid:
		return "centroid"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod maps a method name (case-insensitive) back to its Method.
func ParseMethod(s string) (Method, error) {
	for _, m := range Priority {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// rank returns the position of m in Priority.
func rank(m Method) int {
	for i, p := range Priority {
		if p == m {
			return i
		}
	}

	return 0
}
