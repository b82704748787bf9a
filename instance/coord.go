package instance

import (
	"bytes"
	"fmt"
	"math/big"

	"gopkg.in/yaml.v3"
)

// Coord is an exact coordinate decoded from a JSON or YAML scalar.
type Coord struct {
	big.Rat
}

// parse accepts integers, decimals, exponents and "p/q" fractions.
func (c *Coord) parse(s string) error {
	if _, ok := c.Rat.SetString(s); !ok {
		return fmt.Errorf("%w: %q", ErrCoordinate, s)
	}

	return nil
}

// UnmarshalJSON accepts both numbers and strings.
func (c *Coord) UnmarshalJSON(b []byte) error {
	return c.parse(string(bytes.Trim(b, `"`)))
}

// MarshalJSON writes the exact value as a string.
func (c *Coord) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.Rat.RatString() + `"`), nil
}

// UnmarshalYAML reads the scalar text.
func (c *Coord) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d is not a scalar", ErrCoordinate, n.Line)
	}

	return c.parse(n.Value)
}
