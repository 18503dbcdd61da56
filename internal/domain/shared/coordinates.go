package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinates is an immutable sector position on the galaxy map.
// Comparable, so it can be used with == and as a map key.
type Coordinates struct {
	X int64 `json:"x" yaml:"x"`
	Y int64 `json:"y" yaml:"y"`
}

func NewCoordinates(x, y int64) Coordinates {
	return Coordinates{X: x, Y: y}
}

// CoordinatesFromSector normalizes a raw [x, y] sector pair as reported by
// the game accounts.
func CoordinatesFromSector(sector [2]int64) Coordinates {
	return Coordinates{X: sector[0], Y: sector[1]}
}

// ParseCoordinates parses the "x,y" form produced by String.
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(s), "()"), ",")
	if len(parts) != 2 {
		return Coordinates{}, NewValidationError("coordinates", fmt.Sprintf("expected x,y but got %q", s))
	}
	x, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return Coordinates{}, NewValidationError("coordinates", fmt.Sprintf("invalid x in %q", s))
	}
	y, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return Coordinates{}, NewValidationError("coordinates", fmt.Sprintf("invalid y in %q", s))
	}
	return Coordinates{X: x, Y: y}, nil
}

func (c Coordinates) Equals(other Coordinates) bool {
	return c == other
}

// ToArray returns the sector pair expected by move instructions
func (c Coordinates) ToArray() [2]int64 {
	return [2]int64{c.X, c.Y}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
