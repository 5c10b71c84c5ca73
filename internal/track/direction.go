package track

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDirection is returned when a name or notch does not map to a direction.
var ErrInvalidDirection = errors.New("track: invalid direction")

// Direction is a travel direction between adjacent blocks. The numeric value
// is the notch byte used in the persisted graph format.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	Up
	Down

	// Invalid marks the absence of a direction.
	Invalid Direction = 0xFF
)

// Compass lists the eight cardinal and ordinal directions in notch order.
var Compass = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var directionNames = [...]string{
	North:     "north",
	NorthEast: "north_east",
	East:      "east",
	SouthEast: "south_east",
	South:     "south",
	SouthWest: "south_west",
	West:      "west",
	NorthWest: "north_west",
	Up:        "up",
	Down:      "down",
}

// deltas follow world axes: +x is east, +z is south, +y is up.
var deltas = [...][3]int{
	North:     {0, 0, -1},
	NorthEast: {1, 0, -1},
	East:      {1, 0, 0},
	SouthEast: {1, 0, 1},
	South:     {0, 0, 1},
	SouthWest: {-1, 0, 1},
	West:      {-1, 0, 0},
	NorthWest: {-1, 0, -1},
	Up:        {0, 1, 0},
	Down:      {0, -1, 0},
}

// Valid reports whether d is one of the defined directions.
func (d Direction) Valid() bool {
	return int(d) < len(directionNames)
}

func (d Direction) String() string {
	if !d.Valid() {
		return "invalid"
	}
	return directionNames[d]
}

// Notch returns the byte used to persist the direction.
func (d Direction) Notch() byte {
	return byte(d)
}

// Delta returns the block offset of one step in this direction.
func (d Direction) Delta() (dx, dy, dz int) {
	if !d.Valid() {
		return 0, 0, 0
	}
	v := deltas[d]
	return v[0], v[1], v[2]
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch {
	case d == Up:
		return Down
	case d == Down:
		return Up
	case d < Up:
		return (d + 4) % 8
	default:
		return Invalid
	}
}

// IsHorizontal reports whether d is one of the Compass directions.
func (d Direction) IsHorizontal() bool {
	return d < Up
}

// FromNotch decodes a persisted direction byte.
func FromNotch(b byte) (Direction, error) {
	d := Direction(b)
	if !d.Valid() {
		return Invalid, fmt.Errorf("%w: notch %d", ErrInvalidDirection, b)
	}
	return d, nil
}

// FromDelta maps a single-block step to its direction.
func FromDelta(dx, dy, dz int) (Direction, error) {
	for d, v := range deltas {
		if v == [3]int{dx, dy, dz} {
			return Direction(d), nil
		}
	}
	return Invalid, fmt.Errorf("%w: step %d,%d,%d", ErrInvalidDirection, dx, dy, dz)
}

// ParseDirection parses names like "north", "north_east", "northeast" or "NE".
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "-", "_")
	for d, n := range directionNames {
		if name == n || name == strings.ReplaceAll(n, "_", "") {
			return Direction(d), nil
		}
	}
	switch name {
	case "n":
		return North, nil
	case "ne":
		return NorthEast, nil
	case "e":
		return East, nil
	case "se":
		return SouthEast, nil
	case "s":
		return South, nil
	case "sw":
		return SouthWest, nil
	case "w":
		return West, nil
	case "nw":
		return NorthWest, nil
	}
	return Invalid, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
