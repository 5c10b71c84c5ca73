// internal/railloc/parser.go
package railloc

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidLocation is returned when a string is not a canonical location.
var ErrInvalidLocation = errors.New("railloc: invalid location")

// locationRegex splits `world_x_y_z`; the world part is greedy so that
// underscores inside world names are kept.
var locationRegex = regexp.MustCompile(`^(.+)_(-?\d+)_(-?\d+)_(-?\d+)$`)

// Parse creates a Location by parsing its canonical string representation.
func Parse(raw string) (Location, error) {
	if raw == "" {
		return Location{}, fmt.Errorf("%w: empty string", ErrInvalidLocation)
	}

	matches := locationRegex.FindStringSubmatch(raw)
	if matches == nil {
		return Location{}, fmt.Errorf("%w: %q", ErrInvalidLocation, raw)
	}

	var coords [3]int
	for i := range coords {
		v, err := strconv.Atoi(matches[i+2])
		if err != nil {
			return Location{}, fmt.Errorf("%w: coordinate %q: %v", ErrInvalidLocation, matches[i+2], err)
		}
		coords[i] = v
	}

	return Location{World: matches[1], X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// FromSlice builds a location from a 3-element coordinate slice, as found in
// configuration files.
func FromSlice(world string, xyz []int) (Location, error) {
	if len(xyz) != 3 {
		return Location{}, fmt.Errorf("%w: expected 3 coordinates, got %d", ErrInvalidLocation, len(xyz))
	}
	return Location{World: world, X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
