// internal/railloc/location.go
package railloc

import (
	"strconv"
	"strings"
)

// String serializes the Location into its canonical `world_x_y_z` form.
func (l Location) String() string {
	var sb strings.Builder
	sb.WriteString(l.World)
	for _, v := range [3]int{l.X, l.Y, l.Z} {
		sb.WriteRune('_')
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

// Coordinates returns the location without its world as `x,y,z`.
func (l Location) Coordinates() string {
	return strconv.Itoa(l.X) + "," + strconv.Itoa(l.Y) + "," + strconv.Itoa(l.Z)
}

// Less orders locations by world, then x, y, z.
func (l Location) Less(other Location) bool {
	if l.World != other.World {
		return l.World < other.World
	}
	if l.X != other.X {
		return l.X < other.X
	}
	if l.Y != other.Y {
		return l.Y < other.Y
	}
	return l.Z < other.Z
}
