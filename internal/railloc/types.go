// internal/railloc/types.go
package railloc

// Location identifies one block of track in a named world.
type Location struct {
	World   string
	X, Y, Z int
}

// New creates a location in the given world.
func New(world string, x, y, z int) Location {
	return Location{World: world, X: x, Y: y, Z: z}
}

// Offset returns the location translated by the given deltas in the same world.
func (l Location) Offset(dx, dy, dz int) Location {
	return Location{World: l.World, X: l.X + dx, Y: l.Y + dy, Z: l.Z + dz}
}

// IsZero reports whether the location is the zero value.
func (l Location) IsZero() bool {
	return l == Location{}
}
