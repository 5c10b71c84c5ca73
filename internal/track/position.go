package track

import "github.com/specialistvlad/railpath/internal/railloc"

// Position is a rail block together with the direction of travel on it.
type Position struct {
	Location  railloc.Location
	Direction Direction
}

// Ahead returns the block one step ahead of the position.
func (p Position) Ahead() railloc.Location {
	dx, dy, dz := p.Direction.Delta()
	return p.Location.Offset(dx, dy, dz)
}

func (p Position) String() string {
	return p.Location.String() + "@" + p.Direction.String()
}

// Junction is a named exit of a rail block that a switcher can select.
type Junction struct {
	Name      string
	Direction Direction
}

// Walker enumerates successive rail positions from a start position.
//
// Before the first call to Next, Position returns the start position and
// Distance is zero. Each successful Next moves exactly one block. A walk over
// a closed loop never ends on its own.
type Walker interface {
	// Next advances to the following block. It returns false when there is no
	// further track in the direction of travel.
	Next() bool
	// Position returns the current block and the direction the walker will
	// leave it by.
	Position() Position
	// Distance returns the number of blocks travelled since the start.
	Distance() int
	// Redirect changes the direction the walker leaves the current block by.
	// It returns false if the block has no exit in that direction.
	Redirect(dir Direction) bool
}

// Network is the track of a single world.
type Network interface {
	// Walk starts a walk at start.Location heading start.Direction.
	Walk(start Position) Walker
	// IsRail reports whether the location holds track.
	IsRail(loc railloc.Location) bool
	// Junctions lists the exits of the rail block at loc.
	Junctions(loc railloc.Location) []Junction
}
