package track

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/railpath/internal/railloc"
)

// ErrBadSegment is returned when two track points cannot be joined by a
// straight run of blocks.
var ErrBadSegment = errors.New("track: points are not on a straight line")

// rail is a single block of track and the directions it can be left by, in
// the order they were laid.
type rail struct {
	exits []Direction
}

func (r *rail) hasExit(d Direction) bool {
	return slices.Contains(r.exits, d)
}

func (r *rail) addExit(d Direction) {
	if !r.hasExit(d) {
		r.exits = append(r.exits, d)
	}
}

// leave picks the exit taken when entering the block from `entry` while
// heading `heading`: straight on if possible, otherwise the first laid exit
// that is not the way back.
func (r *rail) leave(entry, heading Direction) Direction {
	if r.hasExit(heading) {
		return heading
	}
	for _, d := range r.exits {
		if d != entry {
			return d
		}
	}
	return heading
}

// Grid is an in-memory track network for one world.
type Grid struct {
	world string
	rails map[railloc.Location]*rail
}

// NewGrid creates an empty network for the named world.
func NewGrid(world string) *Grid {
	return &Grid{world: world, rails: make(map[railloc.Location]*rail)}
}

// World returns the name of the world this grid belongs to.
func (g *Grid) World() string {
	return g.world
}

// Len returns the number of rail blocks.
func (g *Grid) Len() int {
	return len(g.rails)
}

// AddTrack lays track through the given points in order. Consecutive points
// must lie on one of the eight horizontal compass lines or be vertically
// aligned.
func (g *Grid) AddTrack(points ...railloc.Location) error {
	if len(points) == 1 {
		g.railAt(points[0])
		return nil
	}
	for i := 1; i < len(points); i++ {
		if err := g.addSegment(points[i-1], points[i]); err != nil {
			return fmt.Errorf("segment %d (%s -> %s): %w", i, points[i-1], points[i], err)
		}
	}
	return nil
}

func (g *Grid) addSegment(from, to railloc.Location) error {
	if from.World != g.world || to.World != g.world {
		return fmt.Errorf("%w: location outside world %q", ErrBadSegment, g.world)
	}
	dx, dy, dz := to.X-from.X, to.Y-from.Y, to.Z-from.Z
	steps := 0
	for _, v := range []int{dx, dy, dz} {
		if a := abs(v); a != 0 {
			if steps != 0 && a != steps {
				return ErrBadSegment
			}
			steps = a
		}
	}
	if steps == 0 {
		g.railAt(from)
		return nil
	}
	dir, err := FromDelta(sign(dx), sign(dy), sign(dz))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSegment, err)
	}

	cur := from
	for range steps {
		next := cur.Offset(sign(dx), sign(dy), sign(dz))
		g.railAt(cur).addExit(dir)
		g.railAt(next).addExit(dir.Opposite())
		cur = next
	}
	return nil
}

func (g *Grid) railAt(loc railloc.Location) *rail {
	r, ok := g.rails[loc]
	if !ok {
		r = &rail{}
		g.rails[loc] = r
	}
	return r
}

// RemoveRail deletes the block at loc. Neighbouring blocks keep their exits
// but walks stop at the gap.
func (g *Grid) RemoveRail(loc railloc.Location) {
	delete(g.rails, loc)
}

// IsRail implements Network.
func (g *Grid) IsRail(loc railloc.Location) bool {
	_, ok := g.rails[loc]
	return ok
}

// Exits returns the directions the block at loc can be left by.
func (g *Grid) Exits(loc railloc.Location) []Direction {
	r, ok := g.rails[loc]
	if !ok {
		return nil
	}
	return slices.Clone(r.exits)
}

// Junctions implements Network.
func (g *Grid) Junctions(loc railloc.Location) []Junction {
	r, ok := g.rails[loc]
	if !ok {
		return nil
	}
	junctions := make([]Junction, 0, len(r.exits))
	for _, d := range r.exits {
		junctions = append(junctions, Junction{Name: d.String(), Direction: d})
	}
	return junctions
}

// Walk implements Network.
func (g *Grid) Walk(start Position) Walker {
	return &gridWalker{grid: g, pos: start}
}

type gridWalker struct {
	grid     *Grid
	pos      Position
	distance int
}

func (w *gridWalker) Next() bool {
	cur, ok := w.grid.rails[w.pos.Location]
	if !ok || !cur.hasExit(w.pos.Direction) {
		return false
	}
	nextLoc := w.pos.Ahead()
	entry := w.pos.Direction.Opposite()
	next, ok := w.grid.rails[nextLoc]
	if !ok || !next.hasExit(entry) {
		return false
	}
	w.pos = Position{Location: nextLoc, Direction: next.leave(entry, w.pos.Direction)}
	w.distance++
	return true
}

func (w *gridWalker) Position() Position {
	return w.pos
}

func (w *gridWalker) Distance() int {
	return w.distance
}

func (w *gridWalker) Redirect(dir Direction) bool {
	r, ok := w.grid.rails[w.pos.Location]
	if !ok || !r.hasExit(dir) {
		return false
	}
	w.pos.Direction = dir
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
