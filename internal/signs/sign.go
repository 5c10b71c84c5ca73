package signs

import (
	"fmt"
	"slices"
	"sort"

	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/track"
)

// Sign is a typed behavior placed on a rail block.
type Sign struct {
	Location railloc.Location
	Type     string
	Args     []string
	// Facing restricts the sign to travel in one direction. track.Invalid
	// means the sign applies in every direction.
	Facing track.Direction
}

// Applies reports whether the sign reacts to travel in dir. Requests without
// a direction of travel see every sign.
func (s *Sign) Applies(dir track.Direction) bool {
	return s.Facing == track.Invalid || dir == track.Invalid || s.Facing == dir
}

// Arg returns the i-th argument, or "" when there is none.
func (s *Sign) Arg(i int) string {
	if i < 0 || i >= len(s.Args) {
		return ""
	}
	return s.Args[i]
}

func (s *Sign) String() string {
	return fmt.Sprintf("%s@%s%v", s.Type, s.Location, s.Args)
}

// Board holds every sign of a world by location, in declaration order.
type Board struct {
	world string
	signs map[railloc.Location][]*Sign
	count int
}

// NewBoard creates an empty board for world.
func NewBoard(world string) *Board {
	return &Board{world: world, signs: make(map[railloc.Location][]*Sign)}
}

// World returns the world name of the board.
func (b *Board) World() string { return b.world }

// Len returns the number of signs on the board.
func (b *Board) Len() int { return b.count }

// Add places a sign on the board.
func (b *Board) Add(s *Sign) error {
	if s.Location.World != b.world {
		return fmt.Errorf("sign %s is outside world %q", s, b.world)
	}
	if s.Type == "" {
		return fmt.Errorf("sign at %s has no type", s.Location)
	}
	b.signs[s.Location] = append(b.signs[s.Location], s)
	b.count++
	return nil
}

// At returns the signs at loc.
func (b *Board) At(loc railloc.Location) []*Sign { return b.signs[loc] }

// Remove drops every sign at loc and returns how many were removed.
func (b *Board) Remove(loc railloc.Location) int {
	n := len(b.signs[loc])
	delete(b.signs, loc)
	b.count -= n
	return n
}

// Locations returns every location carrying a sign, sorted.
func (b *Board) Locations() []railloc.Location {
	out := make([]railloc.Location, 0, len(b.signs))
	for loc := range b.signs {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Types returns the distinct sign types on the board, sorted.
func (b *Board) Types() []string {
	var out []string
	for _, list := range b.signs {
		for _, s := range list {
			if !slices.Contains(out, s.Type) {
				out = append(out, s.Type)
			}
		}
	}
	sort.Strings(out)
	return out
}
