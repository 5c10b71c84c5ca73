package track

import (
	"testing"

	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(x, z int) railloc.Location {
	return railloc.New("w", x, 64, z)
}

func TestGrid_AddTrack(t *testing.T) {
	g := NewGrid("w")
	require.NoError(t, g.AddTrack(loc(0, 0), loc(5, 0), loc(5, 5)))

	assert.Equal(t, 11, g.Len())
	assert.Equal(t, []Direction{East}, g.Exits(loc(0, 0)))
	assert.Equal(t, []Direction{West, South}, g.Exits(loc(5, 0)))
	assert.ElementsMatch(t, []Direction{North}, g.Exits(loc(5, 5)))
	assert.True(t, g.IsRail(loc(3, 0)))
	assert.False(t, g.IsRail(loc(3, 1)))
}

func TestGrid_AddTrack_Errors(t *testing.T) {
	g := NewGrid("w")
	assert.ErrorIs(t, g.AddTrack(loc(0, 0), loc(2, 1)), ErrBadSegment)
	assert.ErrorIs(t, g.AddTrack(loc(0, 0), railloc.New("other", 1, 64, 0)), ErrBadSegment)
	assert.ErrorIs(t, g.AddTrack(loc(0, 0), railloc.New("w", 1, 65, 0)), ErrBadSegment)
}

func TestGridWalker_FollowsCorner(t *testing.T) {
	g := NewGrid("w")
	require.NoError(t, g.AddTrack(loc(0, 0), loc(3, 0), loc(3, 2)))

	w := g.Walk(Position{Location: loc(0, 0), Direction: East})
	assert.Equal(t, 0, w.Distance())

	var visited []railloc.Location
	for w.Next() {
		visited = append(visited, w.Position().Location)
	}
	assert.Equal(t, []railloc.Location{loc(1, 0), loc(2, 0), loc(3, 0), loc(3, 1), loc(3, 2)}, visited)
	assert.Equal(t, 5, w.Distance())
}

func TestGridWalker_NoExitInDirection(t *testing.T) {
	g := NewGrid("w")
	require.NoError(t, g.AddTrack(loc(0, 0), loc(3, 0)))

	w := g.Walk(Position{Location: loc(0, 0), Direction: North})
	assert.False(t, w.Next())

	w = g.Walk(Position{Location: loc(9, 9), Direction: East})
	assert.False(t, w.Next())
}

func TestGridWalker_JunctionPrefersStraightAndRedirects(t *testing.T) {
	g := NewGrid("w")
	require.NoError(t, g.AddTrack(loc(0, 0), loc(4, 0)))
	require.NoError(t, g.AddTrack(loc(2, 0), loc(2, 3)))

	w := g.Walk(Position{Location: loc(0, 0), Direction: East})
	require.True(t, w.Next())
	require.True(t, w.Next())
	assert.Equal(t, Position{Location: loc(2, 0), Direction: East}, w.Position())

	assert.False(t, w.Redirect(North))
	require.True(t, w.Redirect(South))
	require.True(t, w.Next())
	assert.Equal(t, loc(2, 1), w.Position().Location)

	junctions := g.Junctions(loc(2, 0))
	assert.Len(t, junctions, 3)
}

func TestGrid_RemoveRailStopsWalk(t *testing.T) {
	g := NewGrid("w")
	require.NoError(t, g.AddTrack(loc(0, 0), loc(4, 0)))
	g.RemoveRail(loc(2, 0))

	w := g.Walk(Position{Location: loc(0, 0), Direction: East})
	assert.True(t, w.Next())
	assert.False(t, w.Next())
	assert.Equal(t, 1, w.Distance())
}
