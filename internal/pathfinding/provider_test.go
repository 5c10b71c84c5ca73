package pathfinding

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line returns a grid with an east-west line from x=0 to x=length.
func line(t *testing.T, length int) *track.Grid {
	t.Helper()
	grid := track.NewGrid("w")
	require.NoError(t, grid.AddTrack(loc(0, 0), loc(length, 0)))
	return grid
}

func TestProvider_DiscoversEdgesBothWays(t *testing.T) {
	m := newRecordingMetrics()
	g := New(WithMetrics(m), WithClock(clock.NewMock()))
	w := g.AddWorld("w", line(t, 10))
	g.RegisterHandler(&stubHandler{nodes: map[railloc.Location]string{
		loc(0, 0):  "a",
		loc(10, 0): "b",
	}})

	a := w.ProcessLocation(loc(0, 0))
	require.NotNil(t, a)
	assert.True(t, g.Provider().IsProcessing())

	drain(g)

	assert.False(t, g.Provider().IsProcessing())
	assert.Equal(t, 0, g.Provider().Pending())
	b := w.Node("b")
	require.NotNil(t, b)

	ab, ok := a.Neighbour(b.ID())
	require.True(t, ok)
	assert.Equal(t, Connection{Destination: b.ID(), Distance: 10, Direction: track.East}, ab)
	ba, ok := b.Neighbour(a.ID())
	require.True(t, ok)
	assert.Equal(t, track.West, ba.Direction)

	assert.Equal(t, 10, a.FindConnection("b").Distance())
	assert.Equal(t, 2, m.outcomes[DiscoveryFound])
	assert.Equal(t, 14, m.outcomes[DiscoveryExhausted])
}

func TestProvider_BlockedDirectionCreatesNoEdge(t *testing.T) {
	m := newRecordingMetrics()
	g := New(WithMetrics(m), WithClock(clock.NewMock()))
	w := g.AddWorld("w", line(t, 10))
	g.RegisterHandler(&stubHandler{
		nodes:  map[railloc.Location]string{loc(0, 0): "a", loc(10, 0): "b"},
		blocks: map[railloc.Location]bool{loc(5, 0): true},
	})

	a := w.ProcessLocation(loc(0, 0))
	drain(g)

	assert.Empty(t, a.Neighbours())
	assert.Nil(t, w.Node("b"), "nothing past the blocker is discovered")
	assert.Equal(t, 1, m.outcomes[DiscoveryBlocked])
	assert.Same(t, NotFound, a.FindConnection("b"))
}

func TestProvider_LoopBackToOriginIsExhausted(t *testing.T) {
	grid := track.NewGrid("w")
	require.NoError(t, grid.AddTrack(loc(0, 0), loc(4, 0), loc(4, 4), loc(0, 4), loc(0, 0)))
	g := New(WithClock(clock.NewMock()))
	w := g.AddWorld("w", grid)
	g.RegisterHandler(&stubHandler{nodes: map[railloc.Location]string{loc(0, 0): "a"}})

	a := w.ProcessLocation(loc(0, 0))
	drain(g)

	assert.Empty(t, a.Neighbours(), "no self edge")
	assert.Equal(t, 1, w.Len())
}

func TestProvider_RespectsTickBudget(t *testing.T) {
	mock := clock.NewMock()
	g := New(WithClock(mock), WithTickBudget(5*time.Millisecond), WithStepsPerCheck(1))
	w := g.AddWorld("w", &tickingNetwork{Network: line(t, 30), clock: mock})
	g.RegisterHandler(&stubHandler{nodes: map[railloc.Location]string{
		loc(0, 0):  "a",
		loc(30, 0): "b",
	}})
	a := w.ProcessLocation(loc(0, 0))

	steps := g.Provider().Run(context.Background())
	assert.Equal(t, 5, steps, "one block per millisecond within a 5ms budget")
	assert.True(t, g.Provider().IsProcessing())

	ticks := 1
	for g.Provider().IsProcessing() {
		require.Positive(t, g.Provider().Run(context.Background()), "every tick makes progress")
		ticks++
		require.Less(t, ticks, 1000)
	}

	assert.Greater(t, ticks, 6, "a 30 block walk does not fit in one tick")
	assert.Equal(t, 30, a.FindConnection("b").Distance())
}

func TestProvider_AlwaysRunsOneBatch(t *testing.T) {
	grid := track.NewGrid("w")
	require.NoError(t, grid.AddTrack(loc(0, 0), loc(0, -10)))
	mock := clock.NewMock()
	g := New(WithClock(mock), WithTickBudget(time.Nanosecond), WithStepsPerCheck(3))
	w := g.AddWorld("w", &tickingNetwork{Network: grid, clock: mock})
	g.RegisterHandler(&stubHandler{nodes: map[railloc.Location]string{loc(0, 0): "a"}})
	w.ProcessLocation(loc(0, 0))

	// The first queued walk heads north along the line.
	assert.Equal(t, 3, g.Provider().Run(context.Background()))
	assert.Equal(t, 3, g.Provider().Run(context.Background()))
}

func TestProvider_StopDrainsAndRunsSynchronously(t *testing.T) {
	g := New(WithClock(clock.NewMock()))
	w := g.AddWorld("w", line(t, 10))
	h := &stubHandler{nodes: map[railloc.Location]string{
		loc(0, 0):  "a",
		loc(10, 0): "b",
		loc(5, 0):  "",
	}}
	g.RegisterHandler(h)
	a := w.ProcessLocation(loc(0, 0))

	g.Provider().Stop()

	assert.False(t, g.Provider().IsProcessing())
	mid := w.NodeAt(loc(5, 0))
	require.NotNil(t, mid)
	assert.Equal(t, 10, a.FindConnection("b").Distance())

	delete(h.nodes, loc(5, 0))
	mid.Remove()
	assert.False(t, g.Provider().IsProcessing(), "rediscovery ran synchronously")
	assert.Equal(t, 10, a.FindConnection("b").Distance())
	_, ok := a.Neighbour(w.Node("b").ID())
	assert.True(t, ok)
}

func TestProvider_DropsWalksOfRemovedNodes(t *testing.T) {
	g := New(WithClock(clock.NewMock()))
	w := g.AddWorld("w", line(t, 10))
	n := w.GetOrCreate("a", loc(0, 0))
	require.True(t, g.Provider().IsProcessing())

	n.Remove()
	drain(g)

	assert.False(t, g.Provider().IsProcessing())
	assert.Equal(t, 0, w.Len())
}

func TestWorld_Reroute(t *testing.T) {
	g := New(WithClock(clock.NewMock()))
	w := g.AddWorld("w", line(t, 10))
	g.RegisterHandler(&stubHandler{nodes: map[railloc.Location]string{loc(0, 0): "a", loc(10, 0): "b"}})
	a := w.ProcessLocation(loc(0, 0))
	drain(g)
	require.NotEmpty(t, a.Neighbours())

	w.Reroute()
	assert.Empty(t, a.Neighbours())
	assert.True(t, g.Provider().IsProcessing())

	drain(g)
	assert.Equal(t, 10, a.FindConnection("b").Distance())
}

func TestProvider_NodeWinsOverBlockerOnSameBlock(t *testing.T) {
	creator := &stubHandler{nodes: map[railloc.Location]string{loc(0, 0): "a", loc(10, 0): "b"}}
	blocker := &stubHandler{blocks: map[railloc.Location]bool{loc(10, 0): true}}

	testCases := []struct {
		name     string
		handlers []RoutingHandler
	}{
		{"creator first", []RoutingHandler{creator, blocker}},
		{"blocker first", []RoutingHandler{blocker, creator}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newRecordingMetrics()
			g := New(WithMetrics(m), WithClock(clock.NewMock()))
			w := g.AddWorld("w", line(t, 10))
			for _, h := range tc.handlers {
				g.RegisterHandler(h)
			}

			a := w.ProcessLocation(loc(0, 0))
			drain(g)

			b := w.Node("b")
			require.NotNil(t, b)
			ab, ok := a.Neighbour(b.ID())
			require.True(t, ok, "the node created on the blocked block still gets an edge")
			assert.Equal(t, 10, ab.Distance)
			assert.Equal(t, 0, m.outcomes[DiscoveryBlocked])
			assert.Equal(t, 10, a.FindConnection("b").Distance())
		})
	}
}
