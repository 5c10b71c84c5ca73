package pathfinding

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/testutil"
	"github.com/specialistvlad/railpath/internal/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorld_GetOrCreate_IsIdempotent(t *testing.T) {
	g := New()
	w := g.AddWorld("w", nil)

	a := w.GetOrCreate("", loc(1, 2))
	b := w.GetOrCreate("", loc(1, 2))

	assert.Same(t, a, b)
	assert.Equal(t, 1, w.Len())
	assert.False(t, a.IsNamed())
	assert.Equal(t, []string{"w_1_64_2"}, a.Names())
	assert.Same(t, a, w.Node("w_1_64_2"))
	assert.Same(t, a, w.NodeAt(loc(1, 2)))
	assert.Equal(t, len(track.Compass), g.Provider().Pending(), "discovery is scheduled once")
}

func TestWorld_GetOrCreate_NamesExistingNode(t *testing.T) {
	w := New().AddWorld("w", nil)

	a := w.GetOrCreate("", loc(0, 0))
	b := w.GetOrCreate("depot", loc(0, 0))

	assert.Same(t, a, b)
	assert.True(t, a.IsNamed())
	assert.Equal(t, []string{"depot"}, a.Names())
	assert.Nil(t, w.Node("w_0_64_0"), "location name is dropped once the node is named")
	assert.Same(t, a, w.Node("depot"))
}

func TestWorld_GetOrCreate_RejectsNameCollision(t *testing.T) {
	logger, logs := testutil.NewLogger(t)
	w := New(WithLogger(logger)).AddWorld("w", nil)

	a := w.GetOrCreate("depot", loc(0, 0))
	b := w.GetOrCreate("depot", loc(5, 0))

	require.NotNil(t, b)
	assert.NotSame(t, a, b)
	assert.Same(t, a, w.Node("depot"))
	assert.False(t, b.IsNamed())
	assert.Contains(t, logs.String(), "Name collision")

	err := b.AddName("depot")
	assert.ErrorIs(t, err, ErrNameInUse)
}

func TestGraph_GetOrCreate_UnknownWorld(t *testing.T) {
	g := New()
	_, err := g.GetOrCreate("", loc(0, 0))
	assert.ErrorIs(t, err, ErrUnknownWorld)
}

func TestWorld_GetOrCreate_ForeignLocation(t *testing.T) {
	logger, logs := testutil.NewLogger(t)
	g := New(WithLogger(logger))
	w := g.AddWorld("w", nil)
	nether := g.AddWorld("nether", nil)

	n := w.GetOrCreate("portal", railloc.New("nether", 1, 64, 1))
	require.NotNil(t, n)
	assert.Same(t, nether, n.World())
	assert.Same(t, n, nether.Node("portal"))
	assert.Equal(t, 0, w.Len())

	assert.Nil(t, w.GetOrCreate("", railloc.New("end", 0, 0, 0)))
	_, ok := g.World("end")
	assert.False(t, ok, "an unknown world is not created")
	assert.Contains(t, logs.String(), "Node requested in an unknown world")
}

func TestNode_RemoveName_RestoresLocationName(t *testing.T) {
	w := New().AddWorld("w", nil)
	n := w.GetOrCreate("a", loc(3, 3))
	require.NoError(t, n.AddName("b"))

	n.RemoveName("a")
	assert.Equal(t, []string{"b"}, n.Names())
	assert.Nil(t, w.Node("a"))

	n.RemoveName("b")
	assert.False(t, n.IsNamed())
	assert.Same(t, n, w.Node("w_3_64_3"))
}

func TestNode_AddNeighbour_OnlyTightens(t *testing.T) {
	w := New().AddWorld("w", nil)
	a := w.GetOrCreate("a", loc(0, 0))
	b := w.GetOrCreate("b", loc(9, 0))

	c, err := a.AddNeighbour(b, 10, track.East)
	require.NoError(t, err)
	assert.Equal(t, 10, c.Distance)

	c, err = a.AddNeighbour(b, 4, track.North)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Distance)
	assert.Equal(t, track.North, c.Direction)

	c, err = a.AddNeighbour(b, 20, track.East)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Distance, "a longer edge never replaces a shorter one")

	require.Len(t, a.Neighbours(), 1)
	assert.Equal(t, 4, a.Neighbours()[0].Distance)
}

func TestNode_AddNeighbour_RejectsInvalidEdges(t *testing.T) {
	g := New()
	w := g.AddWorld("w", nil)
	other := g.AddWorld("v", nil)
	a := w.GetOrCreate("a", loc(0, 0))
	b := w.GetOrCreate("b", loc(9, 0))
	far := other.GetOrCreate("far", railloc.New("v", 0, 64, 0))
	gone := w.GetOrCreate("gone", loc(20, 0))
	gone.Remove()

	testCases := []struct {
		name     string
		to       *Node
		distance int
	}{
		{"self", a, 1},
		{"other world", far, 3},
		{"negative distance", b, -1},
		{"removed node", gone, 2},
		{"nil node", nil, 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := a.AddNeighbour(tc.to, tc.distance, track.East)
			assert.ErrorIs(t, err, ErrInvalidEdge)
			assert.Empty(t, a.Neighbours())
		})
	}

	var buf bytes.Buffer
	require.NoError(t, g.Encode(&buf))
	assert.NoError(t, New().Decode(&buf), "a graph that refused bad edges still loads")
}

func TestNode_Remove_CleansUpEdges(t *testing.T) {
	g := New()
	w := g.AddWorld("w", nil)
	a := w.GetOrCreate("a", loc(0, 0))
	b := w.GetOrCreate("b", loc(5, 0))
	c := w.GetOrCreate("c", loc(8, 0))
	a.AddNeighbour(b, 5, track.East)
	b.AddNeighbour(a, 5, track.West)
	b.AddNeighbour(c, 3, track.East)
	c.AddNeighbour(b, 3, track.West)
	pending := g.Provider().Pending()

	b.Remove()

	assert.True(t, b.Removed())
	assert.Nil(t, w.Node("b"))
	assert.Nil(t, w.NodeAt(loc(5, 0)))
	assert.Nil(t, g.Node(b.ID()))
	assert.Empty(t, a.Neighbours())
	assert.Empty(t, c.Neighbours())
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, pending+2*len(track.Compass), g.Provider().Pending(),
		"nodes that lost an edge are rediscovered")

	b.Remove()
	assert.Equal(t, 2, w.Len(), "second removal is a no-op")
}

func TestWorld_Clear(t *testing.T) {
	g := New()
	w := g.AddWorld("w", nil)
	a := w.GetOrCreate("a", loc(0, 0))
	w.GetOrCreate("b", loc(5, 0))

	w.Clear()

	assert.Equal(t, 0, w.Len())
	assert.True(t, a.Removed())
	assert.Nil(t, w.Node("a"))
	assert.Equal(t, 0, g.NodeCount())
}

func TestGraph_ChangeHook(t *testing.T) {
	calls := 0
	g := New(WithChangeHook(func() { calls++ }))
	w := g.AddWorld("w", nil)
	assert.False(t, g.IsDirty())

	a := w.GetOrCreate("a", loc(0, 0))
	b := w.GetOrCreate("b", loc(1, 0))
	assert.True(t, g.IsDirty())

	g.MarkSaved()
	before := calls
	a.AddNeighbour(b, 1, track.East)
	assert.True(t, g.IsDirty())
	assert.Greater(t, calls, before)

	g.MarkSaved()
	before = calls
	a.AddNeighbour(b, 3, track.East)
	assert.False(t, g.IsDirty(), "a rejected edge is not a change")
	assert.Equal(t, before, calls)
}

func TestWorld_Snapshot(t *testing.T) {
	w := New().AddWorld("w", nil)
	b := w.GetOrCreate("b", loc(5, 0))
	a := w.GetOrCreate("a", loc(0, 0))
	a.SetRailSwitchable(true)
	a.AddNeighbour(b, 5, track.East)

	snaps := w.Snapshot()
	require.Len(t, snaps, 2)
	assert.Equal(t, []string{"a"}, snaps[0].Names, "sorted by location")
	assert.True(t, snaps[0].RailSwitchable)
	assert.Equal(t, []ConnectionSnapshot{{Destination: "b", Distance: 5, Direction: track.East}}, snaps[0].Connections)
	assert.True(t, snaps[0].Equal(a.Snapshot()))
	assert.False(t, snaps[0].Equal(snaps[1]))
	assert.Contains(t, snaps[0].String(), "-> b 5 east")
}
