// Package railtest builds small rail layouts with signs for tests.
package railtest

import (
	"context"
	"testing"

	"github.com/specialistvlad/railpath/internal/pathfinding"
	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/registry"
	"github.com/specialistvlad/railpath/internal/signs"
	"github.com/specialistvlad/railpath/internal/testutil"
	"github.com/specialistvlad/railpath/internal/track"
	"github.com/stretchr/testify/require"
)

// World is the name of the fixture world.
const World = "main"

// Loc returns a location in the fixture world.
func Loc(x, y, z int) railloc.Location { return railloc.New(World, x, y, z) }

// Fixture is one world wired the way the app wires it.
type Fixture struct {
	Graph    *pathfinding.Graph
	World    *pathfinding.World
	Grid     *track.Grid
	Board    *signs.Board
	Registry *registry.Registry
	Logs     *testutil.SafeBuffer
}

// New creates a fixture with the given modules registered.
func New(t *testing.T, modules ...registry.Module) *Fixture {
	t.Helper()
	logger, logs := testutil.NewLogger(t)
	reg := registry.New()
	reg.RegisterModules(modules...)

	g := pathfinding.New(pathfinding.WithLogger(logger))
	grid := track.NewGrid(World)
	board := signs.NewBoard(World)
	handler := signs.NewHandler(reg, logger)
	handler.AddBoard(board)
	g.RegisterHandler(handler)

	return &Fixture{
		Graph:    g,
		World:    g.AddWorld(World, grid),
		Grid:     grid,
		Board:    board,
		Registry: reg,
		Logs:     logs,
	}
}

// Track lays straight segments through the given points at y=64.
func (f *Fixture) Track(t *testing.T, points ...[2]int) {
	t.Helper()
	locs := make([]railloc.Location, len(points))
	for i, p := range points {
		locs[i] = Loc(p[0], 64, p[1])
	}
	require.NoError(t, f.Grid.AddTrack(locs...))
}

// Sign places a sign at (x, 64, z).
func (f *Fixture) Sign(t *testing.T, signType string, x, z int, facing track.Direction, args ...string) {
	t.Helper()
	require.NoError(t, f.Board.Add(&signs.Sign{
		Location: Loc(x, 64, z),
		Type:     signType,
		Args:     args,
		Facing:   facing,
	}))
}

// Settle processes every sign location and runs discovery until idle.
func (f *Fixture) Settle(t *testing.T) {
	t.Helper()
	for _, loc := range f.Board.Locations() {
		f.World.ProcessLocation(loc)
	}
	for i := 0; f.Graph.Provider().IsProcessing(); i++ {
		require.Less(t, i, 100_000, "discovery does not settle")
		f.Graph.Provider().Run(context.Background())
	}
}

// Train is a single-member group for prediction tests.
type Train struct {
	Label   string
	Dest    string
	Arrived []string
}

func (tr *Train) Group() pathfinding.Group { return tr }
func (tr *Train) Index() int               { return 0 }
func (tr *Train) Name() string             { return tr.Label }
func (tr *Train) Destination() string      { return tr.Dest }

// ArriveAt records the arrival and clears the destination.
func (tr *Train) ArriveAt(name string) {
	tr.Arrived = append(tr.Arrived, name)
	tr.Dest = ""
}

// Predict runs prediction for tr at pos with a fresh predictor.
func (f *Fixture) Predict(tr *Train, pos track.Position) *pathfinding.PredictEvent {
	return f.Graph.NewPredictor(tr).Predict(pos, 0)
}
