package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/railpath/internal/pathfinding"
)

// Settle runs discovery until the graph is complete or ctx is done.
func (a *App) Settle(ctx context.Context) error {
	p := a.graph.Provider()
	for p.IsProcessing() {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.Run(ctx)
	}
	return nil
}

// FindPath returns the shortest route between two named nodes of world.
func (a *App) FindPath(world, from, to string) (*pathfinding.SearchResult, error) {
	w, ok := a.graph.World(world)
	if !ok {
		return nil, fmt.Errorf("%w: %s", pathfinding.ErrUnknownWorld, world)
	}
	start := w.Node(from)
	if start == nil {
		return nil, fmt.Errorf("no node named %q in world %q", from, world)
	}
	if w.Node(to) == nil {
		return nil, fmt.Errorf("no node named %q in world %q", to, world)
	}
	return start.FindConnection(to), nil
}

// DescribePath renders a search result starting at from as the chain of
// node names it visits.
func (a *App) DescribePath(from string, res *pathfinding.SearchResult) string {
	if !res.Found() {
		return "no route"
	}
	ids := res.Path()
	names := make([]string, 1, len(ids)+1)
	names[0] = from
	for _, id := range ids {
		names = append(names, a.graph.Node(id).DisplayName())
	}
	return fmt.Sprintf("%s (%d blocks)", strings.Join(names, " -> "), res.Distance())
}

// Dump writes the node snapshots of every world.
func (a *App) Dump(w io.Writer) error {
	for _, world := range a.graph.Worlds() {
		if _, err := fmt.Fprintf(w, "world %s (%d nodes)\n", world.Name(), world.Len()); err != nil {
			return err
		}
		for _, snap := range world.Snapshot() {
			if _, err := fmt.Fprintln(w, snap.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
