package train

import (
	"context"
	"slices"

	"github.com/specialistvlad/railpath/internal/ctxlog"
	"github.com/specialistvlad/railpath/internal/pathfinding"
)

// Fleet advances every train once per tick. It implements scheduler.Task.
type Fleet struct {
	graph    *pathfinding.Graph
	trains   []*Train
	deferred int
}

func NewFleet(g *pathfinding.Graph) *Fleet {
	return &Fleet{graph: g}
}

func (f *Fleet) Add(t *Train)     { f.trains = append(f.trains, t) }
func (f *Fleet) Trains() []*Train { return slices.Clone(f.trains) }
func (f *Fleet) Len() int         { return len(f.trains) }

// Deferred returns how many ticks were skipped because discovery was busy.
func (f *Fleet) Deferred() int { return f.deferred }

// Tick moves the trains. Movement waits while discovery is still running so
// that switchers route on a complete graph.
func (f *Fleet) Tick(ctx context.Context, _ uint64) {
	if len(f.trains) == 0 {
		return
	}
	logger := ctxlog.FromContext(ctx)
	if f.graph.Provider().IsProcessing() {
		f.deferred++
		logger.Debug("Deferring train movement while discovery runs.",
			"pending", f.graph.Provider().Pending())
		return
	}
	for _, t := range f.trains {
		before := t.State()
		t.Advance()
		if after := t.State(); after != before {
			logger.Debug("Train state changed.", "train", t.Name(),
				"from", before.String(), "to", after.String(), "position", t.Position().String())
		}
	}
}
