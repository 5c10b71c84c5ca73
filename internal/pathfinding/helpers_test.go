package pathfinding

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/track"
)

// stubHandler materializes nodes and blockers at fixed locations.
type stubHandler struct {
	nodes   map[railloc.Location]string
	blocks  map[railloc.Location]bool
	predict func(ev *PredictEvent)
}

func (h *stubHandler) Process(ev *RouteEvent) {
	if h.blocks[ev.Location()] {
		ev.SetBlocked()
		return
	}
	if name, ok := h.nodes[ev.Location()]; ok {
		n := ev.CreateNode()
		if name != "" {
			_ = n.AddName(name)
		}
	}
}

func (h *stubHandler) Predict(ev *PredictEvent) {
	if h.predict != nil {
		h.predict(ev)
	}
}

// recordingMetrics counts discovery outcomes.
type recordingMetrics struct {
	noopMetrics
	outcomes map[DiscoveryOutcome]int
	hits     int
	misses   int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{outcomes: make(map[DiscoveryOutcome]int)}
}

func (m *recordingMetrics) DiscoveryFinished(o DiscoveryOutcome, _ int) { m.outcomes[o]++ }

func (m *recordingMetrics) SearchCompleted(cached, _ bool) {
	if cached {
		m.hits++
	} else {
		m.misses++
	}
}

// tickingNetwork advances a mock clock by one millisecond per walked block.
type tickingNetwork struct {
	track.Network
	clock *clock.Mock
}

func (n *tickingNetwork) Walk(start track.Position) track.Walker {
	return &tickingWalker{Walker: n.Network.Walk(start), clock: n.clock}
}

type tickingWalker struct {
	track.Walker
	clock *clock.Mock
}

func (w *tickingWalker) Next() bool {
	w.clock.Add(time.Millisecond)
	return w.Walker.Next()
}

type stubGroup struct {
	name, destination string
}

func (g *stubGroup) Name() string        { return g.name }
func (g *stubGroup) Destination() string { return g.destination }

type stubMember struct {
	group *stubGroup
}

func (m *stubMember) Group() Group { return m.group }
func (m *stubMember) Index() int   { return 0 }

func loc(x, z int) railloc.Location {
	return railloc.New("w", x, 64, z)
}

// drain runs the provider until it is idle and returns the number of ticks.
func drain(g *Graph) int {
	ticks := 0
	for g.Provider().IsProcessing() && ticks < 10_000 {
		g.Provider().Run(context.Background())
		ticks++
	}
	return ticks
}
