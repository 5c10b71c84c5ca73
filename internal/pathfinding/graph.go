package pathfinding

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/track"
)

const (
	// DefaultCacheSize bounds the number of cached search results per world.
	DefaultCacheSize = 4096
	// DefaultTickBudget is the wall-clock time discovery may use per tick.
	DefaultTickBudget = 5 * time.Millisecond
	// DefaultStepsPerCheck is the number of track positions walked between
	// two clock reads.
	DefaultStepsPerCheck = 100
)

// Graph is the root of the routing model. It owns every world, the node
// arena, the routing handlers and the discovery provider.
type Graph struct {
	logger    *slog.Logger
	clock     clock.Clock
	metrics   Metrics
	cacheSize int

	budget        time.Duration
	stepsPerCheck int

	worlds   map[string]*World
	nodes    map[NodeID]*Node
	nextID   NodeID
	handlers []RoutingHandler
	provider *Provider

	dirty    bool
	onChange func()
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for discovery and naming diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClock replaces the clock used for the discovery time budget.
func WithClock(c clock.Clock) Option {
	return func(g *Graph) {
		if c != nil {
			g.clock = c
		}
	}
}

// WithMetrics installs a metrics recorder.
func WithMetrics(m Metrics) Option {
	return func(g *Graph) {
		if m != nil {
			g.metrics = m
		}
	}
}

// WithCacheSize bounds the per-world search result cache.
func WithCacheSize(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.cacheSize = n
		}
	}
}

// WithTickBudget sets how long Provider.Run may work per call.
func WithTickBudget(d time.Duration) Option {
	return func(g *Graph) {
		if d > 0 {
			g.budget = d
		}
	}
}

// WithStepsPerCheck sets how many track positions are walked between clock
// reads.
func WithStepsPerCheck(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.stepsPerCheck = n
		}
	}
}

// WithChangeHook registers fn to be called after every topology change.
func WithChangeHook(fn func()) Option {
	return func(g *Graph) { g.onChange = fn }
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		logger:        slog.New(slog.DiscardHandler),
		clock:         clock.New(),
		metrics:       noopMetrics{},
		cacheSize:     DefaultCacheSize,
		budget:        DefaultTickBudget,
		stepsPerCheck: DefaultStepsPerCheck,
		worlds:        make(map[string]*World),
		nodes:         make(map[NodeID]*Node),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.provider = newProvider(g)
	return g
}

// Logger returns the graph's logger.
func (g *Graph) Logger() *slog.Logger { return g.logger }

// Provider returns the discovery scheduler.
func (g *Graph) Provider() *Provider { return g.provider }

// AddWorld registers a world backed by network, or attaches network to a
// world that was created while loading persisted data.
func (g *Graph) AddWorld(name string, network track.Network) *World {
	w := g.world(name)
	if network != nil {
		w.network = network
	}
	return w
}

// World returns the world with the given name.
func (g *Graph) World(name string) (*World, bool) {
	w, ok := g.worlds[name]
	return w, ok
}

// Worlds returns all worlds sorted by name.
func (g *Graph) Worlds() []*World {
	out := make([]*World, 0, len(g.worlds))
	for _, w := range g.worlds {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// GetOrCreate is World.GetOrCreate for the world named by loc.
func (g *Graph) GetOrCreate(name string, loc railloc.Location) (*Node, error) {
	w, ok := g.worlds[loc.World]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorld, loc.World)
	}
	return w.GetOrCreate(name, loc), nil
}

// Node resolves a NodeID. It returns nil for removed nodes.
func (g *Graph) Node(id NodeID) *Node { return g.nodes[id] }

// RegisterHandler appends h to the ordered list of routing handlers.
func (g *Graph) RegisterHandler(h RoutingHandler) {
	g.handlers = append(g.handlers, h)
}

// Handlers returns the registered routing handlers in registration order.
func (g *Graph) Handlers() []RoutingHandler { return g.handlers }

// RerouteAll drops every edge in every world and rediscovers them.
func (g *Graph) RerouteAll() {
	for _, w := range g.Worlds() {
		w.Reroute()
	}
}

// ClearAll removes every node from every world. Worlds stay registered.
func (g *Graph) ClearAll() {
	for _, w := range g.worlds {
		w.Clear()
	}
}

// IsDirty reports whether the topology changed since the last MarkSaved.
func (g *Graph) IsDirty() bool { return g.dirty }

// MarkSaved clears the dirty flag.
func (g *Graph) MarkSaved() { g.dirty = false }

// NodeCount returns the number of nodes across all worlds.
func (g *Graph) NodeCount() int { return len(g.nodes) }

func (g *Graph) world(name string) *World {
	if w, ok := g.worlds[name]; ok {
		return w
	}
	w := newWorld(g, name)
	g.worlds[name] = w
	return w
}

func (g *Graph) allocID() NodeID {
	g.nextID++
	return g.nextID
}

func (g *Graph) changed(w *World) {
	g.dirty = true
	g.metrics.NodeCount(w.name, len(w.nodes))
	if g.onChange != nil {
		g.onChange()
	}
}
