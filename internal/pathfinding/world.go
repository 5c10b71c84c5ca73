package pathfinding

import (
	"fmt"
	"slices"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/track"
)

type searchKey struct {
	from, to NodeID
}

// World holds the nodes of one world together with its search cache.
type World struct {
	graph   *Graph
	name    string
	network track.Network

	byLocation map[railloc.Location]*Node
	byName     map[string]*Node
	nodes      []*Node

	cache *lru.Cache[searchKey, *SearchResult]
}

func newWorld(g *Graph, name string) *World {
	cache, err := lru.New[searchKey, *SearchResult](g.cacheSize)
	if err != nil {
		// Only reachable with a non-positive size, which the options reject.
		panic(fmt.Sprintf("pathfinding: result cache: %v", err))
	}
	return &World{
		graph:      g,
		name:       name,
		byLocation: make(map[railloc.Location]*Node),
		byName:     make(map[string]*Node),
		cache:      cache,
	}
}

// Name returns the world name.
func (w *World) Name() string { return w.name }

// Graph returns the graph owning the world.
func (w *World) Graph() *Graph { return w.graph }

// Network returns the track network of the world. It is nil for worlds that
// were only seen in persisted data.
func (w *World) Network() track.Network { return w.network }

// Node returns the node bound to name, or nil.
func (w *World) Node(name string) *Node { return w.byName[name] }

// NodeAt returns the node at loc, or nil.
func (w *World) NodeAt(loc railloc.Location) *Node { return w.byLocation[loc] }

// Nodes returns the nodes of the world in creation order.
func (w *World) Nodes() []*Node { return slices.Clone(w.nodes) }

// Len returns the number of nodes.
func (w *World) Len() int { return len(w.nodes) }

// GetOrCreate returns the node at loc, creating it and scheduling discovery
// in every compass direction if none exists. A non-empty name is added to
// the node; if the name belongs to another node the node is still returned
// without it. A location in another world is resolved through the graph;
// nil is returned when the graph does not know that world.
func (w *World) GetOrCreate(name string, loc railloc.Location) *Node {
	if loc.World != w.name {
		n, err := w.graph.GetOrCreate(name, loc)
		if err != nil {
			w.graph.logger.Error("Node requested in an unknown world",
				"world", w.name, "location", loc.String(), "error", err)
		}
		return n
	}
	n, ok := w.byLocation[loc]
	if !ok {
		n = w.insert(loc)
		w.MarkChanged()
		w.graph.provider.ScheduleNode(n)
	}
	if name != "" && !n.HasName(name) {
		if err := n.AddName(name); err != nil {
			w.graph.logger.Warn("Name collision, keeping existing node",
				"world", w.name, "name", name, "location", loc.String(), "error", err)
		}
	}
	return n
}

// insert registers a fresh anonymous node without scheduling discovery.
func (w *World) insert(loc railloc.Location) *Node {
	n := &Node{
		id:           w.graph.allocID(),
		world:        w,
		location:     loc,
		neighbourIdx: make(map[NodeID]int),
	}
	w.bindLocationName(n)
	w.byLocation[loc] = n
	w.nodes = append(w.nodes, n)
	w.graph.nodes[n.id] = n
	return n
}

func (w *World) bindLocationName(n *Node) {
	locName := n.location.String()
	n.names = append(n.names[:0], locName)
	if _, taken := w.byName[locName]; !taken {
		w.byName[locName] = n
	}
}

// MarkChanged drops every cached search result and notifies the graph.
func (w *World) MarkChanged() {
	w.cache.Purge()
	w.graph.changed(w)
}

// Reroute drops every edge and schedules discovery for every node again.
func (w *World) Reroute() {
	for _, n := range w.nodes {
		n.dropConnections()
	}
	w.MarkChanged()
	for _, n := range w.nodes {
		w.graph.provider.ScheduleNode(n)
	}
}

// Clear removes every node of the world.
func (w *World) Clear() {
	for _, n := range w.nodes {
		n.removed = true
		delete(w.graph.nodes, n.id)
	}
	w.nodes = nil
	clear(w.byLocation)
	clear(w.byName)
	w.MarkChanged()
}

// ProcessLocation runs the routing handlers once at loc with no direction of
// travel and returns the node they created there, if any.
func (w *World) ProcessLocation(loc railloc.Location) *Node {
	var ev RouteEvent
	ev.reset(w, track.Position{Location: loc, Direction: track.Invalid}, 0)
	for _, h := range w.graph.handlers {
		h.Process(&ev)
	}
	return ev.node
}

// FindRoute returns the shortest route from one node to another. It never
// returns nil; unreachable destinations yield NotFound.
func (w *World) FindRoute(from, to *Node) *SearchResult {
	if from == nil || to == nil || from.world != w || to.world != w || from.removed || to.removed {
		return NotFound
	}
	if from == to {
		return selfResult(to.id)
	}
	key := searchKey{from: from.id, to: to.id}
	if r, ok := w.cache.Get(key); ok {
		w.graph.metrics.SearchCompleted(true, r.Found())
		return r
	}

	res := w.search(from, to)
	if res == nil {
		w.cache.Add(key, NotFound)
		w.graph.metrics.SearchCompleted(false, false)
		return NotFound
	}
	cur := from.id
	for r := res; r.next != nil; r = r.next {
		w.cache.Add(searchKey{from: cur, to: to.id}, r)
		cur = r.conn.Destination
	}
	w.graph.metrics.SearchCompleted(false, true)
	return res
}

// Snapshot returns a snapshot of every node sorted by location.
func (w *World) Snapshot() []NodeSnapshot {
	out := make([]NodeSnapshot, 0, len(w.nodes))
	for _, n := range w.nodes {
		out = append(out, n.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location.Less(out[j].Location) })
	return out
}

func (w *World) removeFromIndex(n *Node) {
	for _, name := range n.names {
		if w.byName[name] == n {
			delete(w.byName, name)
		}
	}
	delete(w.byLocation, n.location)
	if i := slices.Index(w.nodes, n); i >= 0 {
		w.nodes = slices.Delete(w.nodes, i, i+1)
	}
	delete(w.graph.nodes, n.id)
}
