package pathfinding

import (
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/track"
)

// Node is a routing point on the rail network: a destination, a junction or
// any other block a routing handler decided to materialize.
type Node struct {
	id       NodeID
	world    *World
	location railloc.Location
	names    []string

	railSwitchable bool
	index          int
	removed        bool

	neighbours   []Connection
	neighbourIdx map[NodeID]int

	// lastDistance is search scratch space, reset before every search.
	lastDistance int
}

func (n *Node) ID() NodeID                 { return n.id }
func (n *Node) World() *World              { return n.world }
func (n *Node) Location() railloc.Location { return n.location }
func (n *Node) Removed() bool              { return n.removed }

// Names returns the names of the node in the order they were added.
func (n *Node) Names() []string { return slices.Clone(n.names) }

// DisplayName returns the first name of the node.
func (n *Node) DisplayName() string { return n.names[0] }

// HasName reports whether name is one of the node's names.
func (n *Node) HasName(name string) bool { return slices.Contains(n.names, name) }

// IsNamed reports whether the node carries a name other than its location.
func (n *Node) IsNamed() bool {
	return !(len(n.names) == 1 && n.names[0] == n.location.String())
}

// IsRailSwitchable reports whether a junction at this node can be switched.
func (n *Node) IsRailSwitchable() bool { return n.railSwitchable }

// SetRailSwitchable sets the switchable flag.
func (n *Node) SetRailSwitchable(v bool) {
	if n.railSwitchable == v {
		return
	}
	n.railSwitchable = v
	n.world.MarkChanged()
}

// Index is the position of the node in the last serialized graph.
func (n *Node) Index() int { return n.index }

// AddName binds name to the node. An anonymous node loses its location name.
// A name already bound to another node in the world is rejected with
// ErrNameInUse, an empty, multi-line or oversized name with ErrInvalidName.
func (n *Node) AddName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if n.HasName(name) {
		return nil
	}
	w := n.world
	if other, ok := w.byName[name]; ok && other != n {
		return fmt.Errorf("%w: %q is bound to %s", ErrNameInUse, name, other.location)
	}
	if !n.IsNamed() {
		locName := n.names[0]
		if w.byName[locName] == n {
			delete(w.byName, locName)
		}
		n.names = n.names[:0]
	}
	n.names = append(n.names, name)
	w.byName[name] = n
	w.MarkChanged()
	return nil
}

func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case len(name) > maxNameLength:
		return fmt.Errorf("%w: name of %d bytes is too long", ErrInvalidName, len(name))
	case strings.ContainsAny(name, "\r\n"):
		return fmt.Errorf("%w: %q spans several lines", ErrInvalidName, name)
	}
	return nil
}

// RemoveName unbinds name. A node that loses its last name becomes anonymous
// again.
func (n *Node) RemoveName(name string) {
	i := slices.Index(n.names, name)
	if i < 0 || !n.IsNamed() {
		return
	}
	w := n.world
	n.names = slices.Delete(n.names, i, i+1)
	if w.byName[name] == n {
		delete(w.byName, name)
	}
	if len(n.names) == 0 {
		w.bindLocationName(n)
	}
	w.MarkChanged()
}

// Neighbours returns the outgoing connections in discovery order.
func (n *Node) Neighbours() []Connection { return slices.Clone(n.neighbours) }

// Neighbour returns the connection to dest, if any.
func (n *Node) Neighbour(dest NodeID) (Connection, bool) {
	i, ok := n.neighbourIdx[dest]
	if !ok {
		return Connection{}, false
	}
	return n.neighbours[i], true
}

// AddNeighbour records an edge to another node. An existing edge to the same
// destination is only replaced by a strictly shorter one. The stored edge is
// returned. Edges to the node itself, to a removed node or into another
// world, and negative distances are rejected with ErrInvalidEdge.
func (n *Node) AddNeighbour(to *Node, distance int, dir track.Direction) (Connection, error) {
	switch {
	case to == nil || to == n || to.removed || n.removed:
		return Connection{}, fmt.Errorf("%w: %s has no valid destination", ErrInvalidEdge, n.location)
	case to.world != n.world:
		return Connection{}, fmt.Errorf("%w: %s and %s are in different worlds", ErrInvalidEdge, n.location, to.location)
	case distance < 0:
		return Connection{}, fmt.Errorf("%w: negative distance %d", ErrInvalidEdge, distance)
	}
	c := Connection{Destination: to.id, Distance: distance, Direction: dir}
	if i, ok := n.neighbourIdx[to.id]; ok {
		if n.neighbours[i].Distance <= distance {
			return n.neighbours[i], nil
		}
		n.neighbours[i] = c
	} else {
		n.neighbourIdx[to.id] = len(n.neighbours)
		n.neighbours = append(n.neighbours, c)
	}
	n.world.MarkChanged()
	return c, nil
}

// ClearConnections drops every outgoing edge.
func (n *Node) ClearConnections() {
	if len(n.neighbours) == 0 {
		return
	}
	n.dropConnections()
	n.world.MarkChanged()
}

func (n *Node) dropConnections() {
	n.neighbours = n.neighbours[:0]
	clear(n.neighbourIdx)
}

// removeNeighbour drops the edge to dest and reports whether there was one.
func (n *Node) removeNeighbour(dest NodeID) bool {
	i, ok := n.neighbourIdx[dest]
	if !ok {
		return false
	}
	n.neighbours = slices.Delete(n.neighbours, i, i+1)
	delete(n.neighbourIdx, dest)
	for j := i; j < len(n.neighbours); j++ {
		n.neighbourIdx[n.neighbours[j].Destination] = j
	}
	return true
}

// Remove deletes the node from its world together with every edge pointing
// at it. Nodes that lost an edge are rediscovered, since the track past this
// node may lead somewhere else.
func (n *Node) Remove() {
	if n.removed {
		return
	}
	w := n.world
	var orphaned []*Node
	for _, other := range w.nodes {
		if other != n && other.removeNeighbour(n.id) {
			orphaned = append(orphaned, other)
		}
	}
	n.dropConnections()
	w.removeFromIndex(n)
	n.removed = true
	w.MarkChanged()
	for _, o := range orphaned {
		w.graph.provider.ScheduleNode(o)
	}
}

// FindConnection returns the shortest route to the node bound to name in the
// same world.
func (n *Node) FindConnection(name string) *SearchResult {
	return n.world.FindRoute(n, n.world.Node(name))
}

// FindRoute returns the shortest route to another node.
func (n *Node) FindRoute(to *Node) *SearchResult {
	return n.world.FindRoute(n, to)
}

func (n *Node) String() string {
	return fmt.Sprintf("%s@%s", n.DisplayName(), n.location)
}
