package pathfinding

import (
	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/track"
)

// RoutingHandler decides what happens at a rail block during discovery and
// during train prediction. Handlers are invoked in registration order.
type RoutingHandler interface {
	Process(ev *RouteEvent)
	Predict(ev *PredictEvent)
}

// RouteEvent is handed to every RoutingHandler for each block visited by a
// discovery walk. One event is reused for every block of a walk.
type RouteEvent struct {
	world    *World
	position track.Position
	distance int
	node     *Node
	blocked  bool
}

func (e *RouteEvent) reset(w *World, pos track.Position, distance int) {
	*e = RouteEvent{world: w, position: pos, distance: distance}
}

func (e *RouteEvent) World() *World              { return e.world }
func (e *RouteEvent) Position() track.Position   { return e.position }
func (e *RouteEvent) Location() railloc.Location { return e.position.Location }

// Direction is the direction of travel at the block. It is track.Invalid when
// the location is processed outside a walk.
func (e *RouteEvent) Direction() track.Direction { return e.position.Direction }

// Distance is the number of blocks walked from the origin node.
func (e *RouteEvent) Distance() int { return e.distance }

// CreateNode returns the node at the event location, creating it if needed.
// Repeated calls within one event return the same node.
func (e *RouteEvent) CreateNode() *Node {
	if e.node == nil {
		e.node = e.world.GetOrCreate("", e.position.Location)
	}
	return e.node
}

// Node returns the node created by a handler during this event, or nil.
func (e *RouteEvent) Node() *Node { return e.node }

// SetBlocked ends the walk in this direction without creating an edge.
func (e *RouteEvent) SetBlocked() { e.blocked = true }

func (e *RouteEvent) Blocked() bool { return e.blocked }
