package pathfinding

import (
	"math"

	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/track"
)

// Group is a train: a set of members travelling together.
type Group interface {
	Name() string
	// Destination is the name of the node the train is heading for, or "".
	Destination() string
}

// Member is one vehicle of a Group.
type Member interface {
	Group() Group
	// Index is the position of the member within its group, front first.
	Index() int
}

// BlockHandler is called for every block a member enters while a tracked
// block registration is active. remaining is the distance left before the
// registration expires.
type BlockHandler interface {
	Update(ev *PredictEvent, remaining int)
}

// BlockHandlerFunc adapts a function to BlockHandler.
type BlockHandlerFunc func(ev *PredictEvent, remaining int)

func (f BlockHandlerFunc) Update(ev *PredictEvent, remaining int) { f(ev, remaining) }

type blockRequest struct {
	location railloc.Location
	distance int
	handler  BlockHandler
}

// PredictEvent is handed to every RoutingHandler for the block a train
// member is about to enter.
type PredictEvent struct {
	NavigateEvent

	member      Member
	switched    track.Position
	hasSwitched bool
	speedLimit  float64
	requests    []blockRequest
}

// ResetToInitialState clears every decision taken by previous handlers.
func (e *PredictEvent) ResetToInitialState() {
	e.NavigateEvent.ResetToInitialState()
	e.switched = track.Position{}
	e.hasSwitched = false
	e.speedLimit = math.Inf(1)
	e.requests = e.requests[:0]
}

func (e *PredictEvent) Member() Member { return e.member }

// Group returns the member's group, or nil when there is no member.
func (e *PredictEvent) Group() Group {
	if e.member == nil {
		return nil
	}
	return e.member.Group()
}

// SetSwitchedPosition selects the position the member continues from.
func (e *PredictEvent) SetSwitchedPosition(p track.Position) {
	e.switched = p
	e.hasSwitched = true
}

// SetSwitchedJunction selects the junction leaving the current block.
func (e *PredictEvent) SetSwitchedJunction(j track.Junction) {
	e.SetSwitchedPosition(track.Position{Location: e.Location(), Direction: j.Direction})
}

// SwitchedPosition returns the position selected by a handler.
func (e *PredictEvent) SwitchedPosition() (track.Position, bool) {
	return e.switched, e.hasSwitched
}

// SetSpeedLimit overwrites the speed limit. Negative values are clamped to 0.
func (e *PredictEvent) SetSpeedLimit(v float64) {
	e.speedLimit = math.Max(v, 0)
}

// AddSpeedLimit lowers the speed limit to v if v is lower.
func (e *PredictEvent) AddSpeedLimit(v float64) {
	if v < e.speedLimit {
		e.SetSpeedLimit(v)
	}
}

// SpeedLimit returns the speed limit, +Inf when none was set.
func (e *PredictEvent) SpeedLimit() float64 { return e.speedLimit }

func (e *PredictEvent) HasSpeedLimit() bool { return !math.IsInf(e.speedLimit, 1) }

// TrackBlock asks for h to be called for every block the member enters
// during the next distance blocks.
func (e *PredictEvent) TrackBlock(loc railloc.Location, distance int, h BlockHandler) {
	if h == nil || distance <= 0 {
		return
	}
	e.requests = append(e.requests, blockRequest{location: loc, distance: distance, handler: h})
}

type trackedBlock struct {
	location railloc.Location
	until    int
	handler  BlockHandler
}

// Predictor runs prediction for one member. It reuses a single event for
// every block and keeps the tracked block registrations alive between calls.
type Predictor struct {
	graph   *Graph
	member  Member
	event   PredictEvent
	tracked []trackedBlock

	detached *World
}

// NewPredictor returns a predictor for member.
func (g *Graph) NewPredictor(member Member) *Predictor {
	return &Predictor{graph: g, member: member}
}

// Predict refreshes the event for the block at pos, reached after distance
// blocks of travel, and runs the tracked block handlers followed by every
// routing handler. The returned event is only valid until the next call.
// A position in a world the graph does not know gets a detached world, so
// prediction never adds worlds to the graph.
func (p *Predictor) Predict(pos track.Position, distance int) *PredictEvent {
	ev := &p.event
	ev.ResetToInitialState()
	ev.member = p.member
	w, ok := p.graph.worlds[pos.Location.World]
	if !ok {
		if p.detached == nil || p.detached.name != pos.Location.World {
			p.detached = newWorld(p.graph, pos.Location.World)
		}
		w = p.detached
	}
	ev.refresh(w, pos, distance)

	kept := p.tracked[:0]
	for _, tb := range p.tracked {
		remaining := tb.until - distance
		if remaining < 0 || tb.location.World != pos.Location.World {
			continue
		}
		tb.handler.Update(ev, remaining)
		kept = append(kept, tb)
	}
	clear(p.tracked[len(kept):])
	p.tracked = kept

	for _, h := range p.graph.handlers {
		h.Predict(ev)
	}
	for _, r := range ev.requests {
		p.tracked = append(p.tracked, trackedBlock{
			location: r.location,
			until:    distance + r.distance,
			handler:  r.handler,
		})
	}
	return ev
}

// Tracked returns the number of active tracked block registrations.
func (p *Predictor) Tracked() int { return len(p.tracked) }

// Reset drops every tracked block registration.
func (p *Predictor) Reset() {
	clear(p.tracked)
	p.tracked = p.tracked[:0]
}
