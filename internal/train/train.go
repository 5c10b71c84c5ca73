package train

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/specialistvlad/railpath/internal/pathfinding"
	"github.com/specialistvlad/railpath/internal/track"
)

// ErrNotOnTrack is returned when a train is placed off the rail network.
var ErrNotOnTrack = errors.New("train: start position is not on track")

// Lookahead is how far Remaining walks to find the next path node.
const Lookahead = 256

// State is what a train did during its last Advance.
type State int

const (
	StateWaiting State = iota
	StateMoving
	StateBlocked
	StateStalled
	StateArrived
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateMoving:
		return "moving"
	case StateBlocked:
		return "blocked"
	case StateStalled:
		return "stalled"
	case StateArrived:
		return "arrived"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Config describes a train to place.
type Config struct {
	Name  string
	Start track.Position
	// Route is visited in order and wraps around. When empty, Destination is
	// the only stop.
	Route       []string
	Destination string
	// Speed is the number of blocks moved per tick. Defaults to 1.
	Speed int
}

// Train is a single-vehicle group. It is its own pathfinding.Group and
// pathfinding.Member.
type Train struct {
	name      string
	world     *pathfinding.World
	pos       track.Position
	route     []string
	routeIdx  int
	dest      string
	speed     int
	limit     float64
	travelled int
	state     State
	arrivals  []string
	predictor *pathfinding.Predictor
}

// New places a train in world w.
func New(w *pathfinding.World, cfg Config) (*Train, error) {
	network := w.Network()
	if network == nil || !network.IsRail(cfg.Start.Location) {
		return nil, fmt.Errorf("%w: %s", ErrNotOnTrack, cfg.Start.Location)
	}
	if !cfg.Start.Direction.IsHorizontal() {
		return nil, fmt.Errorf("train %q: invalid direction %s", cfg.Name, cfg.Start.Direction)
	}
	t := &Train{
		name:  cfg.Name,
		world: w,
		pos:   cfg.Start,
		route: slices.Clone(cfg.Route),
		dest:  cfg.Destination,
		speed: max(cfg.Speed, 1),
		limit: math.Inf(1),
	}
	if len(t.route) > 0 {
		t.dest = t.route[0]
	}
	t.predictor = w.Graph().NewPredictor(t)
	return t, nil
}

func (t *Train) Name() string              { return t.name }
func (t *Train) Destination() string       { return t.dest }
func (t *Train) Group() pathfinding.Group  { return t }
func (t *Train) Index() int                { return 0 }
func (t *Train) Position() track.Position  { return t.pos }
func (t *Train) World() *pathfinding.World { return t.world }
func (t *Train) State() State              { return t.state }
func (t *Train) Travelled() int            { return t.travelled }
func (t *Train) Arrivals() []string        { return slices.Clone(t.arrivals) }

// ArriveAt records reaching name and moves on to the next stop of the
// route. A train without a further stop halts.
func (t *Train) ArriveAt(name string) {
	t.arrivals = append(t.arrivals, name)
	t.world.Graph().Logger().Info("Train arrived", "train", t.name, "destination", name)
	if len(t.route) > 1 {
		t.routeIdx = (t.routeIdx + 1) % len(t.route)
		t.dest = t.route[t.routeIdx]
		return
	}
	t.dest = ""
	t.state = StateArrived
}

// Advance moves the train for one tick and returns the number of blocks it
// moved. A train moves at least one block per tick unless it is blocked,
// stalled or has arrived.
func (t *Train) Advance() int {
	if t.state == StateArrived {
		return 0
	}
	allowed := t.allowed()
	moved := 0
	for moved < allowed {
		if !t.step() {
			return moved
		}
		moved++
		if t.state == StateArrived {
			return moved
		}
		allowed = t.allowed()
	}
	return moved
}

func (t *Train) allowed() int {
	if t.limit < float64(t.speed) {
		return max(int(t.limit), 1)
	}
	return t.speed
}

// step predicts the next block and enters it unless a handler blocked it.
func (t *Train) step() bool {
	walker := t.world.Network().Walk(t.pos)
	if !walker.Next() {
		t.state = StateStalled
		return false
	}
	next := walker.Position()
	ev := t.predictor.Predict(next, t.travelled+1)
	if ev.Blocked() {
		t.state = StateBlocked
		return false
	}
	if sw, ok := ev.SwitchedPosition(); ok && sw.Location == next.Location {
		if !walker.Redirect(sw.Direction) {
			t.world.Graph().Logger().Debug("Switched junction has no rail",
				"train", t.name, "location", next.Location.String(), "direction", sw.Direction.String())
		}
	}
	t.pos = walker.Position()
	t.travelled++
	t.limit = ev.SpeedLimit()
	if t.state != StateArrived {
		t.state = StateMoving
	}
	return true
}

// Remaining estimates the number of blocks left to the destination: the
// walk to the next path node ahead plus the shortest route from there.
func (t *Train) Remaining() (int, bool) {
	if t.dest == "" {
		return 0, false
	}
	var ahead *pathfinding.Node
	res := t.world.Navigate(t.pos, Lookahead, func(ev *pathfinding.NavigateEvent) {
		if n := t.world.NodeAt(ev.Location()); n != nil {
			ahead = n
			ev.AbortNavigation()
		}
	})
	if ahead == nil {
		return 0, false
	}
	r := ahead.FindConnection(t.dest)
	if !r.Found() {
		return 0, false
	}
	return res.Distance + r.Distance(), true
}

// Status is a point-in-time report of a train.
type Status struct {
	Name        string
	Position    string
	Destination string
	State       string
	Travelled   int
}

func (t *Train) Status() Status {
	return Status{
		Name:        t.name,
		Position:    t.pos.String(),
		Destination: t.dest,
		State:       t.state.String(),
		Travelled:   t.travelled,
	}
}
