package pathfinding

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/specialistvlad/railpath/internal/track"
)

// DiscoveryOutcome is the state of a discovery work item.
type DiscoveryOutcome int

const (
	DiscoveryPending DiscoveryOutcome = iota
	DiscoveryStepping
	// DiscoveryFound means a node other than the origin was reached and an
	// edge was recorded.
	DiscoveryFound
	// DiscoveryBlocked means a handler blocked the direction of travel.
	DiscoveryBlocked
	// DiscoveryExhausted means the track ended or led back to the origin.
	DiscoveryExhausted
)

func (o DiscoveryOutcome) String() string {
	switch o {
	case DiscoveryPending:
		return "pending"
	case DiscoveryStepping:
		return "stepping"
	case DiscoveryFound:
		return "found"
	case DiscoveryBlocked:
		return "blocked"
	case DiscoveryExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

type discovery struct {
	origin *Node
	start  track.Position
	walker track.Walker
	event  RouteEvent
	state  DiscoveryOutcome
	steps  int
}

// Provider schedules and runs discovery walks within a per-tick time budget.
// It is driven by calling Run once per host tick.
type Provider struct {
	graph         *Graph
	clock         clock.Clock
	budget        time.Duration
	stepsPerCheck int

	queue   []*discovery
	pending atomic.Int64
	stopped bool
}

func newProvider(g *Graph) *Provider {
	return &Provider{
		graph:         g,
		clock:         g.clock,
		budget:        g.budget,
		stepsPerCheck: g.stepsPerCheck,
	}
}

// Schedule queues a walk from origin starting at start. After
// Stop the walk runs to completion before Schedule returns.
func (p *Provider) Schedule(origin *Node, start track.Position) {
	d := &discovery{origin: origin, start: start}
	if p.stopped {
		p.pending.Add(1)
		for !p.step(d) {
		}
		p.finish(d)
		return
	}
	p.queue = append(p.queue, d)
	p.pending.Add(1)
}

// ScheduleNode queues a walk from n in every compass direction.
func (p *Provider) ScheduleNode(n *Node) {
	for _, dir := range track.Compass {
		p.Schedule(n, track.Position{Location: n.location, Direction: dir})
	}
}

// Run advances queued walks until the queue is empty, the tick budget is used
// up or ctx is done. At least StepsPerCheck steps are taken when work is
// queued. It returns the number of steps taken.
func (p *Provider) Run(ctx context.Context) int {
	if len(p.queue) == 0 {
		return 0
	}
	started := p.clock.Now()
	steps := 0
	for len(p.queue) > 0 {
		d := p.queue[0]
		for i := 0; i < p.stepsPerCheck; i++ {
			steps++
			if p.step(d) {
				p.queue[0] = nil
				p.queue = p.queue[1:]
				p.finish(d)
				break
			}
		}
		if p.clock.Since(started) >= p.budget || ctx.Err() != nil {
			break
		}
	}
	if len(p.queue) == 0 {
		p.queue = nil
	}
	p.graph.metrics.QueueDepth(len(p.queue))
	return steps
}

// Stop runs every queued walk to completion. Walks scheduled afterwards run
// synchronously.
func (p *Provider) Stop() {
	for len(p.queue) > 0 {
		d := p.queue[0]
		for !p.step(d) {
		}
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.finish(d)
	}
	p.queue = nil
	p.stopped = true
	p.graph.metrics.QueueDepth(0)
}

// Restart undoes Stop so that walks are queued again.
func (p *Provider) Restart() { p.stopped = false }

// IsProcessing reports whether walks are queued or running. It is safe to
// call from any goroutine.
func (p *Provider) IsProcessing() bool { return p.pending.Load() > 0 }

// Pending returns the number of queued walks. It is safe to call from any
// goroutine.
func (p *Provider) Pending() int { return int(p.pending.Load()) }

// step advances d by one track position and reports whether it finished.
func (p *Provider) step(d *discovery) bool {
	if d.origin.removed {
		d.state = DiscoveryExhausted
		return true
	}
	if d.walker == nil {
		network := d.origin.world.network
		if network == nil {
			d.state = DiscoveryExhausted
			return true
		}
		d.walker = network.Walk(d.start)
		d.state = DiscoveryStepping
	}
	if !d.walker.Next() {
		d.state = DiscoveryExhausted
		return true
	}
	d.steps++

	ev := &d.event
	ev.reset(d.origin.world, d.walker.Position(), d.walker.Distance())
	for _, h := range p.graph.handlers {
		h.Process(ev)
	}
	switch {
	case ev.node == d.origin:
		d.state = DiscoveryExhausted
	case ev.node != nil && !ev.node.removed:
		if _, err := d.origin.AddNeighbour(ev.node, ev.distance, d.start.Direction); err != nil {
			p.graph.logger.Warn("Discovered edge rejected", "origin", d.origin.location.String(), "error", err)
			d.state = DiscoveryExhausted
			break
		}
		d.state = DiscoveryFound
	case ev.blocked:
		d.state = DiscoveryBlocked
	default:
		return false
	}
	return true
}

func (p *Provider) finish(d *discovery) {
	p.pending.Add(-1)
	p.graph.metrics.DiscoveryFinished(d.state, d.steps)
	p.graph.logger.Debug("Discovery finished",
		"origin", d.origin.location.String(),
		"direction", d.start.Direction.String(),
		"outcome", d.state.String(),
		"steps", d.steps)
}
