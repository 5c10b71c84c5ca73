package pathfinding

import (
	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/track"
)

// NavigateEvent describes one block of a navigation walk.
type NavigateEvent struct {
	world    *World
	position track.Position
	distance int
	aborted  bool
	blocked  bool
}

// ResetToInitialState clears every decision taken by previous handlers.
func (e *NavigateEvent) ResetToInitialState() {
	e.aborted = false
	e.blocked = false
}

func (e *NavigateEvent) refresh(w *World, pos track.Position, distance int) {
	e.world = w
	e.position = pos
	e.distance = distance
}

func (e *NavigateEvent) World() *World               { return e.world }
func (e *NavigateEvent) Position() track.Position    { return e.position }
func (e *NavigateEvent) Location() railloc.Location  { return e.position.Location }
func (e *NavigateEvent) Direction() track.Direction  { return e.position.Direction }
func (e *NavigateEvent) Distance() int               { return e.distance }
func (e *NavigateEvent) AbortNavigation()            { e.aborted = true }
func (e *NavigateEvent) IsNavigationAborted() bool   { return e.aborted }
func (e *NavigateEvent) SetBlocked()                 { e.blocked = true }
func (e *NavigateEvent) Blocked() bool               { return e.blocked }

// NavigationResult is where a Navigate walk stopped.
type NavigationResult struct {
	End      track.Position
	Distance int
	Aborted  bool
	Blocked  bool
}

// Navigate walks the track from start and calls visit for every block until
// visit aborts or blocks, the track ends, or maxDistance blocks were walked.
// A maxDistance of zero or less means no limit.
func (w *World) Navigate(start track.Position, maxDistance int, visit func(*NavigateEvent)) NavigationResult {
	res := NavigationResult{End: start}
	if w.network == nil {
		return res
	}
	walker := w.network.Walk(start)
	var ev NavigateEvent
	for (maxDistance <= 0 || walker.Distance() < maxDistance) && walker.Next() {
		ev.ResetToInitialState()
		ev.refresh(w, walker.Position(), walker.Distance())
		visit(&ev)
		res.End, res.Distance = ev.position, ev.distance
		if ev.aborted || ev.blocked {
			res.Aborted, res.Blocked = ev.aborted, ev.blocked
			break
		}
	}
	return res
}
