package signs

import "github.com/specialistvlad/railpath/internal/pathfinding"

// RoutingEvent is a discovery RouteEvent seen through one sign.
type RoutingEvent struct {
	*pathfinding.RouteEvent
	sign *Sign
}

// Sign returns the sign being processed.
func (e *RoutingEvent) Sign() *Sign { return e.sign }

// PredictingEvent is a PredictEvent seen through one sign.
type PredictingEvent struct {
	*pathfinding.PredictEvent
	sign *Sign
}

// Sign returns the sign being processed.
func (e *PredictingEvent) Sign() *Sign { return e.sign }

// Action implements the behavior of one sign type.
type Action interface {
	Route(ev *RoutingEvent)
	Predict(ev *PredictingEvent)
}

// Actions resolves a sign type to its Action.
type Actions interface {
	Action(signType string) (Action, bool)
}
