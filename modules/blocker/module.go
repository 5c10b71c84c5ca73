// Package blocker implements the "blocker" sign. It stops route discovery
// and trains travelling in its facing direction.
package blocker

import (
	"github.com/specialistvlad/railpath/internal/registry"
	"github.com/specialistvlad/railpath/internal/signs"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRoute ends discovery walks at the sign.
func OnRoute(ev *signs.RoutingEvent) {
	ev.SetBlocked()
}

// OnPredict stops the train in front of the sign.
func OnPredict(ev *signs.PredictingEvent) {
	ev.AddSpeedLimit(0)
	ev.SetBlocked()
}

// Register registers the sign action with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAction("blocker", &registry.RegisteredAction{
		Description: "Blocks routing and trains, optionally in one direction only.",
		MaxArgs:     0,
		Facing:      true,
		OnRoute:     OnRoute,
		OnPredict:   OnPredict,
	})
}
