// Package destination implements the "destination" sign: it turns its block
// into a named path node and tells arriving trains they reached it.
package destination

import (
	"github.com/specialistvlad/railpath/internal/registry"
	"github.com/specialistvlad/railpath/internal/signs"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Arriver is implemented by train groups that react to reaching their
// destination.
type Arriver interface {
	ArriveAt(name string)
}

// OnRoute creates the node at the sign and binds the destination name to it.
func OnRoute(ev *signs.RoutingEvent) {
	name := ev.Sign().Arg(0)
	n := ev.CreateNode()
	if err := n.AddName(name); err != nil {
		ev.World().Graph().Logger().Warn("Destination name rejected",
			"name", name, "location", ev.Location().String(), "error", err)
	}
}

// OnPredict notifies a train whose destination is this sign.
func OnPredict(ev *signs.PredictingEvent) {
	g := ev.Group()
	if g == nil {
		return
	}
	name := ev.Sign().Arg(0)
	if g.Destination() != name {
		return
	}
	if a, ok := g.(Arriver); ok {
		a.ArriveAt(name)
	}
}

// Register registers the sign action with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAction("destination", &registry.RegisteredAction{
		Description: "Named routing destination.",
		MinArgs:     1,
		MaxArgs:     1,
		OnRoute:     OnRoute,
		OnPredict:   OnPredict,
	})
}
