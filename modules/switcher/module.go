// Package switcher implements the "switcher" sign. During discovery it marks
// its block as a switchable junction node; during prediction it sets the
// junction towards the train's destination.
package switcher

import (
	"slices"

	"github.com/specialistvlad/railpath/internal/registry"
	"github.com/specialistvlad/railpath/internal/signs"
	"github.com/specialistvlad/railpath/internal/track"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRoute creates a switchable node at the sign.
func OnRoute(ev *signs.RoutingEvent) {
	ev.CreateNode().SetRailSwitchable(true)
}

// OnPredict selects the junction leading along the shortest route to the
// train's destination. Trains without a reachable destination are left on
// the default path.
func OnPredict(ev *signs.PredictingEvent) {
	g := ev.Group()
	if g == nil || g.Destination() == "" {
		return
	}
	node := ev.World().NodeAt(ev.Location())
	if node == nil {
		return
	}
	first, ok := node.FindConnection(g.Destination()).Connection()
	if !ok {
		return
	}

	network := ev.World().Network()
	if network == nil {
		return
	}
	i := slices.IndexFunc(network.Junctions(ev.Location()), func(j track.Junction) bool {
		return j.Direction == first.Direction
	})
	if i < 0 {
		ev.World().Graph().Logger().Debug("Route leaves through a missing junction",
			"location", ev.Location().String(), "direction", first.Direction.String())
		return
	}
	ev.SetSwitchedJunction(network.Junctions(ev.Location())[i])
}

// Register registers the sign action with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAction("switcher", &registry.RegisteredAction{
		Description: "Switchable junction routing trains to their destination.",
		MaxArgs:     0,
		OnRoute:     OnRoute,
		OnPredict:   OnPredict,
	})
}
