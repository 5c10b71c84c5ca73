package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/railpath/internal/signs"
)

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// RegisteredAction holds the compiled Go parts of a sign type.
type RegisteredAction struct {
	Description string
	// MinArgs and MaxArgs bound the number of sign arguments. A negative
	// MaxArgs means no upper bound.
	MinArgs int
	MaxArgs int
	// Facing reports whether the sign may carry a facing direction.
	Facing bool

	OnRoute   func(ev *signs.RoutingEvent)
	OnPredict func(ev *signs.PredictingEvent)
}

// Route implements signs.Action.
func (a *RegisteredAction) Route(ev *signs.RoutingEvent) {
	if a.OnRoute != nil {
		a.OnRoute(ev)
	}
}

// Predict implements signs.Action.
func (a *RegisteredAction) Predict(ev *signs.PredictingEvent) {
	if a.OnPredict != nil {
		a.OnPredict(ev)
	}
}

// Registry holds all registered sign actions for a single application
// instance.
type Registry struct {
	actions map[string]*RegisteredAction
}

var _ signs.Actions = (*Registry)(nil)

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{actions: make(map[string]*RegisteredAction)}
}

// RegisterAction registers the Go implementation of a sign type.
func (r *Registry) RegisterAction(signType string, action *RegisteredAction) {
	if _, exists := r.actions[signType]; exists {
		panic(fmt.Sprintf("action for sign type '%s' already registered", signType))
	}
	slog.Debug("Registering sign action.", "type", signType)
	r.actions[signType] = action
}

// Action implements signs.Actions.
func (r *Registry) Action(signType string) (signs.Action, bool) {
	a, ok := r.actions[signType]
	if !ok {
		return nil, false
	}
	return a, true
}

// Lookup returns the registered action for signType.
func (r *Registry) Lookup(signType string) (*RegisteredAction, bool) {
	a, ok := r.actions[signType]
	return a, ok
}

// Types returns every registered sign type, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.actions))
	for t := range r.actions {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// RegisterModules registers every module into r.
func (r *Registry) RegisterModules(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}
