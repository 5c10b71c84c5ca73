package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/railpath/internal/config"
	"github.com/specialistvlad/railpath/internal/ctxlog"
	"github.com/specialistvlad/railpath/internal/track"
)

// ValidateLayout performs a strict parity check between the signs placed in
// a layout and the registered Go actions. It checks that every sign type is
// known and that its arguments fit the action's contract.
func (r *Registry) ValidateLayout(ctx context.Context, model *config.Model) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	used := make(map[string]int)
	for _, w := range model.Worlds {
		for _, s := range w.Signs {
			used[s.Type]++
			action, ok := r.actions[s.Type]
			if !ok {
				errs = append(errs, fmt.Sprintf("sign '%s' at %s: no action registered for this type", s.Type, s.At))
				continue
			}
			if len(s.Args) < action.MinArgs {
				errs = append(errs, fmt.Sprintf("sign '%s' at %s: needs at least %d argument(s), got %d", s.Type, s.At, action.MinArgs, len(s.Args)))
			}
			if action.MaxArgs >= 0 && len(s.Args) > action.MaxArgs {
				errs = append(errs, fmt.Sprintf("sign '%s' at %s: accepts at most %d argument(s), got %d", s.Type, s.At, action.MaxArgs, len(s.Args)))
			}
			if s.Facing != track.Invalid && !action.Facing {
				errs = append(errs, fmt.Sprintf("sign '%s' at %s: does not support a facing direction", s.Type, s.At))
			}
		}
	}

	for _, t := range r.Types() {
		if used[t] == 0 {
			logger.Debug("Registered sign type is not used by the layout.", "type", t)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}
