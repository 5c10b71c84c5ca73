// Package speedlimit implements the "speedlimit" sign. A train passing the
// sign is limited to the given speed, optionally for a number of blocks past
// the sign.
package speedlimit

import (
	"strconv"

	"github.com/specialistvlad/railpath/internal/pathfinding"
	"github.com/specialistvlad/railpath/internal/registry"
	"github.com/specialistvlad/railpath/internal/signs"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Args are the parsed sign arguments: `limit [blocks]`.
type Args struct {
	Limit  float64
	Blocks int
}

// ParseArgs parses the sign arguments.
func ParseArgs(args []string) (Args, error) {
	var out Args
	var err error
	if len(args) > 0 {
		if out.Limit, err = strconv.ParseFloat(args[0], 64); err != nil {
			return Args{}, err
		}
	}
	if len(args) > 1 {
		if out.Blocks, err = strconv.Atoi(args[1]); err != nil {
			return Args{}, err
		}
	}
	return out, nil
}

// OnPredict applies the limit at the sign and keeps it for the following
// blocks.
func OnPredict(ev *signs.PredictingEvent) {
	args, err := ParseArgs(ev.Sign().Args)
	if err != nil {
		ev.World().Graph().Logger().Warn("Ignoring malformed speed limit sign",
			"location", ev.Location().String(), "args", ev.Sign().Args, "error", err)
		return
	}
	ev.AddSpeedLimit(args.Limit)
	if args.Blocks > 0 {
		limit := args.Limit
		ev.TrackBlock(ev.Location(), args.Blocks, pathfinding.BlockHandlerFunc(
			func(pe *pathfinding.PredictEvent, _ int) { pe.AddSpeedLimit(limit) },
		))
	}
}

// Register registers the sign action with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAction("speedlimit", &registry.RegisteredAction{
		Description: "Limits train speed at and after the sign.",
		MinArgs:     1,
		MaxArgs:     2,
		Facing:      true,
		OnPredict:   OnPredict,
	})
}
