package hcl

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/railpath/internal/config"
	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/schema"
	"github.com/specialistvlad/railpath/internal/track"
)

func translateSettings(dst *config.Settings, s *schema.Settings) error {
	var err error
	if s.TickInterval != nil {
		if dst.TickInterval, err = parsePositiveDuration("tick_interval", *s.TickInterval); err != nil {
			return err
		}
	}
	if s.TickBudget != nil {
		if dst.TickBudget, err = parsePositiveDuration("tick_budget", *s.TickBudget); err != nil {
			return err
		}
	}
	if s.StepsPerCheck != nil {
		dst.StepsPerCheck = *s.StepsPerCheck
	}
	if s.CacheSize != nil {
		dst.CacheSize = *s.CacheSize
	}
	if s.MaxTicks != nil {
		dst.MaxTicks = *s.MaxTicks
	}
	if s.Store != nil {
		switch *s.Store {
		case config.StoreMemory, config.StoreFile, config.StoreBadger:
			dst.Store = *s.Store
		default:
			return fmt.Errorf("settings: unknown store %q (want memory, file or badger)", *s.Store)
		}
	}
	if s.StorePath != nil {
		dst.StorePath = *s.StorePath
	}
	if s.RoutesPath != nil {
		dst.RoutesPath = *s.RoutesPath
	}
	if s.SaveOnChange != nil {
		dst.SaveOnChange = *s.SaveOnChange
	}
	if s.TraceExporter != nil {
		switch *s.TraceExporter {
		case config.TraceNone, config.TraceStdout, config.TraceOTLP:
			dst.TraceExporter = *s.TraceExporter
		default:
			return fmt.Errorf("settings: unknown trace_exporter %q (want none, stdout or otlp)", *s.TraceExporter)
		}
	}
	if s.TraceEndpoint != nil {
		dst.TraceEndpoint = *s.TraceEndpoint
	}
	if s.TraceInsecure != nil {
		dst.TraceInsecure = *s.TraceInsecure
	}
	return nil
}

func parsePositiveDuration(attr, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("settings: %s: %w", attr, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("settings: %s must be positive, got %s", attr, raw)
	}
	return d, nil
}

func translateWorld(w *schema.World) (*config.World, error) {
	out := &config.World{Name: w.Name}
	for _, t := range w.Tracks {
		tr := &config.Track{Label: t.Label}
		for i, p := range t.Points {
			loc, err := railloc.FromSlice(w.Name, p)
			if err != nil {
				return nil, fmt.Errorf("world %q track %q point %d: %w", w.Name, t.Label, i, err)
			}
			tr.Points = append(tr.Points, loc)
		}
		out.Tracks = append(out.Tracks, tr)
	}
	for _, s := range w.Signs {
		loc, err := railloc.FromSlice(w.Name, s.At)
		if err != nil {
			return nil, fmt.Errorf("world %q sign %q: %w", w.Name, s.Type, err)
		}
		facing := track.Invalid
		if s.Facing != "" {
			if facing, err = track.ParseDirection(s.Facing); err != nil {
				return nil, fmt.Errorf("world %q sign %q at %s: %w", w.Name, s.Type, loc, err)
			}
		}
		out.Signs = append(out.Signs, &config.Sign{Type: s.Type, At: loc, Args: s.Args, Facing: facing})
	}
	return out, nil
}

func translateTrain(t *schema.Train) (*config.Train, error) {
	loc, err := railloc.FromSlice(t.World, t.At)
	if err != nil {
		return nil, fmt.Errorf("train %q: %w", t.Name, err)
	}
	dir, err := track.ParseDirection(t.Direction)
	if err != nil {
		return nil, fmt.Errorf("train %q: %w", t.Name, err)
	}
	out := &config.Train{
		Name:        t.Name,
		World:       t.World,
		At:          loc,
		Direction:   dir,
		Route:       t.Route,
		Destination: t.Destination,
	}
	if t.Speed != nil {
		out.Speed = *t.Speed
	}
	return out, nil
}

// validateModel checks references between blocks once every file is merged.
func validateModel(m *config.Model) error {
	var errs []error
	routes := make(map[string]bool, len(m.Routes))
	for _, r := range m.Routes {
		if routes[r.Name] {
			errs = append(errs, fmt.Errorf("route %q is defined more than once", r.Name))
		}
		routes[r.Name] = true
	}
	trains := make(map[string]bool, len(m.Trains))
	for _, t := range m.Trains {
		if trains[t.Name] {
			errs = append(errs, fmt.Errorf("train %q is defined more than once", t.Name))
		}
		trains[t.Name] = true
		if m.World(t.World) == nil {
			errs = append(errs, fmt.Errorf("train %q: unknown world %q", t.Name, t.World))
		}
		if t.Route != "" && t.Destination != "" {
			errs = append(errs, fmt.Errorf("train %q: route and destination are mutually exclusive", t.Name))
		}
	}
	return errors.Join(errs...)
}
