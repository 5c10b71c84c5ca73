package config

import (
	"time"

	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/track"
)

// Model is the unified, format-agnostic representation of the entire
// application configuration.
type Model struct {
	Settings Settings
	Worlds   []*World
	Routes   []*Route
	Trains   []*Train
}

// Store kinds accepted by Settings.Store.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreBadger = "badger"
)

// Trace exporters accepted by Settings.TraceExporter.
const (
	TraceNone   = "none"
	TraceStdout = "stdout"
	TraceOTLP   = "otlp"
)

// Settings tunes the host loop, discovery and persistence.
type Settings struct {
	TickInterval  time.Duration
	TickBudget    time.Duration
	StepsPerCheck int
	CacheSize     int
	// MaxTicks stops the host loop after that many ticks; 0 runs until
	// cancelled.
	MaxTicks     int
	Store        string
	StorePath    string
	RoutesPath   string
	SaveOnChange bool

	// TraceExporter selects where store spans go. TraceEndpoint and
	// TraceInsecure only apply to TraceOTLP.
	TraceExporter string
	TraceEndpoint string
	TraceInsecure bool
}

// DefaultSettings returns the settings used for anything a layout leaves out.
func DefaultSettings() Settings {
	return Settings{
		TickInterval:  50 * time.Millisecond,
		TickBudget:    5 * time.Millisecond,
		StepsPerCheck: 100,
		CacheSize:     4096,
		Store:         StoreMemory,
		TraceExporter: TraceNone,
	}
}

// World is the format-agnostic representation of a `world` block.
type World struct {
	Name   string
	Tracks []*Track
	Signs  []*Sign
}

// Track is a polyline of straight track segments.
type Track struct {
	Label  string
	Points []railloc.Location
}

// Sign is a track-side behavior attached to a rail block.
type Sign struct {
	Type string
	At   railloc.Location
	Args []string
	// Facing limits the sign to trains travelling in this direction;
	// track.Invalid means any direction.
	Facing track.Direction
}

// Route is a named, ordered list of destinations.
type Route struct {
	Name         string
	Destinations []string
}

// Train is a simulated train placed on the track at startup.
type Train struct {
	Name        string
	World       string
	At          railloc.Location
	Direction   track.Direction
	Route       string
	Destination string
	// Speed is in blocks per tick; 0 means the default of 1.
	Speed int
}

// World returns the world with the given name, or nil.
func (m *Model) World(name string) *World {
	for _, w := range m.Worlds {
		if w.Name == name {
			return w
		}
	}
	return nil
}
