package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LayoutPath string // hcl files

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	// MaxTicks overrides the layout's max_ticks when positive.
	MaxTicks int
	// Reroute drops every restored connection and rediscovers the graph,
	// for when the track changed since the graph was saved.
	Reroute bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.LayoutPath == "" {
		return nil, errors.New("LayoutPath is a required configuration field and cannot be empty")
	}
	if cfg.MaxTicks < 0 {
		return nil, errors.New("MaxTicks cannot be negative")
	}
	return &cfg, nil
}
