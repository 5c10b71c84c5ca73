// Package schema holds the gohcl decoding targets for layout files.
package schema

// --- Layout Structures ---

// Settings represents a `settings` block. Every attribute is optional; unset
// attributes keep the value from an earlier block or the default.
type Settings struct {
	TickInterval  *string `hcl:"tick_interval,optional"`
	TickBudget    *string `hcl:"tick_budget,optional"`
	StepsPerCheck *int    `hcl:"steps_per_check,optional"`
	CacheSize     *int    `hcl:"cache_size,optional"`
	MaxTicks      *int    `hcl:"max_ticks,optional"`
	Store         *string `hcl:"store,optional"`
	StorePath     *string `hcl:"store_path,optional"`
	RoutesPath    *string `hcl:"routes_path,optional"`
	SaveOnChange  *bool   `hcl:"save_on_change,optional"`
	TraceExporter *string `hcl:"trace_exporter,optional"`
	TraceEndpoint *string `hcl:"trace_endpoint,optional"`
	TraceInsecure *bool   `hcl:"trace_insecure,optional"`
}

// Track represents a `track` block: straight segments joining each point to
// the next. Points are [x, y, z] triples.
type Track struct {
	Label  string  `hcl:"label,label"`
	Points [][]int `hcl:"points"`
}

// Sign represents a `sign` block attached to the rail block at `at`.
type Sign struct {
	Type   string   `hcl:"type,label"`
	At     []int    `hcl:"at"`
	Args   []string `hcl:"args,optional"`
	Facing string   `hcl:"facing,optional"`
}

// World represents a `world` block.
type World struct {
	Name   string   `hcl:"name,label"`
	Tracks []*Track `hcl:"track,block"`
	Signs  []*Sign  `hcl:"sign,block"`
}

// Route represents a `route` block.
type Route struct {
	Name         string   `hcl:"name,label"`
	Destinations []string `hcl:"destinations"`
}

// Train represents a `train` block. Either Route or Destination names where
// the train is heading.
type Train struct {
	Name        string `hcl:"name,label"`
	World       string `hcl:"world"`
	At          []int  `hcl:"at"`
	Direction   string `hcl:"direction"`
	Route       string `hcl:"route,optional"`
	Destination string `hcl:"destination,optional"`
	Speed       *int   `hcl:"speed,optional"`
}

// File represents the top-level structure of a layout file. Any block may
// appear in any file; unknown blocks are rejected.
type File struct {
	Settings []*Settings `hcl:"settings,block"`
	Worlds   []*World    `hcl:"world,block"`
	Routes   []*Route    `hcl:"route,block"`
	Trains   []*Train    `hcl:"train,block"`
}
