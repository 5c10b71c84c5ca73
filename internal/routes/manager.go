// Package routes stores named routes: ordered lists of destination names a
// train visits in turn.
package routes

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// Manager holds every named route.
type Manager struct {
	routes map[string][]string
	dirty  bool
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{routes: make(map[string][]string)}
}

// Get returns a copy of the destinations of route name, or nil.
func (m *Manager) Get(name string) []string {
	return slices.Clone(m.routes[name])
}

// Store sets the destinations of route name. Storing an empty list removes
// the route.
func (m *Manager) Store(name string, destinations []string) {
	if len(destinations) == 0 {
		m.Remove(name)
		return
	}
	if slices.Equal(m.routes[name], destinations) {
		return
	}
	m.routes[name] = slices.Clone(destinations)
	m.dirty = true
}

// Remove deletes route name and reports whether it existed.
func (m *Manager) Remove(name string) bool {
	if _, ok := m.routes[name]; !ok {
		return false
	}
	delete(m.routes, name)
	m.dirty = true
	return true
}

// Names returns the route names, sorted.
func (m *Manager) Names() []string {
	out := make([]string, 0, len(m.routes))
	for name := range m.routes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of routes.
func (m *Manager) Len() int { return len(m.routes) }

// IsDirty reports whether routes changed since the last Load or Save.
func (m *Manager) IsDirty() bool { return m.dirty }

// MissingDestinations returns, per route, the destinations known reports as
// unknown. Routes without missing destinations are omitted.
func (m *Manager) MissingDestinations(known func(name string) bool) map[string][]string {
	out := make(map[string][]string)
	for name, dests := range m.routes {
		for _, d := range dests {
			if !known(d) {
				out[name] = append(out[name], d)
			}
		}
	}
	return out
}

// Load replaces the routes with the contents of a YAML file mapping route
// names to destination lists. A missing file leaves the manager empty.
func (m *Manager) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		m.routes = make(map[string][]string)
		m.dirty = false
		return nil
	}
	if err != nil {
		return fmt.Errorf("read routes: %w", err)
	}

	loaded := make(map[string][]string)
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("decode routes %s: %w", path, err)
	}
	for name, dests := range loaded {
		if len(dests) == 0 {
			delete(loaded, name)
		}
	}
	m.routes = loaded
	m.dirty = false
	return nil
}

// Save writes every route to path, replacing the file atomically.
func (m *Manager) Save(path string) error {
	data, err := yaml.Marshal(m.routes)
	if err != nil {
		return fmt.Errorf("encode routes: %w", err)
	}
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("write routes: %w", err)
	}
	m.dirty = false
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".routes-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
