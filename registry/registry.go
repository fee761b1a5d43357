package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/rediwo/redi-query/types"
)

// Registry maps URL schemes to database drivers. It is constructed once at
// startup, populated, and read-only afterwards; components that need
// lookups receive it explicitly rather than through package state.
type Registry struct {
	mu      sync.RWMutex
	drivers map[string]types.Driver
}

// New creates an empty driver registry
func New() *Registry {
	return &Registry{
		drivers: make(map[string]types.Driver),
	}
}

// Register inserts the driver under every scheme its descriptor owns.
// Registration order is insignificant. Re-registering a scheme silently
// replaces the previous driver: last write wins.
func (r *Registry) Register(driver types.Driver) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, scheme := range driver.Descriptor().Schemes {
		r.drivers[strings.ToLower(scheme)] = driver
	}
}

// Resolve looks up a driver by scheme or driver type, case-insensitively.
// Returns nil when nothing is registered for the name.
func (r *Registry) Resolve(name string) types.Driver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.drivers[strings.ToLower(name)]
}

// Drivers returns every registered driver exactly once
func (r *Registry) Drivers() []types.Driver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[types.DriverType]bool)
	var drivers []types.Driver
	for _, driver := range r.drivers {
		dt := driver.Descriptor().Type
		if !seen[dt] {
			seen[dt] = true
			drivers = append(drivers, driver)
		}
	}
	return drivers
}

// CommentMarkers aggregates the comment markers of every registered
// driver, deduplicated and sorted. The header parser builds its
// recognition pattern from this set.
func (r *Registry) CommentMarkers() []string {
	seen := make(map[string]bool)
	var markers []string
	for _, driver := range r.Drivers() {
		for _, marker := range driver.Descriptor().CommentMarkers {
			if !seen[marker] {
				seen[marker] = true
				markers = append(markers, marker)
			}
		}
	}
	sort.Strings(markers)
	return markers
}
