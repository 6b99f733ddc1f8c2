package schema

import (
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Model)
)

// register adds a model to the process-wide registry. Called by New;
// redeclaring a name replaces the earlier entry.
func register(m *Model) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[m.name] = m
}

// Lookup retrieves a registered model by name. Foreign keys use it to
// resolve string targets at DDL-render time.
func Lookup(name string) (*Model, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	m, ok := registry[name]
	return m, ok
}

// Models returns all registered model names (sorted).
func Models() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
