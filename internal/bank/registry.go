package bank

import (
	"sort"
	"strings"
)

// Registry maps bank keys to configurations. It is constructed explicitly
// at startup and passed to callers; there is no process-wide singleton.
type Registry struct {
	configs map[string]*Config
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{configs: make(map[string]*Config)}
}

// Register adds a configuration. Panics on duplicate bank key.
func (r *Registry) Register(cfg *Config) {
	key := strings.ToLower(cfg.Bank)
	if _, ok := r.configs[key]; ok {
		panic("duplicate bank key: " + key)
	}
	r.configs[key] = cfg
}

// Get returns the configuration for a bank key, or nil.
func (r *Registry) Get(key string) *Config {
	return r.configs[strings.ToLower(key)]
}

// Banks returns the registered bank keys, sorted.
func (r *Registry) Banks() []string {
	keys := make([]string, 0, len(r.configs))
	for k := range r.configs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultRegistry returns a registry with the built-in bank configurations.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(SBI())
	r.Register(ICICI())
	return r
}
