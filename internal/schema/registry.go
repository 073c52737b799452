package schema

import (
	"fmt"
	"sync"
)

// Registry is a named store of schemas shared by contract definitions and
// the OpenAPI generator.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry creates an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Register stores a schema under name, replacing any previous registration.
// It rejects malformed schemas so a bad definition fails at startup instead
// of during a test run.
func (r *Registry) Register(name string, s *Schema) error {
	if err := s.Check(); err != nil {
		return fmt.Errorf("schema %q: %w", name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[name] = s
	return nil
}

// Get returns the schema registered under name.
func (r *Registry) Get(name string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[name]
	return s, ok
}

// All returns a copy of the name-to-schema table.
func (r *Registry) All() map[string]*Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*Schema, len(r.schemas))
	for name, s := range r.schemas {
		out[name] = s
	}
	return out
}
