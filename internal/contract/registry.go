package contract

import "sync"

// Registry stores contracts keyed by method and path. The last registration
// for a key wins; iteration order is unspecified.
type Registry struct {
	mu        sync.RWMutex
	contracts map[string]*Contract
}

// NewRegistry creates an empty contract registry.
func NewRegistry() *Registry {
	return &Registry{contracts: make(map[string]*Contract)}
}

// Register inserts or overwrites the contract for its method and path.
func (r *Registry) Register(c *Contract) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contracts[c.Key()] = c
}

// Get returns the contract registered for the exact method and path.
func (r *Registry) Get(method, path string) (*Contract, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contracts[method+":"+path]
	return c, ok
}

// GetByPath returns every contract registered for path, across methods.
func (r *Registry) GetByPath(path string) []*Contract {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Contract
	for _, c := range r.contracts {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// All returns every registered contract.
func (r *Registry) All() []*Contract {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Contract, 0, len(r.contracts))
	for _, c := range r.contracts {
		out = append(out, c)
	}
	return out
}

// Len returns the number of registered contracts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contracts)
}
