package mock

import "sync"

// Manager tracks named mock servers and which of them are active.
type Manager struct {
	mu     sync.Mutex
	mocks  map[string]*Server
	active map[string]bool
}

// NewManager creates an empty mock manager.
func NewManager() *Manager {
	return &Manager{
		mocks:  make(map[string]*Server),
		active: make(map[string]bool),
	}
}

// Register stores a mock server under name.
func (m *Manager) Register(name string, server *Server) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mocks[name] = server
}

// Activate marks a registered mock as active. Unknown names are ignored.
func (m *Manager) Activate(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.mocks[name]; ok {
		m.active[name] = true
	}
}

// Deactivate marks a mock inactive.
func (m *Manager) Deactivate(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, name)
}

// IsActive reports whether the named mock is active.
func (m *Manager) IsActive(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active[name]
}

// Get returns the mock server registered under name.
func (m *Manager) Get(name string) (*Server, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.mocks[name]
	return s, ok
}

// ClearAllHistory drops the recorded requests of every registered mock.
func (m *Manager) ClearAllHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, server := range m.mocks {
		server.ClearHistory()
	}
}

// Scenario is a named set of stubs applied to a server together, so a test
// can switch the whole mock surface in one call.
type Scenario struct {
	Name  string
	stubs []Stub
}

// NewScenario creates an empty scenario.
func NewScenario(name string) *Scenario {
	return &Scenario{Name: name}
}

// Add appends a stub to the scenario. A zero status defaults to 200.
func (s *Scenario) Add(method, path string, response any, status int) *Scenario {
	s.stubs = append(s.stubs, Stub{
		Method:     method,
		Path:       path,
		Response:   response,
		StatusCode: status,
	})
	return s
}

// Apply registers every stub of the scenario on the server.
func (s *Scenario) Apply(server *Server) {
	for _, stub := range s.stubs {
		server.AddStub(stub)
	}
}

// Len returns the number of stubs in the scenario.
func (s *Scenario) Len() int {
	return len(s.stubs)
}
