package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/apipact-io/apipact/internal/metrics"
)

// Stub is one canned response keyed by method and path.
type Stub struct {
	Method     string
	Path       string
	Response   any
	StatusCode int
	Headers    map[string]string
}

// RecordedRequest is one request the mock server has seen.
type RecordedRequest struct {
	ID     string    `json:"id"`
	Method string    `json:"method"`
	Path   string    `json:"path"`
	Body   any       `json:"body,omitempty"`
	Time   time.Time `json:"time"`
}

// Server simulates an API for testing. Every request is matched against
// registered stubs through a catch-all route; unmatched requests get an
// explicit 404 so a missing stub is never mistaken for an empty response.
type Server struct {
	Name   string
	engine *gin.Engine

	mu      sync.Mutex
	stubs   map[string]Stub
	history []RecordedRequest
}

// NewServer creates a mock server.
func NewServer(name string) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		Name:   name,
		engine: gin.New(),
		stubs:  make(map[string]Stub),
	}
	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	s.engine.NoRoute(s.handle)
	return s
}

// AddStub registers a canned response. A zero status code defaults to 200;
// re-registering a method and path replaces the previous stub.
func (s *Server) AddStub(stub Stub) {
	if stub.StatusCode == 0 {
		stub.StatusCode = 200
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubs[stub.Method+":"+stub.Path] = stub
}

// Handler returns the server's HTTP handler, for mounting under httptest or
// a real listener.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the mocks on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) handle(c *gin.Context) {
	var body any
	if data, err := io.ReadAll(c.Request.Body); err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, &body)
	}

	s.mu.Lock()
	s.history = append(s.history, RecordedRequest{
		ID:     uuid.NewString(),
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Body:   body,
		Time:   time.Now(),
	})
	stub, ok := s.stubs[c.Request.Method+":"+c.Request.URL.Path]
	s.mu.Unlock()

	if !ok {
		metrics.MockHits.WithLabelValues("miss").Inc()
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Mock not found",
			"message": "No mock defined for " + c.Request.Method + " " + c.Request.URL.Path,
		})
		return
	}

	metrics.MockHits.WithLabelValues("hit").Inc()
	for header, value := range stub.Headers {
		c.Header(header, value)
	}
	c.JSON(stub.StatusCode, stub.Response)
}

// History returns a copy of every request the server has recorded.
func (s *Server) History() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory drops the recorded requests.
func (s *Server) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// NewUserServer creates a mock server preloaded with stubs for the user
// API.
func NewUserServer() *Server {
	s := NewServer("UserMockServer")

	listUsers, _ := CannedResponse("user", "list_users")
	s.AddStub(Stub{Method: "GET", Path: "/api/users", Response: listUsers})

	getUser, _ := CannedResponse("user", "get_user")
	s.AddStub(Stub{Method: "GET", Path: "/api/users/1", Response: getUser})

	createUser, _ := CannedResponse("user", "create_user")
	s.AddStub(Stub{Method: "POST", Path: "/api/users", Response: createUser, StatusCode: 201})

	return s
}
