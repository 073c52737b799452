// Package docs holds API documentation data structures and the validator
// that checks a live API against them.
package docs

import (
	"github.com/apipact-io/apipact/internal/schema"
)

// EndpointSpec documents one operation: what it expects and what it
// returns.
type EndpointSpec struct {
	Description    string         `json:"description" yaml:"description"`
	RequestSchema  *schema.Schema `json:"request_schema,omitempty" yaml:"requestSchema,omitempty"`
	ResponseSchema *schema.Schema `json:"response_schema,omitempty" yaml:"responseSchema,omitempty"`
	StatusCode     int            `json:"status_code" yaml:"statusCode"`
}

// Specification is an API's documentation: a title, a version and a
// path-to-method endpoint table.
type Specification struct {
	Title     string
	Version   string
	BaseURL   string
	endpoints map[string]map[string]EndpointSpec
}

// NewSpecification creates an empty API specification.
func NewSpecification(title, version, baseURL string) *Specification {
	return &Specification{
		Title:     title,
		Version:   version,
		BaseURL:   baseURL,
		endpoints: make(map[string]map[string]EndpointSpec),
	}
}

// AddEndpoint documents one operation. A zero status code defaults to 200.
func (s *Specification) AddEndpoint(path, method string, spec EndpointSpec) {
	if spec.StatusCode == 0 {
		spec.StatusCode = 200
	}
	if s.endpoints[path] == nil {
		s.endpoints[path] = make(map[string]EndpointSpec)
	}
	s.endpoints[path][method] = spec
}

// Endpoint returns the documentation for one operation.
func (s *Specification) Endpoint(path, method string) (EndpointSpec, bool) {
	spec, ok := s.endpoints[path][method]
	return spec, ok
}

// Endpoints returns the full endpoint table.
func (s *Specification) Endpoints() map[string]map[string]EndpointSpec {
	return s.endpoints
}

// SampleSpecification documents the demo user API.
func SampleSpecification(baseURL string) *Specification {
	spec := NewSpecification("User Management API", "1.0.0", baseURL)

	spec.AddEndpoint("/api/users", "GET", EndpointSpec{
		Description:    "Get list of all users",
		ResponseSchema: schema.UserListResponse(),
		StatusCode:     200,
	})
	spec.AddEndpoint("/api/users/1", "GET", EndpointSpec{
		Description:    "Get user by ID",
		ResponseSchema: schema.UserResponse(),
		StatusCode:     200,
	})
	spec.AddEndpoint("/api/users", "POST", EndpointSpec{
		Description:    "Create a new user",
		RequestSchema:  schema.CreateUserRequest(),
		ResponseSchema: schema.UserResponse(),
		StatusCode:     201,
	})

	return spec
}
