package contract

import (
	"fmt"

	"github.com/apipact-io/apipact/internal/schema"
)

// DefaultExpectedStatus is assumed when a contract does not name one.
const DefaultExpectedStatus = 200

var allowedMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"DELETE": true,
	"PATCH":  true,
}

// Contract describes the expected interface of one endpoint: its request
// and response shapes, status code and headers. Contracts are assembled
// once through a Builder and read-only afterwards.
type Contract struct {
	Name           string            `json:"name" yaml:"name"`
	Method         string            `json:"method" yaml:"method"`
	Path           string            `json:"path" yaml:"path"`
	Description    string            `json:"description,omitempty" yaml:"description,omitempty"`
	RequestSchema  *schema.Schema    `json:"request_schema,omitempty" yaml:"requestSchema,omitempty"`
	ResponseSchema *schema.Schema    `json:"response_schema,omitempty" yaml:"responseSchema,omitempty"`
	ExpectedStatus int               `json:"expected_status" yaml:"expectedStatus"`
	Headers        map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// Key returns the registry key for the contract.
func (c *Contract) Key() string {
	return c.Method + ":" + c.Path
}

// Builder assembles a Contract through a fluent chain. Build performs the
// validity checks, so a half-built contract can never escape.
type Builder struct {
	contract Contract
}

// NewBuilder starts a contract for the given endpoint.
func NewBuilder(name, method, path string) *Builder {
	return &Builder{contract: Contract{
		Name:           name,
		Method:         method,
		Path:           path,
		ExpectedStatus: DefaultExpectedStatus,
	}}
}

// WithDescription sets a human-readable description.
func (b *Builder) WithDescription(description string) *Builder {
	b.contract.Description = description
	return b
}

// WithRequestSchema sets the expected request body schema.
func (b *Builder) WithRequestSchema(s *schema.Schema) *Builder {
	b.contract.RequestSchema = s
	return b
}

// WithResponseSchema sets the expected response body schema.
func (b *Builder) WithResponseSchema(s *schema.Schema) *Builder {
	b.contract.ResponseSchema = s
	return b
}

// WithStatus sets the expected HTTP status code.
func (b *Builder) WithStatus(status int) *Builder {
	b.contract.ExpectedStatus = status
	return b
}

// WithHeader adds an expected response header with an exact value.
func (b *Builder) WithHeader(name, value string) *Builder {
	if b.contract.Headers == nil {
		b.contract.Headers = make(map[string]string)
	}
	b.contract.Headers[name] = value
	return b
}

// Build validates and returns the finished contract.
func (b *Builder) Build() (*Contract, error) {
	c := b.contract
	if c.Name == "" {
		return nil, fmt.Errorf("contract name must not be empty")
	}
	if !allowedMethods[c.Method] {
		return nil, fmt.Errorf("contract %s: unsupported method %q", c.Name, c.Method)
	}
	if c.Path == "" {
		return nil, fmt.Errorf("contract %s: path must not be empty", c.Name)
	}
	if err := c.RequestSchema.Check(); err != nil {
		return nil, fmt.Errorf("contract %s: request schema: %w", c.Name, err)
	}
	if err := c.ResponseSchema.Check(); err != nil {
		return nil, fmt.Errorf("contract %s: response schema: %w", c.Name, err)
	}
	return &c, nil
}

// MustBuild is Build for statically declared contracts, where a failure is
// a programming error.
func (b *Builder) MustBuild() *Contract {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

// Compare reports the differences between two contracts that claim the same
// interface. Teams exchanging contracts use it to spot drift before running
// anything.
func Compare(a, b *Contract) (compatible bool, differences []string) {
	if a.Method != b.Method {
		differences = append(differences, fmt.Sprintf("method mismatch: %s vs %s", a.Method, b.Method))
	}
	if a.Path != b.Path {
		differences = append(differences, fmt.Sprintf("path mismatch: %s vs %s", a.Path, b.Path))
	}
	if a.ExpectedStatus != b.ExpectedStatus {
		differences = append(differences, fmt.Sprintf("status mismatch: %d vs %d", a.ExpectedStatus, b.ExpectedStatus))
	}
	return len(differences) == 0, differences
}
