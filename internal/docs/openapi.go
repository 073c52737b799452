package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/apipact-io/apipact/internal/contract"
	"github.com/apipact-io/apipact/internal/schema"
)

// OpenAPIDocument is a simplified OpenAPI 3.0 document.
type OpenAPIDocument struct {
	OpenAPI string                          `json:"openapi" yaml:"openapi"`
	Info    OpenAPIInfo                     `json:"info" yaml:"info"`
	Paths   map[string]map[string]Operation `json:"paths" yaml:"paths"`
}

// OpenAPIInfo is the document's metadata block.
type OpenAPIInfo struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Operation describes one method on one path.
type Operation struct {
	Summary     string                     `json:"summary" yaml:"summary"`
	RequestBody *RequestBody               `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]OpenAPIResponse `json:"responses" yaml:"responses"`
}

// RequestBody describes an operation's request payload.
type RequestBody struct {
	Required bool                 `json:"required" yaml:"required"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

// OpenAPIResponse describes one response status.
type OpenAPIResponse struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType wraps a schema for one content type.
type MediaType struct {
	Schema *schema.Schema `json:"schema" yaml:"schema"`
}

// OpenAPIGenerator assembles an OpenAPI document from endpoint
// registrations. It is a pure data transform: no validation happens here.
type OpenAPIGenerator struct {
	doc OpenAPIDocument
}

// NewOpenAPIGenerator starts a document with the given metadata.
func NewOpenAPIGenerator(title, version, description string) *OpenAPIGenerator {
	return &OpenAPIGenerator{doc: OpenAPIDocument{
		OpenAPI: "3.0.0",
		Info: OpenAPIInfo{
			Title:       title,
			Version:     version,
			Description: description,
		},
		Paths: make(map[string]map[string]Operation),
	}}
}

// AddPath registers one operation. A zero status code defaults to 200.
func (g *OpenAPIGenerator) AddPath(path, method, summary string, requestSchema, responseSchema *schema.Schema, statusCode int) {
	if statusCode == 0 {
		statusCode = 200
	}

	operation := Operation{
		Summary: summary,
		Responses: map[string]OpenAPIResponse{
			strconv.Itoa(statusCode): {Description: "Successful response"},
		},
	}

	if requestSchema != nil {
		operation.RequestBody = &RequestBody{
			Required: true,
			Content: map[string]MediaType{
				"application/json": {Schema: requestSchema},
			},
		}
	}

	if responseSchema != nil {
		resp := operation.Responses[strconv.Itoa(statusCode)]
		resp.Content = map[string]MediaType{
			"application/json": {Schema: responseSchema},
		}
		operation.Responses[strconv.Itoa(statusCode)] = resp
	}

	if g.doc.Paths[path] == nil {
		g.doc.Paths[path] = make(map[string]Operation)
	}
	g.doc.Paths[path][strings.ToLower(method)] = operation
}

// AddContract registers a contract as an operation.
func (g *OpenAPIGenerator) AddContract(c *contract.Contract) {
	g.AddPath(c.Path, c.Method, c.Description, c.RequestSchema, c.ResponseSchema, c.ExpectedStatus)
}

// FromRegistry builds a generator preloaded with every contract in the
// registry.
func FromRegistry(title, version, description string, registry *contract.Registry) *OpenAPIGenerator {
	g := NewOpenAPIGenerator(title, version, description)
	for _, c := range registry.All() {
		g.AddContract(c)
	}
	return g
}

// Generate returns the assembled document.
func (g *OpenAPIGenerator) Generate() OpenAPIDocument {
	return g.doc
}

// JSON renders the document as indented JSON.
func (g *OpenAPIGenerator) JSON() ([]byte, error) {
	return json.MarshalIndent(g.doc, "", "  ")
}

// YAML renders the document as YAML.
func (g *OpenAPIGenerator) YAML() ([]byte, error) {
	return yaml.Marshal(g.doc)
}

// WriteFile saves the document, choosing the format from the file
// extension (.yaml/.yml for YAML, anything else JSON).
func (g *OpenAPIGenerator) WriteFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = g.YAML()
	} else {
		data, err = g.JSON()
	}
	if err != nil {
		return fmt.Errorf("rendering OpenAPI document: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
