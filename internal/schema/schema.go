package schema

import (
	"fmt"
	"sort"
)

// Supported schema types
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
)

// FormatEmail is the only format constraint the validator recognizes
const FormatEmail = "email"

// Schema describes the expected shape of a JSON value. It covers the
// practical subset of JSON Schema used by API contracts: type, required,
// properties, items, additionalProperties, string length bounds, numeric
// bounds and the email format.
type Schema struct {
	Type                 string             `json:"type,omitempty" yaml:"type,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	MinLength            *int               `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength            *int               `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Minimum              *float64           `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum              *float64           `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Format               string             `json:"format,omitempty" yaml:"format,omitempty"`
}

// PropertyNames returns the declared property names in sorted order.
// Go maps iterate in random order, so sorting keeps validation error
// ordering deterministic across runs.
func (s *Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check verifies the schema itself is well formed. A malformed schema is a
// programmer error and must fail fast instead of being swallowed as a false
// "valid" during validation.
func (s *Schema) Check() error {
	if s == nil {
		return nil
	}
	switch s.Type {
	case "", TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeObject, TypeArray:
	default:
		return fmt.Errorf("unknown schema type %q", s.Type)
	}
	if s.Items != nil && s.Type != TypeArray && s.Type != "" {
		return fmt.Errorf("items declared on non-array schema type %q", s.Type)
	}
	if len(s.Properties) > 0 && s.Type != TypeObject && s.Type != "" {
		return fmt.Errorf("properties declared on non-object schema type %q", s.Type)
	}
	if s.MinLength != nil && *s.MinLength < 0 {
		return fmt.Errorf("minLength must not be negative, got %d", *s.MinLength)
	}
	if s.MaxLength != nil && *s.MaxLength < 0 {
		return fmt.Errorf("maxLength must not be negative, got %d", *s.MaxLength)
	}
	if s.MinLength != nil && s.MaxLength != nil && *s.MinLength > *s.MaxLength {
		return fmt.Errorf("minLength %d exceeds maxLength %d", *s.MinLength, *s.MaxLength)
	}
	if s.Minimum != nil && s.Maximum != nil && *s.Minimum > *s.Maximum {
		return fmt.Errorf("minimum %v exceeds maximum %v", *s.Minimum, *s.Maximum)
	}
	for _, name := range s.PropertyNames() {
		if err := s.Properties[name].Check(); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
	}
	if s.Items != nil {
		if err := s.Items.Check(); err != nil {
			return fmt.Errorf("items: %w", err)
		}
	}
	return nil
}

// Convenience constructors used by contract definitions.

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }
