package schema

import (
	"math"
	"strings"
)

// Fixed sentinels used when a schema carries no tighter constraint.
const (
	sampleString     = "test_value"
	sampleEmail      = "test@example.com"
	sampleEmailShort = "a@b.c"
)

// Generator synthesizes values that satisfy a schema. Its output is used to
// drive outbound test requests against endpoints with a request schema; it
// never judges the correctness of real consumer data.
type Generator struct{}

// NewGenerator creates a new sample data generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a value satisfying s. A nil schema or an object schema
// with no declared properties yields an empty object. Every declared
// property is populated, recursively for nested objects, so the generated
// value validates against its own schema for the supported keyword subset.
func (g *Generator) Generate(s *Schema) any {
	if s == nil {
		return map[string]any{}
	}

	switch s.Type {
	case TypeString:
		return g.sampleString(s)
	case TypeInteger:
		return math.Ceil(g.sampleNumber(s))
	case TypeNumber:
		return g.sampleNumber(s)
	case TypeBoolean:
		return true
	case TypeArray:
		return []any{}
	}

	// Object schemas, and schemas with no type, yield an object built from
	// the declared properties.
	obj := map[string]any{}
	for _, name := range s.PropertyNames() {
		obj[name] = g.Generate(s.Properties[name])
	}
	return obj
}

// sampleString produces a string honoring minLength/maxLength and the email
// format. An email value is never truncated; when the default address exceeds
// maxLength a shorter one is substituted instead.
func (g *Generator) sampleString(s *Schema) string {
	value := sampleString
	if s.Format == FormatEmail {
		value = sampleEmail
		if s.MaxLength != nil && len(value) > *s.MaxLength {
			value = sampleEmailShort
		}
	}

	if s.MinLength != nil && len(value) < *s.MinLength {
		pad := strings.Repeat("x", *s.MinLength-len(value))
		if s.Format == FormatEmail {
			// Grow the local part so the address heuristic still holds.
			value = pad + value
		} else {
			value += pad
		}
	}
	if s.MaxLength != nil && len(value) > *s.MaxLength && s.Format != FormatEmail {
		value = value[:*s.MaxLength]
	}
	return value
}

func (g *Generator) sampleNumber(s *Schema) float64 {
	if s.Minimum != nil {
		return *s.Minimum
	}
	if s.Maximum != nil && *s.Maximum < 1 {
		return math.Floor(*s.Maximum)
	}
	return 1
}
