package schema

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Validation error codes
const (
	CodeTypeMismatch       = "type_mismatch"
	CodeMissingRequired    = "missing_required"
	CodeUnexpectedProperty = "unexpected_property"
	CodeOutOfRange         = "out_of_range"
	CodeInvalidFormat      = "invalid_format"
)

// ValidationError describes a single schema violation. Path locates the
// offending value from the document root; SchemaPath locates the schema
// keyword that was violated.
type ValidationError struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Path       []string `json:"path"`
	SchemaPath []string `json:"schema_path"`
}

// ValidationResult is the outcome of validating one value against one
// schema. A single result can carry multiple errors: validation accumulates
// every violation found during traversal instead of stopping at the first.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// FirstError returns the first error message, or "" when the result is valid.
func (r *ValidationResult) FirstError() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Validator validates decoded JSON values against a Schema. Validation is a
// pure function: it keeps no state between calls and the same inputs always
// produce the same result.
type Validator struct{}

// NewValidator creates a new schema validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks value against s. It returns an error only when the schema
// itself is malformed; every violation in the value is reported through the
// result instead.
//
// Traversal is depth-first and pre-order. A type mismatch on a container
// stops descent into that subtree, since child checks against a mismatched
// container type would be meaningless.
func (v *Validator) Validate(value any, s *Schema) (*ValidationResult, error) {
	if err := s.Check(); err != nil {
		return nil, fmt.Errorf("malformed schema: %w", err)
	}
	result := &ValidationResult{Valid: true, Errors: []ValidationError{}}
	v.walk(value, s, nil, nil, result)
	result.Valid = len(result.Errors) == 0
	return result, nil
}

func (v *Validator) walk(value any, s *Schema, path, schemaPath []string, result *ValidationResult) {
	if s == nil {
		return
	}

	if s.Type != "" && !typeMatches(value, s.Type) {
		addError(result, ValidationError{
			Code:       CodeTypeMismatch,
			Message:    fmt.Sprintf("expected type %s, got %s", s.Type, jsonTypeName(value)),
			Path:       clonePath(path),
			SchemaPath: appendPath(schemaPath, "type"),
		})
		return
	}

	switch s.Type {
	case TypeObject:
		v.walkObject(value.(map[string]any), s, path, schemaPath, result)
	case TypeArray:
		v.walkArray(value.([]any), s, path, schemaPath, result)
	case TypeString:
		v.checkString(value.(string), s, path, schemaPath, result)
	case TypeInteger, TypeNumber:
		v.checkNumber(toFloat(value), s, path, schemaPath, result)
	}
}

func (v *Validator) walkObject(obj map[string]any, s *Schema, path, schemaPath []string, result *ValidationResult) {
	for _, name := range s.Required {
		if _, ok := obj[name]; !ok {
			addError(result, ValidationError{
				Code:       CodeMissingRequired,
				Message:    fmt.Sprintf("missing required property %q", name),
				Path:       appendPath(path, name),
				SchemaPath: appendPath(schemaPath, "required"),
			})
		}
	}

	if s.AdditionalProperties != nil && !*s.AdditionalProperties {
		for _, key := range sortedKeys(obj) {
			if _, declared := s.Properties[key]; !declared {
				addError(result, ValidationError{
					Code:       CodeUnexpectedProperty,
					Message:    fmt.Sprintf("unexpected property %q", key),
					Path:       appendPath(path, key),
					SchemaPath: appendPath(schemaPath, "additionalProperties"),
				})
			}
		}
	}

	for _, name := range s.PropertyNames() {
		child, present := obj[name]
		if !present {
			continue
		}
		v.walk(child, s.Properties[name],
			appendPath(path, name),
			appendPath(schemaPath, "properties", name),
			result)
	}
}

func (v *Validator) walkArray(arr []any, s *Schema, path, schemaPath []string, result *ValidationResult) {
	if s.Items == nil {
		return
	}
	for i, item := range arr {
		v.walk(item, s.Items,
			appendPath(path, strconv.Itoa(i)),
			appendPath(schemaPath, "items"),
			result)
	}
}

func (v *Validator) checkString(str string, s *Schema, path, schemaPath []string, result *ValidationResult) {
	if s.MinLength != nil && len(str) < *s.MinLength {
		addError(result, ValidationError{
			Code:       CodeOutOfRange,
			Message:    fmt.Sprintf("string length %d is below minLength %d", len(str), *s.MinLength),
			Path:       clonePath(path),
			SchemaPath: appendPath(schemaPath, "minLength"),
		})
	}
	if s.MaxLength != nil && len(str) > *s.MaxLength {
		addError(result, ValidationError{
			Code:       CodeOutOfRange,
			Message:    fmt.Sprintf("string length %d exceeds maxLength %d", len(str), *s.MaxLength),
			Path:       clonePath(path),
			SchemaPath: appendPath(schemaPath, "maxLength"),
		})
	}
	if s.Format == FormatEmail && !looksLikeEmail(str) {
		addError(result, ValidationError{
			Code:       CodeInvalidFormat,
			Message:    fmt.Sprintf("%q is not a valid email address", str),
			Path:       clonePath(path),
			SchemaPath: appendPath(schemaPath, "format"),
		})
	}
}

func (v *Validator) checkNumber(num float64, s *Schema, path, schemaPath []string, result *ValidationResult) {
	if s.Minimum != nil && num < *s.Minimum {
		addError(result, ValidationError{
			Code:       CodeOutOfRange,
			Message:    fmt.Sprintf("value %v is below minimum %v", num, *s.Minimum),
			Path:       clonePath(path),
			SchemaPath: appendPath(schemaPath, "minimum"),
		})
	}
	if s.Maximum != nil && num > *s.Maximum {
		addError(result, ValidationError{
			Code:       CodeOutOfRange,
			Message:    fmt.Sprintf("value %v exceeds maximum %v", num, *s.Maximum),
			Path:       clonePath(path),
			SchemaPath: appendPath(schemaPath, "maximum"),
		})
	}
}

// typeMatches reports whether a decoded JSON value satisfies a schema type.
// An integral number satisfies "integer"; any number satisfies "number".
func typeMatches(value any, schemaType string) bool {
	switch schemaType {
	case TypeObject:
		_, ok := value.(map[string]any)
		return ok
	case TypeArray:
		_, ok := value.([]any)
		return ok
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeNumber:
		return isNumeric(value)
	case TypeInteger:
		if !isNumeric(value) {
			return false
		}
		f := toFloat(value)
		return f == math.Trunc(f)
	}
	return false
}

func isNumeric(value any) bool {
	switch value.(type) {
	case float64, float32, int, int8, int16, int32, int64:
		return true
	}
	return false
}

func toFloat(value any) float64 {
	switch n := value.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func jsonTypeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int8, int16, int32, int64:
		return "number"
	}
	return fmt.Sprintf("%T", value)
}

// looksLikeEmail applies the contract-testing heuristic: the address must
// contain '@' with at least one '.' somewhere after it.
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}

func addError(result *ValidationResult, err ValidationError) {
	result.Errors = append(result.Errors, err)
}

func appendPath(path []string, tokens ...string) []string {
	out := make([]string, 0, len(path)+len(tokens))
	out = append(out, path...)
	out = append(out, tokens...)
	return out
}

func clonePath(path []string) []string {
	out := make([]string, len(path))
	copy(out, path)
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
