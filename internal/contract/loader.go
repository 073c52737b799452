package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/apipact-io/apipact/internal/schema"
)

// ContractDocument is the on-disk YAML form of a contract suite.
type ContractDocument struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
	Metadata   struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Enabled     *bool  `yaml:"enabled"`
	} `yaml:"metadata"`
	Spec struct {
		Contracts []ContractEntry `yaml:"contracts"`
	} `yaml:"spec"`
}

// ContractEntry is one contract inside a document.
type ContractEntry struct {
	Name           string            `yaml:"name"`
	Method         string            `yaml:"method"`
	Path           string            `yaml:"path"`
	Description    string            `yaml:"description"`
	ExpectedStatus int               `yaml:"expectedStatus"`
	Headers        map[string]string `yaml:"headers"`
	RequestSchema  *schema.Schema    `yaml:"requestSchema"`
	ResponseSchema *schema.Schema    `yaml:"responseSchema"`
}

// documentSchema is the meta-schema contract documents are linted against
// before decoding. Linting catches shape mistakes (a string where a mapping
// belongs, a missing name) with positional messages instead of zero-value
// surprises after decode.
var documentSchema = map[string]any{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "object",
	"properties": map[string]any{
		"apiVersion": map[string]any{
			"type":    "string",
			"pattern": "^contracts/v[0-9]+$",
		},
		"kind": map[string]any{
			"type": "string",
			"enum": []any{"ContractSuite"},
		},
		"metadata": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":        map[string]any{"type": "string", "minLength": 1},
				"description": map[string]any{"type": "string"},
				"enabled":     map[string]any{"type": "boolean"},
			},
			"required": []any{"name"},
		},
		"spec": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"contracts": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name":           map[string]any{"type": "string", "minLength": 1},
							"method":         map[string]any{"type": "string"},
							"path":           map[string]any{"type": "string", "minLength": 1},
							"description":    map[string]any{"type": "string"},
							"expectedStatus": map[string]any{"type": "integer"},
							"headers": map[string]any{
								"type":                 "object",
								"additionalProperties": map[string]any{"type": "string"},
							},
							"requestSchema":  map[string]any{"type": "object"},
							"responseSchema": map[string]any{"type": "object"},
						},
						"required": []any{"name", "method", "path"},
					},
				},
			},
			"required": []any{"contracts"},
		},
	},
	"required": []any{"apiVersion", "kind", "metadata", "spec"},
}

// LoadFile parses, lints and builds the contracts in one YAML document.
func LoadFile(path string) ([]*Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a contract document from YAML. name is used in error
// messages only.
func Parse(data []byte, name string) ([]*Contract, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	if err := lintDocument(raw); err != nil {
		return nil, fmt.Errorf("linting %s: %w", name, err)
	}

	var doc ContractDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	if doc.Metadata.Enabled != nil && !*doc.Metadata.Enabled {
		return nil, nil
	}

	contracts := make([]*Contract, 0, len(doc.Spec.Contracts))
	for _, entry := range doc.Spec.Contracts {
		b := NewBuilder(entry.Name, entry.Method, entry.Path).
			WithDescription(entry.Description).
			WithRequestSchema(entry.RequestSchema).
			WithResponseSchema(entry.ResponseSchema)
		if entry.ExpectedStatus != 0 {
			b.WithStatus(entry.ExpectedStatus)
		}
		for header, value := range entry.Headers {
			b.WithHeader(header, value)
		}
		c, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		contracts = append(contracts, c)
	}
	return contracts, nil
}

// LoadDir walks dir and loads every .yaml/.yml contract document into a
// registry.
func LoadDir(dir string) (*Registry, error) {
	registry := NewRegistry()
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || (!strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml")) {
			return nil
		}
		contracts, err := LoadFile(path)
		if err != nil {
			return err
		}
		for _, c := range contracts {
			registry.Register(c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return registry, nil
}

func lintDocument(doc map[string]any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(documentSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("invalid contract document: %s", strings.Join(messages, "; "))
}
