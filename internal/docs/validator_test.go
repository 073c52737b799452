package docs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apipact-io/apipact/internal/runner"
	"github.com/apipact-io/apipact/internal/schema"
)

func sampleUserHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []any{map[string]any{"id": 1, "username": "john_doe", "email": "john@example.com"}},
			"count": 1,
		})
	})
	mux.HandleFunc("GET /api/users/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 1, "username": "john_doe", "email": "john@example.com",
		})
	})
	mux.HandleFunc("POST /api/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 2, "username": "test_value", "email": "test@example.com",
		})
	})
	return mux
}

func TestValidateEndpoint(t *testing.T) {
	server := httptest.NewServer(sampleUserHandler())
	defer server.Close()

	v := NewValidator(server.URL, runner.NewHTTPClient(0))
	spec := SampleSpecification(server.URL)

	result, err := v.ValidateEndpoint(context.Background(), spec, "/api/users/1", "GET")
	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestValidateEndpointUnknown(t *testing.T) {
	v := NewValidator("http://localhost:0", runner.NewHTTPClient(0))
	spec := SampleSpecification("http://localhost:0")

	_, err := v.ValidateEndpoint(context.Background(), spec, "/api/missing", "GET")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no specification found")
}

func TestValidateAll(t *testing.T) {
	server := httptest.NewServer(sampleUserHandler())
	defer server.Close()

	v := NewValidator(server.URL, runner.NewHTTPClient(0))
	summary := v.ValidateAll(context.Background(), SampleSpecification(server.URL))

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Passed)
	assert.Equal(t, 100.0, summary.SuccessRate)
}

func TestValidateAllReportsDrift(t *testing.T) {
	// users/1 responds without the documented email field
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "john_doe"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	spec := NewSpecification("User API", "1.0.0", server.URL)
	spec.AddEndpoint("/api/users/1", "GET", EndpointSpec{
		Description:    "Get user by ID",
		ResponseSchema: schema.UserResponse(),
	})

	v := NewValidator(server.URL, runner.NewHTTPClient(0))
	summary := v.ValidateAll(context.Background(), spec)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Failed)
}

func TestSpecificationDefaultsStatus(t *testing.T) {
	spec := NewSpecification("API", "1.0.0", "")
	spec.AddEndpoint("/health", "GET", EndpointSpec{Description: "Health check"})

	endpoint, ok := spec.Endpoint("/health", "GET")
	require.True(t, ok)
	assert.Equal(t, 200, endpoint.StatusCode)
}
