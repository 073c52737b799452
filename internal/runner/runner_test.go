package runner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apipact-io/apipact/internal/contract"
	"github.com/apipact-io/apipact/internal/schema"
)

func newTestRunner(baseURL string) *Runner {
	return New(baseURL, NewHTTPClient(0))
}

func userContract() *contract.Contract {
	return contract.NewBuilder("GetUser", "GET", "/api/users/1").
		WithResponseSchema(schema.UserResponse()).
		WithHeader("Content-Type", "application/json").
		MustBuild()
}

func checkByKind(t *testing.T, r Result, kind string) Check {
	t.Helper()
	for _, c := range r.Checks {
		if c.Kind == kind {
			return c
		}
	}
	t.Fatalf("no %q check in %+v", kind, r.Checks)
	return Check{}
}

func hasCheck(r Result, kind string) bool {
	for _, c := range r.Checks {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

func TestRunPassingContract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 1, "username": "john_doe", "email": "john@example.com",
		})
	}))
	defer server.Close()

	result := newTestRunner(server.URL).Run(context.Background(), userContract())

	assert.True(t, result.Passed)
	require.Len(t, result.Checks, 3)
	assert.True(t, checkByKind(t, result, CheckStatusCode).Passed)
	assert.True(t, checkByKind(t, result, CheckResponseSchema).Passed)
	assert.True(t, checkByKind(t, result, CheckHeader).Passed)
	assert.Positive(t, result.Duration)
}

func TestRunStatusMismatchSkipsSchemaCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	result := newTestRunner(server.URL).Run(context.Background(), userContract())

	assert.False(t, result.Passed)
	status := checkByKind(t, result, CheckStatusCode)
	assert.False(t, status.Passed)
	assert.Equal(t, 200, status.Expected)
	assert.Equal(t, 404, status.Actual)
	assert.False(t, hasCheck(result, CheckResponseSchema))
}

func TestRunTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	result := newTestRunner(server.URL).Run(context.Background(), userContract())

	assert.False(t, result.Passed)
	require.Len(t, result.Checks, 1)
	assert.Equal(t, CheckRequest, result.Checks[0].Kind)
	assert.NotEmpty(t, result.Checks[0].Error)
}

func TestRunSchemaViolation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// email missing, id has the wrong type
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "1", "username": "john_doe",
		})
	}))
	defer server.Close()

	result := newTestRunner(server.URL).Run(context.Background(), userContract())

	assert.False(t, result.Passed)
	assert.True(t, checkByKind(t, result, CheckStatusCode).Passed)
	assert.False(t, checkByKind(t, result, CheckResponseSchema).Passed)
}

func TestRunNonJSONBodyFailsSchemaCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer server.Close()

	result := newTestRunner(server.URL).Run(context.Background(), userContract())

	check := checkByKind(t, result, CheckResponseSchema)
	assert.False(t, check.Passed)
	assert.Contains(t, check.Error, "not valid JSON")
}

func TestRunGeneratesRequestBody(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 1, "username": "test_value", "email": "test@example.com",
		})
	}))
	defer server.Close()

	c := contract.NewBuilder("CreateUser", "POST", "/api/users").
		WithRequestSchema(schema.CreateUserRequest()).
		WithResponseSchema(schema.UserResponse()).
		WithStatus(201).
		MustBuild()

	result := newTestRunner(server.URL).Run(context.Background(), c)

	assert.True(t, result.Passed)
	assert.Contains(t, received, "username")
	assert.Contains(t, received, "email")
}

func TestRunMissingHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := contract.NewBuilder("Ping", "GET", "/ping").
		WithHeader("X-Request-ID", "abc").
		MustBuild()

	result := newTestRunner(server.URL).Run(context.Background(), c)

	check := checkByKind(t, result, CheckHeader)
	assert.False(t, check.Passed)
	assert.Contains(t, check.Error, "missing header")
}

func TestRunAllSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{}`))
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	defer server.Close()

	contracts := []*contract.Contract{
		contract.NewBuilder("OK", "GET", "/ok").MustBuild(),
		contract.NewBuilder("Missing", "GET", "/missing").MustBuild(),
		contract.NewBuilder("AlsoOK", "GET", "/ok").MustBuild(),
	}

	summary := newTestRunner(server.URL).RunAll(context.Background(), contracts)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.InDelta(t, 66.67, summary.SuccessRate, 0.001)

	// input order is preserved
	require.Len(t, summary.Results, 3)
	assert.Equal(t, "OK", summary.Results[0].Contract)
	assert.Equal(t, "Missing", summary.Results[1].Contract)
	assert.Equal(t, "AlsoOK", summary.Results[2].Contract)

	for _, result := range summary.Results {
		assert.Positive(t, result.Duration)
	}
}

func TestRunAllParallel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	contracts := make([]*contract.Contract, 8)
	for i := range contracts {
		contracts[i] = contract.NewBuilder("Ping", "GET", "/ping").MustBuild()
	}

	r := newTestRunner(server.URL)
	r.Parallelism = 4
	summary := r.RunAll(context.Background(), contracts)

	assert.Equal(t, 8, summary.Total)
	assert.Equal(t, 8, summary.Passed)
	assert.Equal(t, 100.0, summary.SuccessRate)
	assert.Len(t, r.History(), 8)
}

func TestRunAllEmpty(t *testing.T) {
	summary := newTestRunner("http://localhost:0").RunAll(context.Background(), nil)

	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0.0, summary.SuccessRate)
	assert.Empty(t, summary.Results)
}

func TestHistoryAccumulates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	r := newTestRunner(server.URL)
	c := contract.NewBuilder("Ping", "GET", "/ping").MustBuild()
	r.Run(context.Background(), c)
	r.Run(context.Background(), c)

	history := r.History()
	require.Len(t, history, 2)

	// the returned slice is a copy
	history[0].Contract = "mutated"
	assert.Equal(t, "Ping", r.History()[0].Contract)
}
