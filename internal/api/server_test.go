package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func seededServer() *Server {
	s := NewServer(NewMemoryStore())
	s.Seed()
	return s
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	w := doRequest(t, seededServer(), "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}

func TestListUsers(t *testing.T) {
	w := doRequest(t, seededServer(), "GET", "/api/users", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])
	users, ok := body["users"].([]any)
	require.True(t, ok)
	require.Len(t, users, 2)
	first := users[0].(map[string]any)
	assert.Equal(t, "john_doe", first["username"])
}

func TestGetUser(t *testing.T) {
	s := seededServer()

	w := doRequest(t, s, "GET", "/api/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "john@example.com", decodeBody(t, w)["email"])

	w = doRequest(t, s, "GET", "/api/users/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", decodeBody(t, w)["error"])

	w = doRequest(t, s, "GET", "/api/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUser(t *testing.T) {
	s := seededServer()

	w := doRequest(t, s, "POST", "/api/users", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"age":      30,
		"city":     "Berlin",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["id"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, float64(30), body["age"])
	assert.Equal(t, "Berlin", body["city"])
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"missing email", map[string]any{"username": "alice"}},
		{"short username", map[string]any{"username": "ab", "email": "a@b.com"}},
		{"bad email", map[string]any{"username": "alice", "email": "nope"}},
		{"unexpected field", map[string]any{"username": "alice", "email": "a@b.com", "role": "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, seededServer(), "POST", "/api/users", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, "Validation Error", body["error"])
			errs, ok := body["errors"].([]any)
			require.True(t, ok)
			assert.NotEmpty(t, errs)
		})
	}
}

func TestCreateUserEmptyBody(t *testing.T) {
	w := doRequest(t, seededServer(), "POST", "/api/users", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Bad Request", decodeBody(t, w)["error"])
}

func TestListOrders(t *testing.T) {
	s := seededServer()

	w := doRequest(t, s, "GET", "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	w = doRequest(t, s, "GET", "/api/orders?user_id=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])
}

func TestCreateOrder(t *testing.T) {
	s := seededServer()

	w := doRequest(t, s, "POST", "/api/orders", map[string]any{
		"user_id":  1,
		"product":  "Keyboard",
		"quantity": 2,
		"price":    49.99,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, float64(2), body["quantity"])

	w = doRequest(t, s, "GET", "/api/orders?user_id=1", nil)
	assert.Equal(t, float64(2), decodeBody(t, w)["count"])
}

func TestCreateOrderValidation(t *testing.T) {
	w := doRequest(t, seededServer(), "POST", "/api/orders", map[string]any{
		"user_id": 1, "product": "Keyboard", "quantity": 0,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation Error", decodeBody(t, w)["error"])
}

func TestListContracts(t *testing.T) {
	w := doRequest(t, seededServer(), "GET", "/api/contracts", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["count"])
}

func TestMemoryStoreOrdering(t *testing.T) {
	store := NewMemoryStore()
	store.CreateUser(User{Username: "a", Email: "a@x.com"})
	store.CreateUser(User{Username: "b", Email: "b@x.com"})
	store.CreateUser(User{Username: "c", Email: "c@x.com"})

	users := store.ListUsers()
	require.Len(t, users, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{users[0].ID, users[1].ID, users[2].ID})
}
