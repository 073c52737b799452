package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("user", UserResponse()))

	s, ok := r.Get("user")
	require.True(t, ok)
	assert.Equal(t, TypeObject, s.Type)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistryRejectsMalformed(t *testing.T) {
	r := NewRegistry()
	err := r.Register("bad", &Schema{Type: "zorp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `schema "bad"`)

	_, ok := r.Get("bad")
	assert.False(t, ok)
}

func TestRegistryReplaces(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("x", &Schema{Type: TypeString}))
	require.NoError(t, r.Register("x", &Schema{Type: TypeInteger}))

	s, _ := r.Get("x")
	assert.Equal(t, TypeInteger, s.Type)
}

func TestDefaultRegistryComplete(t *testing.T) {
	r := DefaultRegistry()

	for _, name := range []string{
		"request.create_user", "request.update_user", "request.create_order",
		"request.login", "response.user", "response.user_list",
		"response.order", "response.order_list", "response.error",
	} {
		_, ok := r.Get(name)
		assert.True(t, ok, name)
	}
	assert.Len(t, r.All(), 9)
}
