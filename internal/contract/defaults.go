package contract

import "github.com/apipact-io/apipact/internal/schema"

// Predefined contracts for the user and order endpoints the demo API
// exposes. The verify command registers these when no contract files are
// given.

// GetUserContract covers GET /api/users/:id.
func GetUserContract() *Contract {
	return NewBuilder("GetUser", "GET", "/api/users/1").
		WithDescription("Get user by ID").
		WithResponseSchema(schema.UserResponse()).
		WithStatus(200).
		MustBuild()
}

// CreateUserContract covers POST /api/users.
func CreateUserContract() *Contract {
	return NewBuilder("CreateUser", "POST", "/api/users").
		WithDescription("Create a new user").
		WithRequestSchema(schema.CreateUserRequest()).
		WithResponseSchema(schema.UserResponse()).
		WithStatus(201).
		MustBuild()
}

// ListUsersContract covers GET /api/users.
func ListUsersContract() *Contract {
	return NewBuilder("ListUsers", "GET", "/api/users").
		WithDescription("List all users").
		WithResponseSchema(schema.UserListResponse()).
		WithStatus(200).
		MustBuild()
}

// ListOrdersContract covers GET /api/orders.
func ListOrdersContract() *Contract {
	return NewBuilder("ListOrders", "GET", "/api/orders").
		WithDescription("List all orders").
		WithResponseSchema(schema.OrderListResponse()).
		WithStatus(200).
		MustBuild()
}

// CreateOrderContract covers POST /api/orders.
func CreateOrderContract() *Contract {
	return NewBuilder("CreateOrder", "POST", "/api/orders").
		WithDescription("Create a new order").
		WithRequestSchema(schema.CreateOrderRequest()).
		WithResponseSchema(schema.OrderResponse()).
		WithStatus(201).
		MustBuild()
}

// HealthContract covers GET /health.
func HealthContract() *Contract {
	return NewBuilder("Health", "GET", "/health").
		WithDescription("Service health check").
		WithResponseSchema(&schema.Schema{
			Type:     schema.TypeObject,
			Required: []string{"status"},
			Properties: map[string]*schema.Schema{
				"status": {Type: schema.TypeString},
			},
		}).
		WithStatus(200).
		MustBuild()
}

// DefaultRegistry returns a registry preloaded with the predefined
// contracts.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, c := range []*Contract{
		GetUserContract(),
		CreateUserContract(),
		ListUsersContract(),
		ListOrdersContract(),
		CreateOrderContract(),
		HealthContract(),
	} {
		r.Register(c)
	}
	return r
}
