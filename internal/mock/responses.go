package mock

// Canned response data for the mock server, grouped by category. Lookup is
// a two-level key: (category, name).

var userResponses = map[string]any{
	"get_user": map[string]any{
		"id": 1, "username": "john_doe", "email": "john@example.com",
		"age": 30, "city": "New York",
	},
	"list_users": map[string]any{
		"users": []any{
			map[string]any{"id": 1, "username": "john_doe", "email": "john@example.com"},
			map[string]any{"id": 2, "username": "jane_doe", "email": "jane@example.com"},
			map[string]any{"id": 3, "username": "bob_smith", "email": "bob@example.com"},
		},
		"count": 3,
	},
	"create_user": map[string]any{
		"id": 4, "username": "new_user", "email": "new@example.com",
		"message": "User created successfully",
	},
	"user_not_found": map[string]any{
		"error": "Not Found", "message": "User not found",
	},
}

var orderResponses = map[string]any{
	"get_order": map[string]any{
		"id": 1, "user_id": 1, "product": "Laptop", "quantity": 1,
		"price": 999.99, "status": "confirmed",
	},
	"list_orders": map[string]any{
		"orders": []any{
			map[string]any{"id": 1, "user_id": 1, "product": "Laptop", "price": 999.99},
			map[string]any{"id": 2, "user_id": 1, "product": "Mouse", "price": 29.99},
		},
		"count": 2,
	},
	"create_order": map[string]any{
		"id": 3, "user_id": 1, "product": "Keyboard", "quantity": 1,
		"price": 79.99, "status": "pending", "message": "Order created successfully",
	},
}

var errorResponses = map[string]any{
	"bad_request":    map[string]any{"error": "Bad Request", "message": "Invalid request data"},
	"unauthorized":   map[string]any{"error": "Unauthorized", "message": "Authentication required"},
	"forbidden":      map[string]any{"error": "Forbidden", "message": "Access denied"},
	"not_found":      map[string]any{"error": "Not Found", "message": "Resource not found"},
	"internal_error": map[string]any{"error": "Internal Server Error", "message": "An unexpected error occurred"},
}

var cannedResponses = map[string]map[string]any{
	"user":  userResponses,
	"order": orderResponses,
	"error": errorResponses,
}

// CannedResponse returns the predefined response for (category, name). A
// miss is reported explicitly so callers can tell "no such mock" apart
// from an intentionally empty canned response.
func CannedResponse(category, name string) (any, bool) {
	responses, ok := cannedResponses[category]
	if !ok {
		return nil, false
	}
	response, ok := responses[name]
	return response, ok
}
