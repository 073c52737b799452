package schema

// Predefined request and response schemas for the user and order APIs the
// toolkit ships with. Contracts and the OpenAPI generator reference these
// by value.

// CreateUserRequest is the request schema for POST /api/users.
func CreateUserRequest() *Schema {
	return &Schema{
		Type:     TypeObject,
		Required: []string{"username", "email"},
		Properties: map[string]*Schema{
			"username": {Type: TypeString, MinLength: Int(3), MaxLength: Int(50)},
			"email":    {Type: TypeString, Format: FormatEmail},
			"age":      {Type: TypeInteger, Minimum: Float(0), Maximum: Float(150)},
			"city":     {Type: TypeString},
		},
		AdditionalProperties: Bool(false),
	}
}

// UpdateUserRequest is the request schema for PUT /api/users/:id. Same shape
// as CreateUserRequest but with nothing required.
func UpdateUserRequest() *Schema {
	s := CreateUserRequest()
	s.Required = nil
	return s
}

// CreateOrderRequest is the request schema for POST /api/orders.
func CreateOrderRequest() *Schema {
	return &Schema{
		Type:     TypeObject,
		Required: []string{"user_id", "product", "quantity"},
		Properties: map[string]*Schema{
			"user_id":  {Type: TypeInteger, Minimum: Float(1)},
			"product":  {Type: TypeString, MinLength: Int(1)},
			"quantity": {Type: TypeInteger, Minimum: Float(1), Maximum: Float(100)},
			"price":    {Type: TypeNumber, Minimum: Float(0)},
		},
		AdditionalProperties: Bool(false),
	}
}

// LoginRequest is the request schema for POST /api/auth/login.
func LoginRequest() *Schema {
	return &Schema{
		Type:     TypeObject,
		Required: []string{"username", "password"},
		Properties: map[string]*Schema{
			"username": {Type: TypeString, MinLength: Int(3)},
			"password": {Type: TypeString, MinLength: Int(8)},
		},
		AdditionalProperties: Bool(false),
	}
}

// UserResponse is the response schema for a single user.
func UserResponse() *Schema {
	return &Schema{
		Type:     TypeObject,
		Required: []string{"id", "username", "email"},
		Properties: map[string]*Schema{
			"id":       {Type: TypeInteger},
			"username": {Type: TypeString},
			"email":    {Type: TypeString},
			"age":      {Type: TypeInteger},
			"city":     {Type: TypeString},
		},
	}
}

// UserListResponse is the response schema for the user collection.
func UserListResponse() *Schema {
	return &Schema{
		Type:     TypeObject,
		Required: []string{"users", "count"},
		Properties: map[string]*Schema{
			"users": {Type: TypeArray, Items: UserResponse()},
			"count": {Type: TypeInteger},
		},
	}
}

// OrderResponse is the response schema for a single order.
func OrderResponse() *Schema {
	return &Schema{
		Type:     TypeObject,
		Required: []string{"id", "user_id", "product", "quantity", "price", "status"},
		Properties: map[string]*Schema{
			"id":       {Type: TypeInteger},
			"user_id":  {Type: TypeInteger},
			"product":  {Type: TypeString},
			"quantity": {Type: TypeInteger},
			"price":    {Type: TypeNumber},
			"status":   {Type: TypeString},
		},
	}
}

// OrderListResponse is the response schema for the order collection.
func OrderListResponse() *Schema {
	return &Schema{
		Type:     TypeObject,
		Required: []string{"orders", "count"},
		Properties: map[string]*Schema{
			"orders": {Type: TypeArray, Items: OrderResponse()},
			"count":  {Type: TypeInteger},
		},
	}
}

// ErrorResponse is the shared error envelope schema.
func ErrorResponse() *Schema {
	return &Schema{
		Type:     TypeObject,
		Required: []string{"error", "message"},
		Properties: map[string]*Schema{
			"error":   {Type: TypeString},
			"message": {Type: TypeString},
			"details": {Type: TypeObject},
		},
	}
}

// DefaultRegistry returns a registry preloaded with every predefined schema.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	defaults := map[string]*Schema{
		"request.create_user":  CreateUserRequest(),
		"request.update_user":  UpdateUserRequest(),
		"request.create_order": CreateOrderRequest(),
		"request.login":        LoginRequest(),
		"response.user":        UserResponse(),
		"response.user_list":   UserListResponse(),
		"response.order":       OrderResponse(),
		"response.order_list":  OrderListResponse(),
		"response.error":       ErrorResponse(),
	}
	for name, s := range defaults {
		// Predefined schemas are well formed; Check only fails on a
		// programming mistake in this file.
		_ = r.Register(name, s)
	}
	return r
}
