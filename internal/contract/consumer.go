package contract

// Interaction is one request/response exchange a consumer depends on.
type Interaction struct {
	Description string              `json:"description" yaml:"description"`
	Request     InteractionRequest  `json:"request" yaml:"request"`
	Response    InteractionResponse `json:"response" yaml:"response"`
}

// InteractionRequest is the request half of an interaction.
type InteractionRequest struct {
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`
	Body   any    `json:"body,omitempty" yaml:"body,omitempty"`
}

// InteractionResponse is the response half of an interaction.
type InteractionResponse struct {
	Status int `json:"status" yaml:"status"`
	Body   any `json:"body,omitempty" yaml:"body,omitempty"`
}

// ConsumerContract is a consumer-driven contract: the interactions one
// consumer expects from a provider. It only accumulates evidence for the
// provider team; it performs no validation itself.
type ConsumerContract struct {
	Consumer     string        `json:"consumer" yaml:"consumer"`
	Provider     string        `json:"provider" yaml:"provider"`
	Interactions []Interaction `json:"interactions" yaml:"interactions"`
}

// NewConsumerContract starts a contract between a consumer and a provider.
func NewConsumerContract(consumer, provider string) *ConsumerContract {
	return &ConsumerContract{Consumer: consumer, Provider: provider}
}

// AddInteraction appends an interaction to the contract.
func (c *ConsumerContract) AddInteraction(description string, request InteractionRequest, response InteractionResponse) {
	c.Interactions = append(c.Interactions, Interaction{
		Description: description,
		Request:     request,
		Response:    response,
	})
}

// MobileAppUserContract is the user API contract the mobile app depends on.
func MobileAppUserContract() *ConsumerContract {
	c := NewConsumerContract("MobileApp", "UserAPI")
	c.AddInteraction("Get user by ID",
		InteractionRequest{Method: "GET", Path: "/api/users/1"},
		InteractionResponse{Status: 200, Body: map[string]any{
			"id": 1, "username": "string", "email": "string",
		}},
	)
	c.AddInteraction("Create new user",
		InteractionRequest{Method: "POST", Path: "/api/users", Body: map[string]any{
			"username": "john_doe", "email": "john@example.com",
		}},
		InteractionResponse{Status: 201, Body: map[string]any{
			"id": "integer", "username": "john_doe", "email": "john@example.com",
		}},
	)
	return c
}

// WebAppOrderContract is the order API contract the web app depends on.
func WebAppOrderContract() *ConsumerContract {
	c := NewConsumerContract("WebApp", "OrderAPI")
	c.AddInteraction("Get orders for user",
		InteractionRequest{Method: "GET", Path: "/api/orders?user_id=1"},
		InteractionResponse{Status: 200, Body: map[string]any{
			"orders": "array", "count": "integer",
		}},
	)
	return c
}
