// Package api is the demo provider: a small user/order CRUD service that
// implements the toolkit's predefined contracts. The contract engine treats
// it as any other target; it exists so the toolkit ships with something to
// verify against.
package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/apipact-io/apipact/internal/contract"
	"github.com/apipact-io/apipact/internal/metrics"
	"github.com/apipact-io/apipact/internal/schema"
)

// Server is the demo provider API.
type Server struct {
	store     Store
	validator *schema.Validator
	engine    *gin.Engine
}

// NewServer wires the handlers onto a gin engine backed by store.
func NewServer(store Store) *Server {
	s := &Server{
		store:     store,
		validator: schema.NewValidator(),
		engine:    gin.New(),
	}
	s.engine.Use(gin.Recovery())

	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := s.engine.Group("/api")
	{
		apiGroup.GET("/users", s.handleListUsers)
		apiGroup.GET("/users/:id", s.handleGetUser)
		apiGroup.POST("/users", s.handleCreateUser)
		apiGroup.GET("/orders", s.handleListOrders)
		apiGroup.POST("/orders", s.handleCreateOrder)
		apiGroup.GET("/contracts", s.handleListContracts)
	}

	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API on addr.
func (s *Server) Run(addr string) error {
	log.Printf("demo API listening on %s", addr)
	return s.engine.Run(addr)
}

// Seed inserts sample users and orders so the predefined contracts have
// data to hit.
func (s *Server) Seed() {
	john := s.store.CreateUser(User{Username: "john_doe", Email: "john@example.com"})
	s.store.CreateUser(User{Username: "jane_doe", Email: "jane@example.com"})
	s.store.CreateOrder(Order{UserID: john.ID, Product: "Laptop", Quantity: 1, Price: 999.99, Status: "confirmed"})
}

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "API Contract Testing - Provider API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"users":     "/api/users",
			"orders":    "/api/orders",
			"contracts": "/api/contracts",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleListUsers(c *gin.Context) {
	users := s.store.ListUsers()
	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

func (s *Server) handleGetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "user id must be an integer",
		})
		return
	}

	user, ok := s.store.GetUser(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "User " + c.Param("id") + " not found",
		})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleCreateUser(c *gin.Context) {
	data, ok := s.bindValidated(c, schema.CreateUserRequest())
	if !ok {
		return
	}

	user := User{
		Username: data["username"].(string),
		Email:    data["email"].(string),
	}
	if age, ok := data["age"].(float64); ok {
		n := int(age)
		user.Age = &n
	}
	if city, ok := data["city"].(string); ok {
		user.City = &city
	}

	c.JSON(http.StatusCreated, s.store.CreateUser(user))
}

func (s *Server) handleListOrders(c *gin.Context) {
	userID, _ := strconv.Atoi(c.Query("user_id"))
	orders := s.store.ListOrders(userID)
	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

func (s *Server) handleCreateOrder(c *gin.Context) {
	data, ok := s.bindValidated(c, schema.CreateOrderRequest())
	if !ok {
		return
	}

	order := Order{
		UserID:   int(data["user_id"].(float64)),
		Product:  data["product"].(string),
		Quantity: int(data["quantity"].(float64)),
		Status:   "pending",
	}
	if price, ok := data["price"].(float64); ok {
		order.Price = price
	}

	c.JSON(http.StatusCreated, s.store.CreateOrder(order))
}

func (s *Server) handleListContracts(c *gin.Context) {
	contracts := []*contract.Contract{
		contract.GetUserContract(),
		contract.CreateUserContract(),
		contract.ListUsersContract(),
	}
	c.JSON(http.StatusOK, gin.H{
		"contracts": contracts,
		"count":     len(contracts),
	})
}

// bindValidated decodes the JSON body and validates it against the request
// schema, writing the error response itself on failure.
func (s *Server) bindValidated(c *gin.Context, reqSchema *schema.Schema) (map[string]any, bool) {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil || data == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Request body required",
		})
		return nil, false
	}

	validation, err := s.validator.Validate(data, reqSchema)
	if err != nil {
		log.Printf("request schema is malformed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "request schema is malformed",
		})
		return nil, false
	}
	if !validation.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation Error",
			"message": "Request validation failed",
			"errors":  validation.Errors,
		})
		return nil, false
	}
	return data, true
}
