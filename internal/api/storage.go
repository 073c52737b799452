package api

import (
	"sync"
	"sync/atomic"
)

// User is a stored user record.
type User struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Age      *int    `json:"age,omitempty"`
	City     *string `json:"city,omitempty"`
}

// Order is a stored order record.
type Order struct {
	ID       int     `json:"id"`
	UserID   int     `json:"user_id"`
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Status   string  `json:"status"`
}

// Store is the persistence collaborator the demo API runs on. The contract
// engine never sees it; any implementation with atomic ID assignment will
// do.
type Store interface {
	CreateUser(u User) User
	GetUser(id int) (User, bool)
	ListUsers() []User
	CreateOrder(o Order) Order
	ListOrders(userID int) []Order
}

// MemoryStore keeps users and orders in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[int]User
	orders      map[int]Order
	userCounter atomic.Int64
	orderCount  atomic.Int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[int]User),
		orders: make(map[int]Order),
	}
}

// CreateUser assigns the next ID and stores the user.
func (s *MemoryStore) CreateUser(u User) User {
	u.ID = int(s.userCounter.Add(1))
	s.mu.Lock()
	s.users[u.ID] = u
	s.mu.Unlock()
	return u
}

// GetUser returns the user with the given ID.
func (s *MemoryStore) GetUser(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// ListUsers returns every stored user in ID order.
func (s *MemoryStore) ListUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for id := 1; id <= int(s.userCounter.Load()); id++ {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out
}

// CreateOrder assigns the next ID and stores the order.
func (s *MemoryStore) CreateOrder(o Order) Order {
	o.ID = int(s.orderCount.Add(1))
	s.mu.Lock()
	s.orders[o.ID] = o
	s.mu.Unlock()
	return o
}

// ListOrders returns stored orders in ID order, filtered by user when
// userID is non-zero.
func (s *MemoryStore) ListOrders(userID int) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0, len(s.orders))
	for id := 1; id <= int(s.orderCount.Load()); id++ {
		o, ok := s.orders[id]
		if !ok {
			continue
		}
		if userID != 0 && o.UserID != userID {
			continue
		}
		out = append(out, o)
	}
	return out
}
