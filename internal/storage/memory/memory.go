// Package memory holds map-backed implementations of the storage
// interfaces. They mirror the Postgres stores' observable behavior,
// including the ownership-scoped not-found semantics, and back the handler
// test suites.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hongminglow/orders-be/internal/models"
	"github.com/hongminglow/orders-be/internal/storage"
)

var (
	_ storage.UserStore  = (*UserStore)(nil)
	_ storage.OrderStore = (*OrderStore)(nil)
)

// UserStore is an in-memory storage.UserStore.
type UserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
}

// NewUserStore returns an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{nextID: 1, users: make(map[int64]models.User)}
}

// CreateUser assigns the next id and stores the user. Duplicate emails fail
// the same way the unique index does in Postgres.
func (s *UserStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.ID = s.nextID
	s.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = user
	return user, nil
}

// FindByEmail fetches a user by email address.
func (s *UserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// FindByID fetches a user by id.
func (s *UserStore) FindByID(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// DeleteUser removes a user so tests can exercise subject deactivation.
func (s *UserStore) DeleteUser(_ context.Context, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// OrderStore is an in-memory storage.OrderStore.
type OrderStore struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]models.Order
}

// NewOrderStore returns an empty in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{nextID: 1, orders: make(map[int64]models.Order)}
}

// CreateOrder assigns the next id and stores the order.
func (s *OrderStore) CreateOrder(_ context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = s.nextID
	s.nextID++
	s.orders[order.ID] = order
	return order, nil
}

// FindOrder fetches an order by id, scoped to its owner.
func (s *OrderStore) FindOrder(_ context.Context, orderID, userID int64) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok || order.UserID != userID {
		return models.Order{}, storage.ErrNotFound
	}
	return order, nil
}

// ListOrdersByUser fetches all orders owned by userID, oldest first.
func (s *OrderStore) ListOrdersByUser(_ context.Context, userID int64) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := []models.Order{}
	for id := int64(1); id < s.nextID; id++ {
		if order, ok := s.orders[id]; ok && order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// UpdateOrder overwrites product and quantity, scoped to the owner.
func (s *OrderStore) UpdateOrder(_ context.Context, orderID, userID int64, product string, quantity int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok || order.UserID != userID {
		return models.Order{}, storage.ErrNotFound
	}
	order.Product = product
	order.Quantity = quantity
	s.orders[orderID] = order
	return order, nil
}

// DeleteOrder removes an order, scoped to the owner, returning the deleted row.
func (s *OrderStore) DeleteOrder(_ context.Context, orderID, userID int64) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok || order.UserID != userID {
		return models.Order{}, storage.ErrNotFound
	}
	delete(s.orders, orderID)
	return order, nil
}
