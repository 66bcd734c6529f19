package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/orders-be/internal/models"
)

// ErrNotFound indicates a record does not exist. For orders it also covers
// "exists but belongs to someone else": the two cases must stay
// indistinguishable to callers.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures persistence operations needed by the user service.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
}

// OrderStore captures persistence operations needed by the order service.
// Every lookup or mutation that takes a userID applies it as an ownership
// filter together with the order id.
type OrderStore interface {
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
	FindOrder(ctx context.Context, orderID, userID int64) (models.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error)
	UpdateOrder(ctx context.Context, orderID, userID int64, product string, quantity int) (models.Order, error)
	DeleteOrder(ctx context.Context, orderID, userID int64) (models.Order, error)
}
