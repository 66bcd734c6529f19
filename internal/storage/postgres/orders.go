package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/orders-be/internal/models"
	"github.com/hongminglow/orders-be/internal/storage"
	"github.com/hongminglow/orders-be/internal/storage/postgres/migrations"
)

// Ensure OrderStore satisfies the storage.OrderStore interface at compile time.
var _ storage.OrderStore = (*OrderStore)(nil)

// OrderStore provides Postgres-backed persistence for orders. Every query
// that takes a userID includes it in the WHERE clause, so an order belonging
// to someone else scans as ErrNotFound just like a missing one.
type OrderStore struct {
	pool *pgxpool.Pool
}

// NewOrderStore connects to the database and applies the order-service migrations.
func NewOrderStore(ctx context.Context, databaseURL string) (*OrderStore, error) {
	dir, err := fs.Sub(migrations.Orders, "orders")
	if err != nil {
		return nil, fmt.Errorf("open order migrations: %w", err)
	}
	pool, err := connect(ctx, databaseURL, dir)
	if err != nil {
		return nil, err
	}
	return &OrderStore{pool: pool}, nil
}

// Close releases database resources.
func (s *OrderStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreateOrder inserts a new order row owned by order.UserID.
func (s *OrderStore) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	const query = `
	INSERT INTO orders (user_id, product, quantity, status)
	VALUES ($1, $2, $3, $4)
	RETURNING id, user_id, product, quantity, status;
	`
	row := s.pool.QueryRow(ctx, query, order.UserID, order.Product, order.Quantity, order.Status)
	return scanOrder(row)
}

// FindOrder fetches an order by id, scoped to its owner.
func (s *OrderStore) FindOrder(ctx context.Context, orderID, userID int64) (models.Order, error) {
	const query = `
	SELECT id, user_id, product, quantity, status
	FROM orders
	WHERE id = $1 AND user_id = $2;
	`
	return scanOrder(s.pool.QueryRow(ctx, query, orderID, userID))
}

// ListOrdersByUser fetches all orders owned by userID.
func (s *OrderStore) ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	const query = `
	SELECT id, user_id, product, quantity, status
	FROM orders
	WHERE user_id = $1
	ORDER BY id;
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.Product, &order.Quantity, &order.Status); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// UpdateOrder overwrites product and quantity, scoped to the owner.
func (s *OrderStore) UpdateOrder(ctx context.Context, orderID, userID int64, product string, quantity int) (models.Order, error) {
	const query = `
	UPDATE orders
	SET product = $3, quantity = $4
	WHERE id = $1 AND user_id = $2
	RETURNING id, user_id, product, quantity, status;
	`
	return scanOrder(s.pool.QueryRow(ctx, query, orderID, userID, product, quantity))
}

// DeleteOrder removes an order, scoped to the owner, returning the deleted row.
func (s *OrderStore) DeleteOrder(ctx context.Context, orderID, userID int64) (models.Order, error) {
	const query = `
	DELETE FROM orders
	WHERE id = $1 AND user_id = $2
	RETURNING id, user_id, product, quantity, status;
	`
	return scanOrder(s.pool.QueryRow(ctx, query, orderID, userID))
}

func scanOrder(row pgx.Row) (models.Order, error) {
	var order models.Order
	if err := row.Scan(&order.ID, &order.UserID, &order.Product, &order.Quantity, &order.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, storage.ErrNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}
