package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/orders-be/internal/models"
	"github.com/hongminglow/orders-be/internal/storage"
	"github.com/hongminglow/orders-be/internal/storage/postgres/migrations"
)

// Ensure UserStore satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*UserStore)(nil)

// UserStore provides Postgres-backed persistence for users.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore connects to the database and applies the user-service migrations.
func NewUserStore(ctx context.Context, databaseURL string) (*UserStore, error) {
	dir, err := fs.Sub(migrations.Users, "users")
	if err != nil {
		return nil, fmt.Errorf("open user migrations: %w", err)
	}
	pool, err := connect(ctx, databaseURL, dir)
	if err != nil {
		return nil, err
	}
	return &UserStore{pool: pool}, nil
}

// Close releases database resources.
func (s *UserStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreateUser inserts a new user row.
func (s *UserStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	INSERT INTO users (name, email, password_hash)
	VALUES ($1, $2, $3)
	RETURNING id, name, email, password_hash, created_at;
	`
	row := s.pool.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByEmail fetches a user by email address.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
	SELECT id, name, email, password_hash, created_at
	FROM users
	WHERE email = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// FindByID fetches a user by primary key.
func (s *UserStore) FindByID(ctx context.Context, id int64) (models.User, error) {
	const query = `
	SELECT id, name, email, password_hash, created_at
	FROM users
	WHERE id = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
