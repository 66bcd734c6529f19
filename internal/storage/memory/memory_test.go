package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/orders-be/internal/models"
	"github.com/hongminglow/orders-be/internal/storage"
)

func TestUserStore_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	_, err := store.CreateUser(ctx, models.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, models.User{Name: "Impostor", Email: "alice@example.com"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

// An order owned by someone else must be indistinguishable from one that
// does not exist, for every ownership-scoped operation.
func TestOrderStore_OwnershipScoping(t *testing.T) {
	ctx := context.Background()
	store := NewOrderStore()

	order, err := store.CreateOrder(ctx, models.Order{
		UserID: 1, Product: "widget", Quantity: 3, Status: models.StatusPending,
	})
	require.NoError(t, err)

	_, err = store.FindOrder(ctx, order.ID, 2)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.UpdateOrder(ctx, order.ID, 2, "gadget", 1)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.DeleteOrder(ctx, order.ID, 2)
	require.ErrorIs(t, err, storage.ErrNotFound)

	// The owner still sees the order untouched.
	got, err := store.FindOrder(ctx, order.ID, 1)
	require.NoError(t, err)
	require.Equal(t, order, got)
}

func TestOrderStore_ListByUser(t *testing.T) {
	ctx := context.Background()
	store := NewOrderStore()

	for _, userID := range []int64{1, 2, 1} {
		_, err := store.CreateOrder(ctx, models.Order{UserID: userID, Product: "widget", Quantity: 1})
		require.NoError(t, err)
	}

	mine, err := store.ListOrdersByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	none, err := store.ListOrdersByUser(ctx, 3)
	require.NoError(t, err)
	require.Empty(t, none)
}
