package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/orders-be/internal/auth"
	"github.com/hongminglow/orders-be/internal/models"
	"github.com/hongminglow/orders-be/internal/storage/memory"
)

func TestLocalAuthenticator_Authenticate(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	user, err := users.CreateUser(ctx, models.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	tokens := auth.NewTokenManager("secret", "user-service", time.Hour)
	authenticator := auth.NewLocalAuthenticator(tokens, users)

	token, err := tokens.Generate(user.ID)
	require.NoError(t, err)

	identity, err := authenticator.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, identity.ID)
	require.Equal(t, "alice@example.com", identity.Email)
}

// Deleting a user invalidates every outstanding token immediately, because
// the subject is re-checked against the store on each verification.
func TestLocalAuthenticator_DeletedSubject(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	user, err := users.CreateUser(ctx, models.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	tokens := auth.NewTokenManager("secret", "user-service", time.Hour)
	authenticator := auth.NewLocalAuthenticator(tokens, users)

	token, err := tokens.Generate(user.ID)
	require.NoError(t, err)

	users.DeleteUser(ctx, user.ID)

	_, err = authenticator.Authenticate(ctx, token)
	require.ErrorIs(t, err, auth.ErrUnknownSubject)
}

func TestLocalAuthenticator_BadToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "user-service", time.Hour)
	authenticator := auth.NewLocalAuthenticator(tokens, memory.NewUserStore())

	_, err := authenticator.Authenticate(context.Background(), "garbage")
	require.ErrorIs(t, err, auth.ErrTokenMalformed)
}
