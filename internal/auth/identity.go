package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/orders-be/internal/storage"
)

// ErrUnknownSubject means the token checked out but its subject no longer
// exists. Deleting a user is how an account is deactivated, so this must be
// re-checked on every verification rather than trusted from the token.
var ErrUnknownSubject = errors.New("user not found")

// ErrUnauthorized is the uniform failure a delegating service reports for
// any authentication problem, semantic or transport. Implementations wrap
// the underlying cause so logs can tell a bad token from an unreachable
// verifier, but callers must not branch on it.
var ErrUnauthorized = errors.New("unauthorized")

// Identity is the resolved caller of an authenticated request.
type Identity struct {
	ID    int64
	Email string
}

// Authenticator turns a raw bearer token into a verified identity. The user
// service verifies locally; the order service delegates over HTTP. Handlers
// are written against this interface and cannot tell the difference.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Identity, error)
}

// LocalAuthenticator verifies a token against the signing secret and then
// confirms the subject still exists in the user store.
type LocalAuthenticator struct {
	tokens *TokenManager
	users  storage.UserStore
}

// NewLocalAuthenticator constructs an authenticator backed by the given
// token manager and user store.
func NewLocalAuthenticator(tokens *TokenManager, users storage.UserStore) *LocalAuthenticator {
	return &LocalAuthenticator{tokens: tokens, users: users}
}

// Authenticate verifies signature and expiry, then re-looks-up the subject.
func (a *LocalAuthenticator) Authenticate(ctx context.Context, token string) (Identity, error) {
	userID, err := a.tokens.Verify(token)
	if err != nil {
		return Identity{}, err
	}
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Identity{}, ErrUnknownSubject
		}
		return Identity{}, fmt.Errorf("look up token subject: %w", err)
	}
	return Identity{ID: user.ID, Email: user.Email}, nil
}
