package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/orders-be/internal/auth"
)

type stubAuthenticator struct {
	identity auth.Identity
	err      error
}

func (s stubAuthenticator) Authenticate(context.Context, string) (auth.Identity, error) {
	return s.identity, s.err
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc.def.ghi", "abc.def.ghi"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", ""},
		{"scheme only", "Bearer ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			require.Equal(t, tt.want, ExtractBearer(r))
		})
	}
}

func TestRequireAuth_SetsIdentity(t *testing.T) {
	authenticator := stubAuthenticator{identity: auth.Identity{ID: 7, Email: "alice@example.com"}}

	var got auth.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		got = identity
	})

	handler := RequireAuth(authenticator, slog.New(slog.DiscardHandler), next)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, auth.Identity{ID: 7, Email: "alice@example.com"}, got)
}

func TestRequireAuth_RejectsUniformly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for unauthenticated requests")
	})
	authenticator := stubAuthenticator{err: auth.ErrUnauthorized}
	handler := RequireAuth(authenticator, slog.New(slog.DiscardHandler), next)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/me", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
