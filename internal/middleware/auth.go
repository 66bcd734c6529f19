package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hongminglow/orders-be/internal/auth"
	"github.com/hongminglow/orders-be/internal/http/respond"
)

const bearerPrefix = "bearer "

type identityKey struct{}

// IdentityFromContext returns the authenticated caller set by RequireAuth.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(auth.Identity)
	return identity, ok
}

// RequireAuth extracts the bearer token, resolves it through the given
// authenticator, and stores the resulting identity in the request context.
// Every failure surfaces as the same 401; the underlying cause (bad token vs
// unreachable verifier) is only visible in the log line.
func RequireAuth(authenticator auth.Authenticator, logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractBearer(r)
		if token == "" {
			respond.Error(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		identity, err := authenticator.Authenticate(r.Context(), token)
		if err != nil {
			logger.Warn("authentication failed", "method", r.Method, "path", r.URL.Path, "error", err)
			respond.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ExtractBearer returns the token from the Authorization header, or "" if
// the header is missing or not a bearer credential. The prefix match is
// case-insensitive.
func ExtractBearer(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}
