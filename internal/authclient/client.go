// Package authclient implements auth.Authenticator by delegating token
// verification to the user service's /verify-token endpoint.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hongminglow/orders-be/internal/auth"
	"github.com/hongminglow/orders-be/internal/models/dto"
)

// Ensure Client satisfies the auth.Authenticator interface at compile time.
var _ auth.Authenticator = (*Client)(nil)

// Client calls the user service to resolve bearer tokens. Verification sits
// on every request's critical path, so the call is a single bounded attempt:
// no retries, and the configured timeout caps how long a slow or dead peer
// can stall a request.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the user service at baseURL (no trailing slash).
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Authenticate forwards the token and maps every failure, semantic or
// transport, to auth.ErrUnauthorized. The cause stays wrapped for logging;
// the order service's own callers only ever see a uniform 401, so they
// cannot probe whether the verifier is down or the token is bad.
func (c *Client) Authenticate(ctx context.Context, token string) (auth.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify-token", nil)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: build verify request: %w", auth.ErrUnauthorized, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: user service unreachable: %w", auth.ErrUnauthorized, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return auth.Identity{}, fmt.Errorf("%w: verify-token returned %d: %s", auth.ErrUnauthorized, resp.StatusCode, body)
	}

	var user dto.VerifiedUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return auth.Identity{}, fmt.Errorf("%w: decode verify response: %w", auth.ErrUnauthorized, err)
	}
	return auth.Identity{ID: user.ID, Email: user.Email}, nil
}
