package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures, from most to least specific. ErrTokenMalformed is
// the catch-all for bad signatures, garbled tokens, and wrong algorithms;
// errors wrapping it carry the underlying parse failure.
var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrMissingSubject = errors.New("token missing 'sub' claim")
	ErrTokenMalformed = errors.New("invalid token")
)

// TokenManager issues and verifies signed bearer tokens. The secret must be
// identical in every service that verifies tokens minted here; it is the
// whole of the trust relationship between the user and order services.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer, and lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Generate issues a signed JWT for the given user ID. The token is
// self-contained: nothing is persisted.
func (t *TokenManager) Generate(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    t.issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the signature and time bounds of a token and returns the
// user ID from its subject claim. It does not consult storage; callers that
// need the subject to still exist go through LocalAuthenticator.
func (t *TokenManager) Verify(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return t.secret, nil
	}, jwt.WithIssuedAt())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
	if claims.Subject == "" {
		return 0, ErrMissingSubject
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: subject %q is not a user id", ErrTokenMalformed, claims.Subject)
	}
	return userID, nil
}
