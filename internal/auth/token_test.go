package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestManager(ttl time.Duration) *TokenManager {
	return NewTokenManager(testSecret, "user-service", ttl)
}

func TestVerify_RoundTrip(t *testing.T) {
	tm := newTestManager(time.Hour)

	token, err := tm.Generate(42)
	require.NoError(t, err)

	userID, err := tm.Verify(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
}

func TestVerify_Expired(t *testing.T) {
	expired := newTestManager(-time.Minute)

	token, err := expired.Generate(42)
	require.NoError(t, err)

	_, err = newTestManager(time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	other := NewTokenManager("rotated-secret", "user-service", time.Hour)

	token, err := other.Generate(42)
	require.NoError(t, err)

	_, err = newTestManager(time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := newTestManager(time.Hour).Verify("not.a.token")
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_MissingSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "user-service",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newTestManager(time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrMissingSubject)
}

func TestVerify_NonNumericSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newTestManager(time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrTokenMalformed)
}
