package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/orders")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_TTL_MINUTES", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("USER_SERVICE_URL", "")
	t.Setenv("AUTH_REQUEST_TIMEOUT_SECONDS", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, "user-service", cfg.JWTIssuer)
	require.Equal(t, 60*time.Minute, cfg.JWTTTL)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_RequiredVars(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.ErrorContains(t, err, "DATABASE_URL")

	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_TTLOverride(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 15*time.Minute, cfg.JWTTTL)
}

func TestLoadOrderService(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("USER_SERVICE_URL", "http://user-service:8000/")

	cfg, err := LoadOrderService()
	require.NoError(t, err)
	require.Equal(t, "http://user-service:8000", cfg.UserServiceURL)
	require.Equal(t, 3*time.Second, cfg.AuthTimeout)
}

func TestLoadOrderService_RequiresUserServiceURL(t *testing.T) {
	setBaseEnv(t)
	_, err := LoadOrderService()
	require.ErrorContains(t, err, "USER_SERVICE_URL")
}

func TestLoadOrderService_TimeoutOverride(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("USER_SERVICE_URL", "http://user-service:8000")
	t.Setenv("AUTH_REQUEST_TIMEOUT_SECONDS", "10")

	cfg, err := LoadOrderService()
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, cfg.AuthTimeout)
}
