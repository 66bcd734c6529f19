package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars. The order
// service fields are zero-valued when loaded for the user service.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	CORSOrigins []string
	LogFormat   string

	// Order service only.
	UserServiceURL string
	AuthTimeout    time.Duration
}

// Load reads the configuration shared by both services and performs minimal
// validation.
func Load() (Config, error) {
	cfg := Config{
		Port:        fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:   fallback(os.Getenv("JWT_ISSUER"), "user-service"),
		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		LogFormat:   fallback(os.Getenv("LOG_FORMAT"), "json"),
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// LoadOrderService reads the common configuration plus the fields the order
// service needs to reach the user service's verify endpoint.
func LoadOrderService() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}

	cfg.UserServiceURL = strings.TrimRight(strings.TrimSpace(os.Getenv("USER_SERVICE_URL")), "/")
	if cfg.UserServiceURL == "" {
		return Config{}, errors.New("USER_SERVICE_URL is required")
	}

	seconds := fallback(os.Getenv("AUTH_REQUEST_TIMEOUT_SECONDS"), "3")
	if timeoutSeconds, err := strconv.Atoi(seconds); err == nil && timeoutSeconds > 0 {
		cfg.AuthTimeout = time.Duration(timeoutSeconds) * time.Second
	} else {
		cfg.AuthTimeout = 3 * time.Second
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
