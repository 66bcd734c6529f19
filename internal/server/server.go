package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hongminglow/orders-be/internal/auth"
	"github.com/hongminglow/orders-be/internal/config"
	"github.com/hongminglow/orders-be/internal/http/handlers"
	"github.com/hongminglow/orders-be/internal/middleware"
	"github.com/hongminglow/orders-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// NewUserServer wires the user service: registration, login, and the
// network-exposed token verification endpoint.
func NewUserServer(cfg config.Config, logger *slog.Logger, users storage.UserStore) *Server {
	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	handlers.NewUsersHandler(users, tokens, logger).Register(mux)

	return newServer(cfg, logger, mux)
}

// NewOrderServer wires the order service. Every order route runs behind
// RequireAuth with the given authenticator, which in production is the
// delegated client pointing at the user service.
func NewOrderServer(cfg config.Config, logger *slog.Logger, orders storage.OrderStore, authenticator auth.Authenticator) *Server {
	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)

	ordersMux := http.NewServeMux()
	handlers.NewOrdersHandler(orders, logger).Register(ordersMux)
	protected := middleware.RequireAuth(authenticator, logger, ordersMux)
	mux.Handle("/orders", protected)
	mux.Handle("/orders/", protected)

	return newServer(cfg, logger, mux)
}

func newServer(cfg config.Config, logger *slog.Logger, mux *http.ServeMux) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := middleware.NewMetrics(registry)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	handler := middleware.CORS(cfg.CORSOrigins,
		middleware.Logging(logger, metrics.Instrument(mux)))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
