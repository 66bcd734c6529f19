package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/orders-be/internal/authclient"
	"github.com/hongminglow/orders-be/internal/config"
	"github.com/hongminglow/orders-be/internal/logging"
	"github.com/hongminglow/orders-be/internal/server"
	"github.com/hongminglow/orders-be/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	cfg, err := config.LoadOrderService()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New("order-service", cfg.LogFormat)

	ctx := context.Background()
	orderStore, err := postgres.NewOrderStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer orderStore.Close()

	authenticator := authclient.New(cfg.UserServiceURL, cfg.AuthTimeout)
	srv := server.NewOrderServer(cfg, logger, orderStore, authenticator)

	go func() {
		logger.Info("order service listening", "addr", cfg.HTTPAddress(), "user_service", cfg.UserServiceURL)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", "error", err)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
