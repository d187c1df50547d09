package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-bff/internal/api"
	"storefront-bff/internal/auth"
	"storefront-bff/internal/cache"
	"storefront-bff/internal/config"
	"storefront-bff/internal/resilience"
	"storefront-bff/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("Starting storefront BFF", "port", cfg.HTTPPort, "shop_api", cfg.ShopAPIURL, "environment", cfg.Environment)

	redisClient, err := cache.NewClient(cfg.RedisAddr)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.Info("Connected to Redis", "addr", cfg.RedisAddr)

	shopClient := services.NewShopClient(cfg)
	catalogClient := services.NewGuardedClient(shopClient, resilience.NewCircuitBreaker("shop-catalog", 5, 30*time.Second))

	handler := api.NewHandler(shopClient, catalogClient, redisClient, cfg)
	sessionMiddleware := auth.NewMiddleware(cfg.JWTSecret, cfg.SessionTTL, cfg.Environment != "development")

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           handler.Routes(sessionMiddleware),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", serverAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
