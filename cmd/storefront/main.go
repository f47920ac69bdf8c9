package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"metalmarket-storefront/internal/config"
	"metalmarket-storefront/internal/db"
	"metalmarket-storefront/internal/httpserver"
	"metalmarket-storefront/internal/repository/slot"
	cartsvc "metalmarket-storefront/internal/service/cart"
	checkoutsvc "metalmarket-storefront/internal/service/checkout"
	sessionsvc "metalmarket-storefront/internal/service/session"
	"metalmarket-storefront/internal/upstream"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var (
		dbpool *pgxpool.Pool
		slots  slot.Repository
	)
	switch cfg.StorageBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer client.Close()
		slots = slot.NewRedis(client)
		logger.Printf("using redis storage at %s", cfg.RedisAddr)
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		dbpool = pool
		slots = slot.NewPostgres(pool)
	default:
		logger.Fatalf("unknown storage backend %q", cfg.StorageBackend)
	}

	upstreamClient := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, logger)
	cartService := cartsvc.New(slots, logger)
	sessionService := sessionsvc.New(slots, logger)
	checkoutService := checkoutsvc.New(cartService, upstreamClient, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Cart:     cartService,
		Sessions: sessionService,
		Checkout: checkoutService,
		Upstream: upstreamClient,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
