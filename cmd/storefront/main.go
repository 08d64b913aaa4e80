package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/api"
	"github.com/Lamecke/frontend-ecommerce/internal/config"
	"github.com/Lamecke/frontend-ecommerce/internal/mirror"
	"github.com/Lamecke/frontend-ecommerce/internal/store"
	"github.com/Lamecke/frontend-ecommerce/internal/web"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Durable mirror: Redis when configured, in-process otherwise.
	var m mirror.Mirror
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		logger.Info("redis ping succeeded", zap.String("addr", cfg.RedisAddr))
		m = mirror.NewRedisMirror(redisClient, cfg.SessionID)
	} else {
		logger.Info("no redis configured, cart will not survive restarts")
		m = mirror.NewMemoryMirror()
	}

	// The API client needs the session token; the session store needs the
	// client. Close over the variable to break the cycle.
	var auth *store.Auth
	client := api.NewClient(cfg.APIBaseURL, func() string {
		if auth == nil {
			return ""
		}
		return auth.Token()
	}, logger)
	auth = store.NewAuth(client, logger)

	cart := store.NewCart(m, client, logger)
	cart.Hydrate(ctx)

	products := store.NewProducts(client, logger)
	orders := store.NewOrders(client, logger)

	router := web.NewRouter(web.Stores{
		Cart:     cart,
		Products: products,
		Orders:   orders,
		Auth:     auth,
	}, logger, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront starting", zap.String("port", cfg.HTTPPort), zap.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down storefront...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	if err := cart.Flush(shutdownCtx); err != nil {
		logger.Warn("cart flush failed", zap.Error(err))
	}

	logger.Info("storefront stopped")
}
