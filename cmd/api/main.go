package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"homeflow/auth"
	"homeflow/authz"
	"homeflow/cache"
	"homeflow/config"
	"homeflow/db"
	"homeflow/httpapi"
	"homeflow/listing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// .env is a development convenience; in deployment the environment is real.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	var cacheClient cache.Client
	if redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr); err != nil {
		// The cache is an optimization; searches fall through to Postgres.
		log.Printf("redis unavailable, search caching disabled: %v", err)
	} else {
		cacheClient = redisClient
	}

	codec := auth.NewCodec(cfg.JWTSecret, cfg.TokenExpiry)
	userRepo := auth.NewRepository(pool)
	authSvc := auth.NewService(userRepo, codec, cfg.ProductKeySecret)
	resolver := auth.NewResolver(codec, userRepo)

	registry := authz.NewRegistry()
	httpapi.RegisterPolicies(registry)
	engine := authz.NewEngine(registry, resolver)

	listingSvc := listing.NewService(listing.NewRepository(pool), cacheClient, cfg.SearchCacheTTL)

	handler := httpapi.NewHandler(authSvc, listingSvc, engine)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("homeflow api listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
