package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/gorjanv/bandpractise/internal/auth"
	"github.com/gorjanv/bandpractise/internal/band"
	"github.com/gorjanv/bandpractise/internal/ordering"
	"github.com/gorjanv/bandpractise/internal/setlock"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("bandpractise: load .env: %v", err)
	}

	cfg, err := loadConfigFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("bandpractise: connect db: %v", err)
	}
	defer pool.Close()

	if err := band.AutoMigrate(ctx, pool); err != nil {
		log.Fatalf("bandpractise: migrate: %v", err)
	}

	var locker ordering.Locker = setlock.Noop{}
	if cfg.OrderLock == lockRedis {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb := redis.NewClient(opt)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("bandpractise: redis ping: %v", err)
		}
		locker = setlock.NewRedis(rdb, cfg.LockTTL)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(cfg, band.NewPostgresStore(pool), locker),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("bandpractise: shutdown: %v", err)
		}
	}()

	log.Printf("bandpractise listening on :%s (order lock: %s)", cfg.Port, cfg.OrderLock)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("bandpractise: %v", err)
	}
}

func setupRouter(cfg Config, store band.Store, locker ordering.Locker) http.Handler {
	api := band.NewServer(store, locker).Router(
		auth.Middleware(auth.Options{Secret: cfg.JWTSecret, TrustHeaders: cfg.TrustUserHeader}),
	)

	r := chi.NewRouter()
	r.Use(corsMiddleware(cfg.AllowedOrigin))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(rateLimitMiddleware(newIPLimiter(cfg.RateLimitRPS)))
	r.Use(bodySizeLimitMiddleware(cfg.BodyLimitBytes))

	r.Mount("/", api)
	return r
}
