package main

import (
	"context"
	"log"
	"net/http"

	"github.com/carrylink/carrylink-backend/config"
	"github.com/carrylink/carrylink-backend/internal/auth"
	"github.com/carrylink/carrylink-backend/internal/bootstrap"
	"github.com/carrylink/carrylink-backend/internal/ratelimit"
	"github.com/carrylink/carrylink-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	if cfg.Database.AutoMigrate {
		sqlDB, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			log.Fatalf("connect for schema setup: %v", err)
		}
		if err := postgres.EnsureSchema(sqlDB); err != nil {
			log.Fatalf("ensure schema: %v", err)
		}
		_ = sqlDB.Close()
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      postgres.DSN(&cfg.Database),
		MaxConns: int32(cfg.Database.MaxConns),
	})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer pool.Close()

	// Shared Redis counters when configured, otherwise a per-process map
	// with a periodic sweep of expired windows.
	var limiterStore ratelimit.CounterStore
	if cfg.Redis.Addr != "" {
		client, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("open redis: %v", err)
		}
		defer client.Close()
		limiterStore = ratelimit.NewRedisStore(client)
	} else {
		mem := ratelimit.NewMemoryStore()
		sweeper := mem.StartSweeper()
		defer sweeper.Stop()
		limiterStore = mem
	}

	sessions := auth.NewSessionCodec(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:     "carrylink-backend",
		Version:         cfg.App.Version,
		DB:              pool,
		Sessions:        sessions,
		BcryptCost:      cfg.Auth.BcryptCost,
		AllowAPIKeyAuth: cfg.Auth.AllowAPIKeyAuth,
		RateLimitStore:  limiterStore,
		RateLimitMax:    cfg.RateLimit.MaxRequests,
		RateLimitWindow: cfg.RateLimit.Window,
	})

	addr := ":" + cfg.Server.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("server: %v", err)
	}
}
