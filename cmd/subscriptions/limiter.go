package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/subscriptions/pkg/config"
	"github.com/dmitrymomot/subscriptions/pkg/httpserver"
	"github.com/dmitrymomot/subscriptions/pkg/ratelimiter"
	"github.com/dmitrymomot/subscriptions/pkg/redis"
)

const (
	limiterMemory = "memory"
	limiterRedis  = "redis"
)

type limiter struct {
	limiter ratelimiter.RateLimiter // nil when rate limiting is disabled
	checks  []httpserver.Check
	close   func()
}

func openLimiter(ctx context.Context, cfg appConfig, log *slog.Logger) (*limiter, error) {
	if !cfg.RateLimit.Enabled {
		return &limiter{close: func() {}}, nil
	}

	var (
		store  ratelimiter.Store
		checks []httpserver.Check
		closer func()
	)
	switch cfg.RateLimitStore {
	case limiterMemory:
		ms := ratelimiter.NewMemoryStore()
		store, closer = ms, ms.Close

	case limiterRedis:
		var rcfg redis.Config
		if err := config.Load(&rcfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, rcfg)
		if err != nil {
			return nil, err
		}
		log.Info("connected to redis for rate limiting")
		store = ratelimiter.NewRedisStore(client)
		checks = []httpserver.Check{{Name: "redis", Fn: redis.Healthcheck(client)}}
		closer = func() { _ = client.Close() }

	default:
		return nil, fmt.Errorf("unknown RATE_LIMIT_STORE %q: want %q or %q", cfg.RateLimitStore, limiterMemory, limiterRedis)
	}

	bucket, err := ratelimiter.NewBucket(store, cfg.RateLimit)
	if err != nil {
		closer()
		return nil, err
	}
	return &limiter{limiter: bucket, checks: checks, close: closer}, nil
}
