package main

import (
	"github.com/dmitrymomot/subscriptions/pkg/httpserver"
	"github.com/dmitrymomot/subscriptions/pkg/ratelimiter"
	"github.com/dmitrymomot/subscriptions/pkg/subscription"
)

const (
	driverMongo    = "mongo"
	driverPostgres = "postgres"
	driverMemory   = "memory"
)

type appConfig struct {
	Env             string `env:"APP_ENV" envDefault:"development"`
	Name            string `env:"APP_NAME" envDefault:"subscriptions"`
	StoreDriver     string `env:"STORE_DRIVER" envDefault:"mongo"`
	ListConcurrency int    `env:"LIST_CONCURRENCY" envDefault:"8"`
	RateLimitStore  string `env:"RATE_LIMIT_STORE" envDefault:"memory"`

	HTTP      httpserver.Config
	Breaker   subscription.BreakerConfig
	RateLimit ratelimiter.Config
}
