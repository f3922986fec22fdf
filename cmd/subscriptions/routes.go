package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/subscriptions/handler"
	"github.com/dmitrymomot/subscriptions/modules/subscriptions"
	"github.com/dmitrymomot/subscriptions/pkg/clientip"
	"github.com/dmitrymomot/subscriptions/pkg/httpserver"
	"github.com/dmitrymomot/subscriptions/pkg/ratelimiter"
	"github.com/dmitrymomot/subscriptions/pkg/requestid"
	"github.com/dmitrymomot/subscriptions/pkg/subscription"
)

const readinessTimeout = 2 * time.Second

type routerDeps struct {
	svc     subscription.Service
	limiter ratelimiter.RateLimiter // nil disables rate limiting
	checks  []httpserver.Check
	log     *slog.Logger
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/", handler.Wrap(subscriptions.Index()))
	r.Get("/api-docs", handler.Wrap(subscriptions.APIDocs()))
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(d.log, readinessTimeout, d.checks...))

	r.Group(func(r chi.Router) {
		if d.limiter != nil {
			r.Use(ratelimiter.Middleware(d.limiter, clientip.Key,
				ratelimiter.WithLogger(d.log),
				ratelimiter.WithDeniedHandler(http.HandlerFunc(tooManyRequests)),
			))
		}
		r.Mount(subscriptions.BasePath, subscriptions.Router(d.svc, d.log))
	})
	return r
}

func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	_ = handler.JSONError(http.StatusTooManyRequests, handler.ErrorDetail{
		Code:    "rate_limited",
		Message: "too many requests",
	}).Render(w, r)
}
