package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/subscriptions/pkg/config"
	"github.com/dmitrymomot/subscriptions/pkg/httpserver"
	"github.com/dmitrymomot/subscriptions/pkg/logger"
	"github.com/dmitrymomot/subscriptions/pkg/requestid"
	"github.com/dmitrymomot/subscriptions/pkg/subscription"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("subscriptions stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.close(ctx); err != nil {
			log.Error("failed to close store", logger.Error(err))
		}
	}()

	svc := subscription.NewService(st.store,
		subscription.WithLogger(log),
		subscription.WithConcurrency(cfg.ListConcurrency),
	)

	lim, err := openLimiter(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer lim.close()

	deps := routerDeps{
		svc:     svc,
		limiter: lim.limiter,
		checks:  append(st.checks, lim.checks...),
		log:     log,
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, newRouter(deps))
}
