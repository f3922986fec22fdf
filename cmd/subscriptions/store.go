package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/subscriptions/pkg/config"
	"github.com/dmitrymomot/subscriptions/pkg/httpserver"
	"github.com/dmitrymomot/subscriptions/pkg/logger"
	"github.com/dmitrymomot/subscriptions/pkg/mongo"
	"github.com/dmitrymomot/subscriptions/pkg/pg"
	"github.com/dmitrymomot/subscriptions/pkg/subscription"
)

// storage is the selected Store with its readiness checks and shutdown hook.
type storage struct {
	store  subscription.Store
	checks []httpserver.Check
	close  func(context.Context) error
}

func openStorage(ctx context.Context, cfg appConfig, log *slog.Logger) (*storage, error) {
	switch cfg.StoreDriver {
	case driverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return &storage{
			store: subscription.NewMemoryStore(),
			close: func(context.Context) error { return nil },
		}, nil

	case driverMongo:
		var mcfg mongo.Config
		if err := config.Load(&mcfg); err != nil {
			return nil, err
		}
		var scfg subscription.MongoStoreConfig
		if err := config.Load(&scfg); err != nil {
			return nil, err
		}

		db, err := mongo.NewWithDatabase(ctx, mcfg)
		if err != nil {
			return nil, err
		}
		client := db.Client()

		store, err := subscription.NewMongoStore(ctx, db, scfg)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Info("connected to mongodb",
			slog.String("database", mcfg.Database),
			slog.String("collection", scfg.Collection),
		)

		return &storage{
			store:  subscription.NewBreakerStore(store, cfg.Breaker, log.With(logger.Component("store"))),
			checks: []httpserver.Check{{Name: "mongo", Fn: mongo.Healthcheck(client)}},
			close:  client.Disconnect,
		}, nil

	case driverPostgres:
		var pcfg pg.Config
		if err := config.Load(&pcfg); err != nil {
			return nil, err
		}

		pool, err := pg.Connect(ctx, pcfg)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, subscription.Migrations, subscription.MigrationsDir, pcfg, log); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("connected to postgres")

		return &storage{
			store:  subscription.NewBreakerStore(subscription.NewPostgresStore(pool), cfg.Breaker, log.With(logger.Component("store"))),
			checks: []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}},
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil
	}

	return nil, fmt.Errorf("unknown STORE_DRIVER %q: want %q, %q or %q", cfg.StoreDriver, driverMongo, driverPostgres, driverMemory)
}
