// Package pg connects to PostgreSQL through a pgx connection pool and applies
// schema migrations with goose.
//
// Connect retries the initial ping, waiting RetryInterval times the attempt
// number between attempts. Migrate runs every pending goose migration from an
// fs.FS, usually an embed.FS shipped next to the store that owns the schema.
// Healthcheck adapts the pool into a readiness probe.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, subscription.Migrations, subscription.MigrationsDir, cfg, log); err != nil {
//		return err
//	}
package pg
