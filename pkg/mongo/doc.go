// Package mongo provides MongoDB connection management.
//
// Configuration is environment driven (see Config). New retries the initial
// connection and ping, which smooths over a database container that starts
// after the service. Healthcheck returns a probe function for readiness checks.
//
// # Usage
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	ready := mongo.Healthcheck(db.Client())
//
// Connection failures are reported as ErrFailedToConnectToMongo joined with the
// last driver error; use errors.Is to detect them.
package mongo
