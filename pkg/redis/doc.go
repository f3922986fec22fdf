// Package redis connects to a Redis server for state shared between
// service instances, such as rate limit buckets.
//
// Connect retries the initial ping according to Config and returns a ready
// *redis.Client from github.com/redis/go-redis/v9. Healthcheck adapts a client
// into a readiness probe for the HTTP server.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Errors wrap the driver error with one of the package sentinels using
// errors.Join, so both can be matched with errors.Is.
package redis
