// Package ratelimiter implements token bucket rate limiting with HTTP
// middleware. Buckets live in a MemoryStore for a single instance or in a
// RedisStore when several instances must share limits.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request consumes one token; a request that would take
// the bucket below zero is denied without spending tokens.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	bucket, err := ratelimiter.NewBucket(store, cfg)
//	if err != nil {
//		return err
//	}
//	r.Use(ratelimiter.Middleware(bucket, func(r *http.Request) string {
//		return clientip.GetIP(r)
//	}))
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every limited response and Retry-After on denials.
package ratelimiter
