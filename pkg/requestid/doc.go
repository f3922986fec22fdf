// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware reuses a client-supplied X-Request-ID header when it is at most
// 128 characters of letters, digits, '-' or '_', and otherwise generates a UUID.
// The ID is stored in the request context, echoed in the response header, and
// added to log records through LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
