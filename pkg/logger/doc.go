// Package logger builds *slog.Logger values with functional options and injects
// request-scoped attributes from context.Context.
//
// New selects a text or JSON handler, applies static attributes and wraps the
// result in LogHandlerDecorator, which runs registered ContextExtractor
// callbacks on every record. WithEnvironment applies per-environment defaults:
// text/debug for development, JSON/info for staging and production.
//
// Attribute helpers (Error, SubscriptionID, UserID, Status, Component, ...)
// keep key names consistent across packages. Helpers return an empty Attr for
// nil or empty input, so callers can pass them unconditionally:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "subscriptions"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "subscription renewed",
//		logger.SubscriptionID(sub.ID),
//		logger.Error(err),
//	)
package logger
