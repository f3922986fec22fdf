// Package httpserver runs an http.Server with graceful shutdown and provides
// liveness and readiness handlers.
//
// Run binds the listener synchronously, so a bad address fails immediately
// with ErrStart. It then serves until the context is canceled, SIGINT or
// SIGTERM arrives (see WithSignals), or Shutdown is called, and drains
// in-flight requests within the shutdown timeout.
//
// # Usage
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	r := chi.NewRouter()
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log, 2*time.Second,
//		httpserver.Check{Name: "mongo", Fn: mongo.Healthcheck(client)},
//	))
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// # Errors
//
// Listen and serve failures wrap ErrStart; drain failures wrap ErrShutdown.
package httpserver
