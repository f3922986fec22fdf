// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (a `.env` file in the working directory is
// loaded once, without overriding variables already set) and
// github.com/caarlos0/env/v11 (struct tags `env`, `envDefault`, `required`).
//
// Each package declares its own Config struct with env tags; the binary loads
// them one by one:
//
//	var httpCfg httpserver.Config
//	config.MustLoad(&httpCfg)
//
// LoadFrom parses from an explicit map, which keeps tests independent from the
// process environment.
package config
