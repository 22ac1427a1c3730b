package config

import "strings"

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: session and authorization configuration
//   - database.go: database and cache configuration
//   - http.go: HTTP server configuration
type AppConfig struct {
	// Env is the deployment environment: "development", "test", or "production".
	Env string `env:"APP_ENV" envDefault:"development"`

	// Auth holds session signing and authorization configuration.
	Auth AuthConfig

	// Database configuration.
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`
	Cache    CacheConfig

	// HTTP server configuration.
	HTTP HTTPConfig

	// Metrics controls StatsD emission.
	Metrics MetricsConfig
}

// IsProduction reports whether the app runs in a production environment.
// Cookie security attributes and secret validation key off this.
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = "development"
	}
	c.HTTP.Sanitize()
	c.Cache.Sanitize()
	c.Metrics.Sanitize()
	c.Auth.Sanitize(c.IsProduction())
}

// Validate checks configuration invariants that must hold before the
// process is allowed to serve traffic.
func (c *AppConfig) Validate() error {
	return c.Auth.Validate(c.IsProduction())
}
