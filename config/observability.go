package config

import "strings"

// MetricsConfig controls StatsD metrics emission. Disabled by default so
// development environments need no sink running.
type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED"     envDefault:"false"`
	Addr    string `env:"METRICS_STATSD_ADDR" envDefault:"127.0.0.1:8125"`
	Prefix  string `env:"METRICS_PREFIX"      envDefault:"portal"`
}

// Sanitize applies guardrails to metrics configuration values.
func (m *MetricsConfig) Sanitize() {
	m.Addr = strings.TrimSpace(m.Addr)
	m.Prefix = strings.Trim(strings.TrimSpace(m.Prefix), ".")
	if m.Addr == "" {
		m.Enabled = false
	}
}
