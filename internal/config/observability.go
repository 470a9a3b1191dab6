package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ObservabilityConfig groups configuration related to telemetry and runtime
// visibility: structured logging, New Relic APM and dependency health checks.
//
// It is optional at the root (pointer in Config); defaults are injected
// before env values are applied.
type ObservabilityConfig struct {
	// ServiceName identifies the gateway in logs and APM dashboards.
	// It is forced by LoadConfig and not read from the environment.
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment splits telemetry by deployment (production, staging, ...).
	Environment string `koanf:"environment" validate:"required"`

	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic"`
	HealthChecks HealthChecksConfig `koanf:"health_checks" validate:"required"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level" validate:"required"`

	// Format selects "json" or "console" output.
	Format string `koanf:"format" validate:"required"`

	// SlowQueryThreshold marks repository queries that should be logged at
	// warn level. Parsed as a Go duration ("100ms", "1s").
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
//
// An empty LicenseKey disables the agent entirely; every integration
// checks for a nil application and degrades to a no-op.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// HealthChecksConfig controls the dependency checks behind GET /status.
type HealthChecksConfig struct {
	Enabled bool `koanf:"enabled"`

	// Interval is kept for parity with the deployment manifests, which poll
	// /status on this period.
	Interval time.Duration `koanf:"interval" validate:"min=1s"`

	// Timeout bounds each individual dependency ping.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// Checks names the dependencies to probe ("database", "redis").
	Checks []string `koanf:"checks"`
}

// Runs reports whether the named check is enabled.
func (h HealthChecksConfig) Runs(name string) bool {
	if !h.Enabled {
		return false
	}
	return slices.Contains(h.Checks, name)
}

// DefaultObservabilityConfig provides the defaults used when no
// observability variables are set.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: "homeauctiondeals-gateway",
		Environment: "development",
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false, // mixes agent output into our log stream
		},
		HealthChecks: HealthChecksConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
			Timeout:  5 * time.Second,
			Checks:   []string{"database", "redis"},
		},
	}
}

// KnownHealthChecks are the dependency checks /status knows how to run.
var KnownHealthChecks = []string{"database", "redis"}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate applies rules that go beyond struct tags.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	if !slices.Contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid LOG_LEVEL %q (must be one of: %s)", c.Logging.Level, strings.Join(validLogLevels, ", "))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid LOG_FORMAT %q (must be json or console)", c.Logging.Format)
	}
	if c.Logging.SlowQueryThreshold < 0 {
		return fmt.Errorf("LOG_SLOW_QUERY_THRESHOLD must be non-negative")
	}

	return c.HealthChecks.validate()
}

// validate rejects check names /status cannot run, so a typo in
// HEALTH_CHECKS fails startup instead of silently skipping a dependency.
func (h HealthChecksConfig) validate() error {
	if !h.Enabled {
		return nil
	}
	for _, check := range h.Checks {
		if !slices.Contains(KnownHealthChecks, check) {
			return fmt.Errorf("unknown health check %q in HEALTH_CHECKS (known: %s)", check, strings.Join(KnownHealthChecks, ", "))
		}
	}
	if h.Interval > 0 && h.Timeout > h.Interval {
		return fmt.Errorf("HEALTH_CHECKS_TIMEOUT %s exceeds the %s check interval", h.Timeout, h.Interval)
	}
	return nil
}

// GetLogLevel returns the effective log level, defaulting by environment
// when none is set.
func (c *ObservabilityConfig) GetLogLevel() string {
	switch c.Environment {
	case "production":
		if c.Logging.Level == "" {
			return "info"
		}
	case "development", "local":
		if c.Logging.Level == "" {
			return "debug"
		}
	}
	return c.Logging.Level
}

// IsProduction reports whether the gateway is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}
