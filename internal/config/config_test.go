package config

import (
	"slices"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USERNAME", "gateway")
	t.Setenv("DB_PASSWORD", "s3cr3t")
	t.Setenv("DB_DATABASE", "auctions")
	t.Setenv("PROPMIX_ACCESS_TOKEN", "token")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "3005" {
		t.Errorf("Server.Port = %q, want 3005", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.User != "gateway" || cfg.Database.Name != "auctions" {
		t.Errorf("Database = %+v, want values from DB_* vars", cfg.Database)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Sheets.Range != "Sheet1" {
		t.Errorf("Sheets.Range = %q, want Sheet1", cfg.Sheets.Range)
	}
	if len(cfg.PropMix.AllowedFilters) != len(DefaultPropMixFilters) {
		t.Errorf("AllowedFilters = %v, want defaults", cfg.PropMix.AllowedFilters)
	}
	if cfg.Redis.Enabled() {
		t.Error("Redis.Enabled() = true without REDIS_ADDRESS")
	}
	if cfg.Observability.ServiceName != "homeauctiondeals-gateway" {
		t.Errorf("ServiceName = %q", cfg.Observability.ServiceName)
	}
	if cfg.Observability.Environment != cfg.Primary.Env {
		t.Errorf("Observability.Environment = %q, want %q", cfg.Observability.Environment, cfg.Primary.Env)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_CONN_MAX_LIFETIME", "2h")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_ADDRESS", "redis:6379")
	t.Setenv("PROPMIX_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://homeauctiondeals.com,https://www.homeauctiondeals.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Port != 6543 {
		t.Errorf("Database.Port = %d, want 6543", cfg.Database.Port)
	}
	if cfg.Database.ConnMaxLifetime != 2*time.Hour {
		t.Errorf("ConnMaxLifetime = %v, want 2h", cfg.Database.ConnMaxLifetime)
	}
	if cfg.PropMix.Timeout != 3*time.Second {
		t.Errorf("PropMix.Timeout = %v, want 3s", cfg.PropMix.Timeout)
	}
	if !cfg.Redis.Enabled() {
		t.Error("Redis.Enabled() = false with REDIS_ADDRESS set")
	}
	if !cfg.Observability.IsProduction() {
		t.Error("IsProduction() = false for APP_ENV=production")
	}
	if len(cfg.Server.CORSAllowedOrigins) != 2 {
		t.Errorf("CORSAllowedOrigins = %v, want 2 origins", cfg.Server.CORSAllowedOrigins)
	}
}

func TestLoadConfig_Lists(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantOrigins []string
		wantFilters []string
		wantChecks  []string
	}{
		{
			name: "comma separated",
			env: map[string]string{
				"CORS_ALLOWED_ORIGINS":    "https://homeauctiondeals.com,https://www.homeauctiondeals.com",
				"PROPMIX_ALLOWED_FILTERS": "MinListPrice,MaxListPrice",
				"HEALTH_CHECKS":           "database,redis",
			},
			wantOrigins: []string{"https://homeauctiondeals.com", "https://www.homeauctiondeals.com"},
			wantFilters: []string{"MinListPrice", "MaxListPrice"},
			wantChecks:  []string{"database", "redis"},
		},
		{
			name: "spaces and empty items",
			env: map[string]string{
				"CORS_ALLOWED_ORIGINS":    " https://a.example , ",
				"PROPMIX_ALLOWED_FILTERS": "PropertyType, ,MinListPrice",
				"HEALTH_CHECKS":           " database ",
			},
			wantOrigins: []string{"https://a.example"},
			wantFilters: []string{"PropertyType", "MinListPrice"},
			wantChecks:  []string{"database"},
		},
		{
			name: "blank keeps defaults",
			env: map[string]string{
				"CORS_ALLOWED_ORIGINS":    " ",
				"PROPMIX_ALLOWED_FILTERS": ",",
				"HEALTH_CHECKS":           "",
			},
			wantOrigins: []string{"*"},
			wantFilters: DefaultPropMixFilters,
			wantChecks:  DefaultObservabilityConfig().HealthChecks.Checks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}

			if !slices.Equal(cfg.Server.CORSAllowedOrigins, tt.wantOrigins) {
				t.Errorf("CORSAllowedOrigins = %q, want %q", cfg.Server.CORSAllowedOrigins, tt.wantOrigins)
			}
			if !slices.Equal(cfg.PropMix.AllowedFilters, tt.wantFilters) {
				t.Errorf("AllowedFilters = %q, want %q", cfg.PropMix.AllowedFilters, tt.wantFilters)
			}
			if !slices.Equal(cfg.Observability.HealthChecks.Checks, tt.wantChecks) {
				t.Errorf("HealthChecks.Checks = %q, want %q", cfg.Observability.HealthChecks.Checks, tt.wantChecks)
			}
			for _, check := range tt.wantChecks {
				if !cfg.Observability.HealthChecks.Runs(check) {
					t.Errorf("Runs(%q) = false", check)
				}
			}
		})
	}
}

func TestLoadConfig_RejectsUnknownHealthCheck(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HEALTH_CHECKS", "database,rediss")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() with HEALTH_CHECKS=database,rediss: expected error")
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{name: "database host", unset: "DB_HOST"},
		{name: "database user", unset: "DB_USERNAME"},
		{name: "database name", unset: "DB_DATABASE"},
		{name: "propmix token", unset: "PROPMIX_ACCESS_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			if _, err := LoadConfig(); err == nil {
				t.Errorf("LoadConfig() with %s empty: expected error", tt.unset)
			}
		})
	}
}

func TestObservabilityConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *ObservabilityConfig) {}},
		{name: "bad level", mutate: func(c *ObservabilityConfig) { c.Logging.Level = "verbose" }, wantErr: true},
		{name: "bad format", mutate: func(c *ObservabilityConfig) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "negative threshold", mutate: func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second }, wantErr: true},
		{name: "empty service", mutate: func(c *ObservabilityConfig) { c.ServiceName = "" }, wantErr: true},
		{name: "unknown health check", mutate: func(c *ObservabilityConfig) { c.HealthChecks.Checks = []string{"database", "postgres"} }, wantErr: true},
		{name: "unknown check while disabled", mutate: func(c *ObservabilityConfig) {
			c.HealthChecks.Enabled = false
			c.HealthChecks.Checks = []string{"postgres"}
		}},
		{name: "timeout above interval", mutate: func(c *ObservabilityConfig) { c.HealthChecks.Timeout = time.Minute }, wantErr: true},
		{name: "no checks", mutate: func(c *ObservabilityConfig) { c.HealthChecks.Checks = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultObservabilityConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHealthChecksConfig_Runs(t *testing.T) {
	h := HealthChecksConfig{Enabled: true, Checks: []string{"database"}}
	if !h.Runs("database") {
		t.Error("Runs(database) = false, want true")
	}
	if h.Runs("redis") {
		t.Error("Runs(redis) = true, want false")
	}

	h.Enabled = false
	if h.Runs("database") {
		t.Error("Runs(database) = true on disabled checks")
	}
}
