// Package config manages environment variables.
//
// It reads variables from the process environment (and from a `.env`
// file when one exists), loads them into structured Go types, and
// validates that required values are present so the gateway fails fast
// on bad or missing configuration.
//
// Responsibilities:
//   - Map the well-known env names (DB_HOST, PORT, ...) onto config keys.
//   - Apply defaults for everything optional.
//   - Validate required values and observability settings.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config is the root configuration object for the gateway.
//
// The `koanf:"..."` tags name the dotted key each field is read from,
// `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	PropMix       PropMixConfig        `koanf:"propmix" validate:"required"`
	Sheets        SheetsConfig         `koanf:"sheets" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// DatabaseConfig contains connection parameters for the property database
// and pool tuning.
type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxConns        int32         `koanf:"max_conns" validate:"min=1"`
	MinConns        int32         `koanf:"min_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

// RedisConfig contains Redis connection details.
// An empty Address disables Redis, background jobs and the shared rate
// limiter store.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// PropMixConfig configures the third-party listing API.
type PropMixConfig struct {
	BaseURL     string        `koanf:"base_url" validate:"required,url"`
	AccessToken string        `koanf:"access_token" validate:"required"`
	Timeout     time.Duration `koanf:"timeout" validate:"min=1s"`

	// AllowedFilters lists the request query parameters that may be
	// forwarded to the API as listing filters.
	AllowedFilters []string `koanf:"allowed_filters"`
}

// SheetsConfig points at the spreadsheet enquiries are appended to.
type SheetsConfig struct {
	CredentialsFile string `koanf:"credentials_file" validate:"required"`
	SpreadsheetID   string `koanf:"spreadsheet_id" validate:"required"`
	Range           string `koanf:"range" validate:"required"`
}

// IntegrationConfig stores secrets and addresses for optional integrations.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	NotifyFrom   string `koanf:"notify_from"`
	NotifyTo     string `koanf:"notify_to"`
}

// NotificationsEnabled reports whether enquiry notification emails can be sent.
func (i IntegrationConfig) NotificationsEnabled() bool {
	return i.ResendAPIKey != "" && i.NotifyTo != ""
}

// RateLimitConfig bounds how often a single client may submit enquiries.
type RateLimitConfig struct {
	EnquiryPerMinute int `koanf:"enquiry_per_minute" validate:"min=1"`
}

// DefaultPropMixFilters are the listing filters clients may pass through
// to the PropMix API when PROPMIX_ALLOWED_FILTERS is not set.
var DefaultPropMixFilters = []string{
	"MinListPrice",
	"MaxListPrice",
	"MinBedroomsTotal",
	"MaxBedroomsTotal",
	"MinBathroomsTotal",
	"MaxBathroomsTotal",
	"MinLivingArea",
	"MaxLivingArea",
	"MinYearBuilt",
	"MaxYearBuilt",
	"PropertyType",
	"PropertySubType",
	"OrderBy",
	"OrderDirection",
}

// envKeys maps the environment variable names the gateway understands to
// koanf keys. Variables not listed here are ignored.
var envKeys = map[string]string{
	"APP_ENV": "primary.env",

	"PORT":                 "server.port",
	"SERVER_READ_TIMEOUT":  "server.read_timeout",
	"SERVER_WRITE_TIMEOUT": "server.write_timeout",
	"SERVER_IDLE_TIMEOUT":  "server.idle_timeout",
	"CORS_ALLOWED_ORIGINS": "server.cors_allowed_origins",

	"DB_HOST":               "database.host",
	"DB_PORT":               "database.port",
	"DB_USERNAME":           "database.user",
	"DB_PASSWORD":           "database.password",
	"DB_DATABASE":           "database.name",
	"DB_SSL_MODE":           "database.ssl_mode",
	"DB_MAX_CONNS":          "database.max_conns",
	"DB_MIN_CONNS":          "database.min_conns",
	"DB_CONN_MAX_LIFETIME":  "database.conn_max_lifetime",
	"DB_CONN_MAX_IDLE_TIME": "database.conn_max_idle_time",

	"REDIS_ADDRESS": "redis.address",

	"PROPMIX_BASE_URL":        "propmix.base_url",
	"PROPMIX_ACCESS_TOKEN":    "propmix.access_token",
	"PROPMIX_TIMEOUT":         "propmix.timeout",
	"PROPMIX_ALLOWED_FILTERS": "propmix.allowed_filters",

	"SHEETS_CREDENTIALS_FILE": "sheets.credentials_file",
	"SHEETS_SPREADSHEET_ID":   "sheets.spreadsheet_id",
	"SHEETS_RANGE":            "sheets.range",

	"RESEND_API_KEY":      "integration.resend_api_key",
	"ENQUIRY_NOTIFY_FROM": "integration.notify_from",
	"ENQUIRY_NOTIFY_TO":   "integration.notify_to",

	"RATE_LIMIT_ENQUIRY_PER_MINUTE": "rate_limit.enquiry_per_minute",

	"LOG_LEVEL":                             "observability.logging.level",
	"LOG_FORMAT":                            "observability.logging.format",
	"LOG_SLOW_QUERY_THRESHOLD":              "observability.logging.slow_query_threshold",
	"NEW_RELIC_LICENSE_KEY":                 "observability.new_relic.license_key",
	"NEW_RELIC_APP_LOG_FORWARDING_ENABLED":  "observability.new_relic.app_log_forwarding_enabled",
	"NEW_RELIC_DISTRIBUTED_TRACING_ENABLED": "observability.new_relic.distributed_tracing_enabled",
	"NEW_RELIC_DEBUG_LOGGING":               "observability.new_relic.debug_logging",
	"HEALTH_CHECKS_ENABLED":                 "observability.health_checks.enabled",
	"HEALTH_CHECKS_TIMEOUT":                 "observability.health_checks.timeout",
	"HEALTH_CHECKS":                         "observability.health_checks.checks",
}

// listKeys are the config keys holding comma separated env values.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"propmix.allowed_filters":            true,
	"observability.health_checks.checks": true,
}

// envValue maps an env variable onto its config key. List values are split
// into slices; an empty list is skipped so the default stays in place.
func envValue(name, value string) (string, any) {
	key := envKeys[name]
	if key == "" || !listKeys[key] {
		return key, value
	}

	items := parseList(value)
	if len(items) == 0 {
		return "", nil
	}
	return key, items
}

// parseList splits a comma separated value, trimming spaces and dropping
// empty items.
func parseList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// defaultConfig returns a Config pre-populated with every optional value.
// Env values are unmarshalled on top of it, so only keys that are present
// in the environment overwrite these.
func defaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "3005",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxConns:        4,
			MinConns:        1,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
		},
		PropMix: PropMixConfig{
			BaseURL:        "https://staging-api.propmix.io/pubrec/distress/v1/GetPropertiesInBoundingBox",
			Timeout:        15 * time.Second,
			AllowedFilters: append([]string(nil), DefaultPropMixFilters...),
		},
		Sheets: SheetsConfig{
			CredentialsFile: "homeauctiondeals-ec31743fd08f.json",
			SpreadsheetID:   "1jILjxhljcX0s5Y1_gpHmx4DHC3NhbSxoYey_5A3bG3k",
			Range:           "Sheet1",
		},
		RateLimit:     RateLimitConfig{EnquiryPerMinute: 10},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it
// on top of the defaults, validates it and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// The callback translates env names through envKeys. Returning "" makes
	// the provider skip the variable, so unrelated env vars never reach koanf.
	err := k.Load(env.ProviderWithValue("", ".", envValue), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := defaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Service name is fixed; environment always follows the primary env.
	mainConfig.Observability.ServiceName = "homeauctiondeals-gateway"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
