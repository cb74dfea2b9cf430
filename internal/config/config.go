// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types (struct), and
// validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: triggers godotenv's autoload feature.
	// If a `.env` file exists, it gets loaded into the process env
	// before any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Two env sources are layered with koanf, later sources win:

	- DB_USER, DB_PASSWORD, DB_HOST, DB_PORT, DB_NAME
	  Bare connection variables, mapped onto database.*.
	  e.g. DB_HOST -> database.host

	- CUSTOMERS_<SECTION>.<KEY>
	  Prefix removed, key lowercased, "." is the nesting delimiter.
	  e.g. CUSTOMERS_SERVER.PORT -> server.port -> Config.Server.Port
*/

const (
	// EnvPrefix is the prefix every structured env var carries.
	EnvPrefix = "CUSTOMERS_"

	// dbEnvPrefix is the prefix of the bare database variables.
	dbEnvPrefix = "DB_"

	// ServiceName labels logs and New Relic data for this service.
	ServiceName = "customer-api"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Upstream      UpstreamConfig       `koanf:"upstream" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// Durations are in seconds. ConnMaxLifetime recycles connections before
// the server or a proxy drops them; HealthCheckPeriod is how often the pool
// checks idle connections in the background.
type DatabaseConfig struct {
	Host              string `koanf:"host" validate:"required"`
	Port              int    `koanf:"port" validate:"required"`
	User              string `koanf:"user" validate:"required"`
	Password          string `koanf:"password" validate:"required"`
	Name              string `koanf:"name" validate:"required"`
	SSLMode           string `koanf:"ssl_mode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	SSLRootCert       string `koanf:"ssl_root_cert"`
	MaxOpenConns      int    `koanf:"max_open_conns" validate:"required,min=1"`
	MinConns          int    `koanf:"min_conns" validate:"min=0"`
	ConnMaxLifetime   int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime   int    `koanf:"conn_max_idle_time" validate:"required"`
	HealthCheckPeriod int    `koanf:"health_check_period" validate:"required"`
}

// UpstreamConfig points the /fetchtest proxy at the external demo API.
type UpstreamConfig struct {
	DemoAPIURL string `koanf:"demo_api_url" validate:"required,url"`
	Timeout    int    `koanf:"timeout" validate:"min=0"`
}

// defaultConfig returns the values used when the environment is silent.
//
// koanf only overwrites the fields it finds keys for, so unmarshalling on top
// of this struct leaves every default that the env doesn't mention in place.
func defaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Port:              5432,
			SSLMode:           "verify-full",
			MaxOpenConns:      10,
			MinConns:          0,
			ConnMaxLifetime:   3600,
			ConnMaxIdleTime:   300,
			HealthCheckPeriod: 60,
		},
		Upstream: UpstreamConfig{
			DemoAPIURL: "https://jsonplaceholder.typicode.com/users",
			Timeout:    10,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults, and returns the resulting config.
//
// Behavior summary:
//   - Loads DB_* vars into the database block
//   - Loads CUSTOMERS_ vars, overriding anything loaded before
//   - Unmarshals into Config on top of the defaults
//   - Validates required config blocks/fields
//   - Sets default observability if missing and validates it
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(dbEnvPrefix, ".", func(s string) string {
		return "database." + strings.ToLower(strings.TrimPrefix(s, dbEnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load database env variables: %w", err)
	}

	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Comma separated lists arrive as a single string.
	if raw := k.String("server.cors_allowed_origins"); raw != "" {
		origins := strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if err := k.Set("server.cors_allowed_origins", origins); err != nil {
			return nil, fmt.Errorf("could not split cors origins: %w", err)
		}
	}

	mainConfig := defaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// logs and traces agree with each other.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
