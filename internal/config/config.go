// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when present), loads them into structured Go types, and
// validates that required values are present so they can be
// reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional config blocks (observability, category policy).
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix EXPENSES_.
	Keys are lowercased with the prefix removed, and nested struct fields
	are addressed with "." as the delimiter:

		EXPENSES_SERVER.PORT      -> server.port      -> Config.Server.Port
		EXPENSES_DATABASE.HOST    -> database.host    -> Config.Database.Host
		EXPENSES_CATEGORY.DELETE_POLICY -> category.delete_policy
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "EXPENSES_"

// ServiceName labels logs, traces and APM data emitted by this service.
const ServiceName = "expense-tracker"

// Config is the root configuration object for the application.
//
// Observability and Category are optional. When not provided,
// defaults are injected by Load.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Category      CategoryConfig       `koanf:"category"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Usually used to tag logs/traces and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the number of requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port". Empty means Redis is not used.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// CategoryDeletePolicy decides what happens to expenses that still
// reference a category being deleted.
type CategoryDeletePolicy string

const (
	// DeletePolicyRestrict refuses to delete a category that has expenses.
	DeletePolicyRestrict CategoryDeletePolicy = "restrict"
	// DeletePolicyCascade deletes the referencing expenses together with the category.
	DeletePolicyCascade CategoryDeletePolicy = "cascade"
	// DeletePolicyNullify detaches the referencing expenses (category_id = NULL).
	DeletePolicyNullify CategoryDeletePolicy = "nullify"
)

// CategoryConfig holds the category deletion rules.
type CategoryConfig struct {
	DeletePolicy CategoryDeletePolicy `koanf:"delete_policy" validate:"omitempty,oneof=restrict cascade nullify"`

	// StrictDelete makes deleting an unknown category id a 404 instead of
	// a silent no-op.
	StrictDelete bool `koanf:"strict_delete"`
}

// Load loads configuration from environment variables, unmarshals it into
// Config, validates it, applies defaults and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix EXPENSES_
//   - Unmarshals into Config
//   - Validates required config blocks/fields
//   - Sets default observability and category policy if missing
//   - Overrides observability service name + environment
//   - Validates observability config as well
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	// koanf reads a comma separated env value as a single string.
	mainConfig.Server.CORSAllowedOrigins = splitList(mainConfig.Server.CORSAllowedOrigins)

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Category.DeletePolicy == "" {
		mainConfig.Category.DeletePolicy = DeletePolicyRestrict
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed and the environment always mirrors primary.env,
	// so every log line and trace is tagged consistently.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// DSN builds the postgres URL used by both the pool and the migrator.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.User,
		// URL-encode the password so characters like ':' or '@' keep the DSN intact.
		url.QueryEscape(c.Password),
		net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		c.Name,
		c.SSLMode,
	)
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
