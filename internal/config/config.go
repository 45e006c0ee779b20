// Package config loads service configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config is the full service configuration.
type Config struct {
	Server         ServerConfig
	Store          StoreConfig
	Database       DatabaseConfig
	Mongo          MongoConfig
	Logging        LoggingConfig
	RateLimit      RateLimitConfig
	CORS           CORSConfig
	MigrationsPath string
	Environment    string
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host        string
	Port        int
	RoutePrefix string
}

// Addr returns the host:port pair to listen on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StoreConfig selects the event store backend.
type StoreConfig struct {
	Driver string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL            string
	MaxConnections int
	MinConnections int
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// LoggingConfig holds the zerolog level and output format.
type LoggingConfig struct {
	Level  string
	Format string
}

// RateLimitConfig limits requests per client IP. Zero disables limiting.
type RateLimitConfig struct {
	PerMinute int
}

// CORSConfig lists the allowed origins; "*" allows any.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvInt("SERVER_PORT", getEnvInt("PORT", 8080)),
			RoutePrefix: getEnv("ROUTE_PREFIX", "/events"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", postgresURLFromEnv()),
			MaxConnections: getEnvInt("DATABASE_MAX_CONNECTIONS", 20),
			MinConnections: getEnvInt("DATABASE_MIN_CONNECTIONS", 2),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGO_DATABASE", "eventos"),
			Collection: getEnv("MONGO_COLLECTION", "events"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			PerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 0),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		MigrationsPath: getEnv("MIGRATIONS_PATH", "internal/database/migrations"),
		Environment:    getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late at startup.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of %s, %s, %s (got %q)",
			DriverPostgres, DriverMongo, DriverMemory, c.Store.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.Server.Port)
	}
	if !strings.HasPrefix(c.Server.RoutePrefix, "/") {
		return fmt.Errorf("ROUTE_PREFIX must start with /: %q", c.Server.RoutePrefix)
	}
	if c.Store.Driver == DriverMongo && (c.Mongo.Database == "" || c.Mongo.Collection == "") {
		return fmt.Errorf("MONGO_DATABASE and MONGO_COLLECTION are required")
	}
	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be >= 0")
	}
	return nil
}

// postgresURLFromEnv builds a connection URL from the discrete DB_* variables,
// falling back to local-development defaults.
func postgresURLFromEnv() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "eventos"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
