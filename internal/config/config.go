package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServiceConfig holds all configuration for the question service.
type ServiceConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Seed     SeedConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds PostgreSQL configuration. An empty DSN selects the
// in-memory repository.
type DatabaseConfig struct {
	DSN           string
	MigrationsDir string
	MaxOpenConns  int
	MaxIdleConns  int
}

// RedisConfig holds the optional list-cache configuration. An empty address
// disables the cache.
type RedisConfig struct {
	Address  string
	Password string
	CacheTTL time.Duration
}

// AuthConfig holds the admin credential set.
type AuthConfig struct {
	AdminTokens []string
}

// SeedConfig holds the optional seed-catalog file.
type SeedConfig struct {
	File string
}

// ConsoleConfig holds all configuration for the management console.
type ConsoleConfig struct {
	BaseURL   string
	AuthToken string
	Admin     bool
	Timeout   time.Duration
}

// LoadService loads the question service configuration from environment
// variables.
func LoadService() (*ServiceConfig, error) {
	cfg := &ServiceConfig{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			DSN:           getEnv("DATABASE_DSN", ""),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
			MaxOpenConns:  getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:  getEnvAsInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			CacheTTL: getEnvAsDuration("REDIS_CACHE_TTL", time.Minute),
		},
		Auth: AuthConfig{
			AdminTokens: splitNonEmpty(getEnv("ADMIN_TOKENS", "")),
		},
		Seed: SeedConfig{
			File: getEnv("SEED_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the service configuration.
func (c *ServiceConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if len(c.Auth.AdminTokens) == 0 {
		return fmt.Errorf("at least one admin token is required (ADMIN_TOKENS)")
	}

	return nil
}

// LoadConsole loads the management console configuration from environment
// variables.
func LoadConsole() (*ConsoleConfig, error) {
	cfg := &ConsoleConfig{
		BaseURL:   getEnv("CONSOLE_BASE_URL", "http://localhost:8080"),
		AuthToken: getEnv("CONSOLE_AUTH_TOKEN", ""),
		Admin:     getEnvAsBool("CONSOLE_ADMIN", false),
		Timeout:   getEnvAsDuration("CONSOLE_TIMEOUT", 30*time.Second),
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("console base URL is required")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitNonEmpty(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
