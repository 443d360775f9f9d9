package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey      string // service API key for the gateway
	AdminSecret string // capability secret gating item grants

	// StrictWrites enables the per-user lock + compare-and-swap write path.
	// When false the service reproduces the legacy unconditional-overwrite
	// behavior, which can lose concurrent updates.
	StrictWrites bool

	ProfileCacheSize int
	ProfileCacheTTL  time.Duration

	// TrustedProxies lists proxy IPs whose X-Forwarded-For header is honored
	TrustedProxies []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "garrison"),
		APIKey:     getEnv("API_KEY", ""),
		AdminSecret: getEnv("ADMIN_SECRET", ""),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	strict, err := strconv.ParseBool(getEnv("STRICT_WRITES", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid STRICT_WRITES value: %w", err)
	}
	cfg.StrictWrites = strict

	size, err := strconv.Atoi(getEnv("PROFILE_CACHE_SIZE", "1024"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROFILE_CACHE_SIZE value: %w", err)
	}
	cfg.ProfileCacheSize = size

	ttl, err := time.ParseDuration(getEnv("PROFILE_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROFILE_CACHE_TTL value: %w", err)
	}
	cfg.ProfileCacheTTL = ttl

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.AdminSecret == "" {
		return nil, fmt.Errorf("ADMIN_SECRET environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// UseMemoryStore reports whether no database is configured; state is then
// kept in process memory (dev mode only).
func (c *Config) UseMemoryStore() bool {
	return c.DBHost == ""
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
