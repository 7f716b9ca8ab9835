package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// ServerConfig holds listener configuration
type ServerConfig struct {
	RESTPort       string
	WSPort         string
	CommandTimeout time.Duration
}

// RedisConfig holds the optional page cache configuration.
// An empty URL or a zero TTL disables caching.
type RedisConfig struct {
	URL          string
	PageCacheTTL time.Duration
}

// DatabaseConfig holds the optional team directory database.
// An empty DSN uses the built-in team table.
type DatabaseConfig struct {
	DSN string
}

// SourceConfig controls how schedule pages are fetched
type SourceConfig struct {
	BaseURL            string
	Mode               string // "http" or "browser"
	MinRequestInterval time.Duration
}

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Source   SourceConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			RESTPort:       getEnv("REST_PORT", "8080"),
			WSPort:         getEnv("WS_PORT", "8081"),
			CommandTimeout: getDuration("COMMAND_TIMEOUT", 20*time.Second),
		},
		Redis: RedisConfig{
			URL:          getEnv("REDIS_URL", ""),
			PageCacheTTL: getDuration("PAGE_CACHE_TTL", 0),
		},
		Database: DatabaseConfig{
			DSN: getEnv("ATLAS_DSN", ""),
		},
		Source: SourceConfig{
			BaseURL:            getEnv("BREF_BASE_URL", "https://www.baseball-reference.com"),
			Mode:               strings.ToLower(getEnv("SCRAPER_MODE", "http")),
			MinRequestInterval: getDuration("MIN_REQUEST_INTERVAL", 3*time.Second),
		},
	}
}

// CacheEnabled reports whether scraped pages should go through Redis
func (c *Config) CacheEnabled() bool {
	return c.Redis.URL != "" && c.Redis.PageCacheTTL > 0
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}
