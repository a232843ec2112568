package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port            string
	ShutdownTimeout time.Duration
	LogLevel        string

	// Result cache
	CacheBackend string
	CacheTTL     time.Duration

	// Redis, shared by the redis cache and counter backends
	RedisAddr string
	RedisDB   int

	// Visit counter
	CounterBackend string
	CounterName    string
	SQLitePath     string
	MySQLDSN       string

	// Rate limiting per client IP
	RateLimitCapacity int
	RateLimitWindow   time.Duration
}

var (
	cacheBackends   = []string{"memory", "redis", "none"}
	counterBackends = []string{"memory", "redis", "sqlite", "mysql"}
)

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),

		CacheBackend: getEnv("CACHE_BACKEND", "memory"),
		CacheTTL:     getEnvDuration("CACHE_TTL", 10*time.Minute),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		CounterBackend: getEnv("COUNTER_BACKEND", "memory"),
		CounterName:    getEnv("COUNTER_NAME", "app_access_counter"),
		SQLitePath:     getEnv("SQLITE_PATH", "./data/visits.db"),
		MySQLDSN:       getEnv("MYSQL_DSN", ""),

		RateLimitCapacity: getEnvInt("RATE_LIMIT_CAPACITY", 30),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !slices.Contains(cacheBackends, c.CacheBackend) {
		problems = append(problems, fmt.Sprintf("invalid cache backend '%s': must be one of %v", c.CacheBackend, cacheBackends))
	}
	if c.CacheBackend != "none" && c.CacheTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid cache TTL %v: must be positive", c.CacheTTL))
	}

	if !slices.Contains(counterBackends, c.CounterBackend) {
		problems = append(problems, fmt.Sprintf("invalid counter backend '%s': must be one of %v", c.CounterBackend, counterBackends))
	}
	if strings.TrimSpace(c.CounterName) == "" {
		problems = append(problems, "counter name cannot be empty")
	}
	if c.CounterBackend == "sqlite" && c.SQLitePath == "" {
		problems = append(problems, "SQLite path cannot be empty when using sqlite counter backend")
	}
	if c.CounterBackend == "mysql" && c.MySQLDSN == "" {
		problems = append(problems, "MYSQL_DSN is required when using mysql counter backend")
	}
	if (c.CacheBackend == "redis" || c.CounterBackend == "redis") && c.RedisAddr == "" {
		problems = append(problems, "REDIS_ADDR is required when a redis backend is selected")
	}
	if c.RedisDB < 0 {
		problems = append(problems, fmt.Sprintf("invalid redis db %d: must not be negative", c.RedisDB))
	}

	if c.RateLimitCapacity < 1 {
		problems = append(problems, fmt.Sprintf("invalid rate limit capacity %d: must be at least 1", c.RateLimitCapacity))
	}
	if c.RateLimitWindow < time.Second {
		problems = append(problems, fmt.Sprintf("invalid rate limit window %v: must be at least 1 second", c.RateLimitWindow))
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
