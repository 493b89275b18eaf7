package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RedisAddr              string
	UserCacheTTLSeconds    int
	JWTSecret              string
	RateLimit              int
	ShutdownTimeoutSeconds int
	LogLevel               string
}

// Load reads the environment. Malformed integers are reported together.
func Load() (Config, error) {
	var errs []error
	intVar := func(key string, defaultVal int) int {
		v, err := getEnvAsInt(key, defaultVal)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		UserCacheTTLSeconds:    intVar("USER_CACHE_TTL_SECONDS", 60),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		RateLimit:              intVar("RATE_LIMIT_PER_MINUTE", 60),
		ShutdownTimeoutSeconds: intVar("SHUTDOWN_TIMEOUT_SECONDS", 20),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}

	return cfg, errors.Join(errs...)
}

// Validate checks the settings the HTTP server depends on.
func (c Config) Validate() error {
	if c.AppURL == "" {
		return fmt.Errorf("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.UserCacheTTLSeconds < 0 {
		return fmt.Errorf("USER_CACHE_TTL_SECONDS must not be negative")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func (c Config) UserCacheEnabled() bool {
	return c.UserCacheTTLSeconds > 0
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return defaultVal, fmt.Errorf("invalid integer value for %s: %q", key, v)
		}
		return i, nil
	}
	return defaultVal, nil
}
