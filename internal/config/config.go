package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Backend names of the session storage
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds the client settings. Command-line flags override these values.
type Config struct {
	Backend       string `env:"DIETPANEL_BACKEND" envDefault:"bolt"`
	DBPath        string `env:"DIETPANEL_DB" envDefault:"dietpanel.db"`
	SQLitePath    string `env:"DIETPANEL_SQLITE" envDefault:"dietpanel.sqlite"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisPrefix   string `env:"DIETPANEL_REDIS_PREFIX" envDefault:"dietpanel:"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Load reads the optional dotenv files and then the environment.
// Variables already set in the environment take precedence over the files.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the backend name and the log level
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendBolt, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// ParseLevel converts a level name to slog.Level
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(level)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}
