package api

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	HTTPHost           string        `yaml:"http_host"`
	Port               string        `yaml:"port"`
	HerdPath           string        `yaml:"herd_path"`
	MaxDays            uint32        `yaml:"max_days"`
	PostgresDSN        string        `yaml:"postgres_dsn"`
	RedisAddr          string        `yaml:"redis_addr"`
	CacheTTL           time.Duration `yaml:"cache_ttl"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	Environment        string        `yaml:"environment"`
	LogLevel           string        `yaml:"log_level"`
	LogFormat          string        `yaml:"log_format"`
}

const (
	defaultPort     = "3000"
	defaultHost     = "127.0.0.1"
	// Zero accepts any uint32 day count. A yak stops stepping once it dies,
	// so a request costs at most MaxAgeDays steps per yak.
	defaultMaxDays  = 0
	defaultCacheTTL = 10 * time.Minute
)

func defaults() Config {
	return Config{
		HTTPHost:    defaultHost,
		Port:        defaultPort,
		MaxDays:     defaultMaxDays,
		CacheTTL:    defaultCacheTTL,
		Environment: "local",
		LogLevel:    "info",
		LogFormat:   "json",
	}
}

// LoadConfig starts from defaults, overlays the YAML file named by
// YAKSHOP_CONFIG when set, then overlays environment variables.
func LoadConfig() (Config, error) {
	cfg := defaults()
	if path := strings.TrimSpace(os.Getenv("YAKSHOP_CONFIG")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.HTTPHost = envDefault("HTTP_HOST", cfg.HTTPHost)
	cfg.Port = envDefault("PORT", cfg.Port)
	cfg.HerdPath = envDefault("HERD_PATH", cfg.HerdPath)
	cfg.PostgresDSN = envDefault("POSTGRES_DSN", cfg.PostgresDSN)
	cfg.RedisAddr = envDefault("REDIS_ADDR", cfg.RedisAddr)
	cfg.Environment = envDefault("ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = envDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envDefault("LOG_FORMAT", cfg.LogFormat)
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		cfg.CORSAllowedOrigins = splitList(raw)
	}
	if raw := strings.TrimSpace(os.Getenv("YAKSHOP_MAX_DAYS")); raw != "" {
		days, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return Config{}, fmt.Errorf("YAKSHOP_MAX_DAYS must be an integer between 0 and 4294967295")
		}
		cfg.MaxDays = uint32(days)
	}
	if raw := strings.TrimSpace(os.Getenv("CACHE_TTL_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds < 0 {
			return Config{}, fmt.Errorf("CACHE_TTL_SECONDS must be a non-negative integer")
		}
		cfg.CacheTTL = time.Duration(seconds) * time.Second
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks constraints that do not depend on the herd file existing.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 0 and 65535, got %q", c.Port)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.HTTPHost, c.Port)
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
