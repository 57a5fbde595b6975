package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"YAKSHOP_CONFIG", "HTTP_HOST", "PORT", "HERD_PATH", "POSTGRES_DSN", "REDIS_ADDR",
		"ENVIRONMENT", "LOG_LEVEL", "LOG_FORMAT", "CORS_ALLOWED_ORIGINS", "YAKSHOP_MAX_DAYS", "CACHE_TTL_SECONDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3000", cfg.Addr())
	assert.Zero(t, cfg.MaxDays, "no day limit by default")
	assert.Equal(t, defaultCacheTTL, cfg.CacheTTL)
	assert.Empty(t, cfg.PostgresDSN)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_HOST", "0.0.0.0")
	t.Setenv("PORT", "8080")
	t.Setenv("HERD_PATH", "/data/herd.xml")
	t.Setenv("YAKSHOP_MAX_DAYS", "5000")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "/data/herd.xml", cfg.HerdPath)
	assert.Equal(t, uint32(5000), cfg.MaxDays)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_YAMLOverlaidByEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "yakshop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
herd_path: herd.xml
max_days: 250
redis_addr: localhost:6379
cache_ttl: 1m
cors_allowed_origins: ["*"]
`), 0o600))
	t.Setenv("YAKSHOP_CONFIG", path)
	t.Setenv("PORT", "9100")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "herd.xml", cfg.HerdPath)
	assert.Equal(t, uint32(250), cfg.MaxDays)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"PORT":              "http",
		"YAKSHOP_MAX_DAYS":  "-5",
		"CACHE_TTL_SECONDS": "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("YAKSHOP_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := LoadConfig()
		require.Error(t, err)
	})
}
