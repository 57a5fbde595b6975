package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herdapp "github.com/Apurer/go-gin-yakshop/internal/domains/herd/application"
	platformobservability "github.com/Apurer/go-gin-yakshop/internal/platform/observability"
)

func testInstruments() *platformobservability.Instruments {
	return &platformobservability.Instruments{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func fixtureConfig() Config {
	cfg := defaults()
	cfg.HerdPath = filepath.Join("..", "..", "domains", "herd", "adapters", "herdfile", "testdata", "valid_multi.xml")
	cfg.MaxDays = 1000
	return cfg
}

func TestNewRouter_ServesMemoryBackedAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, cleanup, err := NewRouter(context.Background(), fixtureConfig(), testInstruments())
	require.NoError(t, err)
	defer cleanup()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/yakshop/stock/13", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"milk":1104.48,"wool":3}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/yakshop/stock/1001", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewRouter_RequiresHerd(t *testing.T) {
	cfg := fixtureConfig()
	cfg.HerdPath = ""
	_, _, err := NewRouter(context.Background(), cfg, testInstruments())
	require.Error(t, err)
}

func TestNewRouter_InvalidHerd(t *testing.T) {
	cfg := fixtureConfig()
	cfg.HerdPath = filepath.Join("..", "..", "domains", "herd", "adapters", "herdfile", "testdata", "invalid_age.xml")
	_, _, err := NewRouter(context.Background(), cfg, testInstruments())
	require.ErrorIs(t, err, herdapp.ErrInvalidInput)
}
