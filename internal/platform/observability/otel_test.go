package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewLogger_JSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "")
	logger.Debug("hidden")
	logger.Info("herd loaded", slog.Int("herd.size", 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "herd loaded", entry["msg"])
	assert.Equal(t, float64(3), entry["herd.size"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "warn", "text").Warn("cache down")
	assert.Contains(t, buf.String(), "msg=\"cache down\"")
}

func TestInstruments_NilFallbacks(t *testing.T) {
	var instruments *Instruments
	assert.NotNil(t, instruments.Tracer("test"))
	assert.NotNil(t, instruments.Meter("test"))
}

func TestSettings_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("OTEL_TRACES_EXPORTER", "")

	s := Settings{}.withDefaults()
	assert.Equal(t, "yakshop", s.ServiceName)
	assert.Equal(t, "local", s.Environment)
	assert.Equal(t, ExporterOTLP, s.TraceExporter)
	assert.NotNil(t, s.LogOutput)

	t.Setenv("OTEL_TRACES_EXPORTER", " None ")
	assert.Equal(t, ExporterNone, Settings{}.withDefaults().TraceExporter)
}

func TestNewSpanExporter_Selection(t *testing.T) {
	ctx := context.Background()

	exporter, err := newSpanExporter(ctx, ExporterNone, nil)
	require.NoError(t, err)
	assert.Nil(t, exporter)

	exporter, err = newSpanExporter(ctx, ExporterStdout, nil)
	require.NoError(t, err)
	assert.NotNil(t, exporter)

	_, err = newSpanExporter(ctx, "zipkin", nil)
	require.Error(t, err)
}

func TestInit_WithoutExporter(t *testing.T) {
	var buf bytes.Buffer
	instruments, shutdown, err := Init(context.Background(), Settings{
		ServiceName:   "yakshop-test",
		Version:       "1.2.3",
		TraceExporter: ExporterNone,
		LogOutput:     &buf,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	instruments.Logger.Info("herd loaded")
	assert.Contains(t, buf.String(), "herd loaded")

	_, span := instruments.Tracer("test").Start(context.Background(), "simulate")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	counter, err := instruments.Meter("test").Int64Counter("herd.service.simulations")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)
}
