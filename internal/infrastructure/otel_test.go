package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"campaignexport/internal/config"
)

func newJSONTestLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, nil))
}

func TestOTelInitialization(t *testing.T) {
	providers, err := InitializeOTel(nil, newJSONTestLogger(io.Discard))
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.NotNil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Registry)

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestOTelUnsupportedExporter(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "zipkin"
	_, err := InitializeOTel(cfg, newJSONTestLogger(io.Discard))
	assert.Error(t, err)
}

func TestTraceCorrelation(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), newJSONTestLogger(io.Discard))
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	ctx, span := otel.Tracer("test").Start(context.Background(), "test-operation")
	defer span.End()

	traceID := TraceIDFromContext(ctx)
	assert.NotEmpty(t, traceID)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)
	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestStdoutTraceExporter(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "stdout"
	cfg.TraceOutput = &buf

	providers, err := InitializeOTel(cfg, newJSONTestLogger(io.Discard))
	require.NoError(t, err)

	ctx, span := providers.Tracer.Start(context.Background(), "export-span")
	RecordError(ctx, errors.New("boom"))
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "export-span")
	assert.Contains(t, buf.String(), "boom")
}

func TestMetricsTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaigns.prom")
	cfg := OTelConfigFrom(config.TelemetryConfig{
		ServiceName:   "get-campaigns-test",
		Environment:   "test",
		TraceExporter: "none",
		SampleRatio:   1.0,
	})
	cfg.MetricsFile = path

	providers, err := InitializeOTel(cfg, newJSONTestLogger(io.Discard))
	require.NoError(t, err)

	counter, err := providers.Meter.Int64Counter("test_rows", metric.WithDescription("rows"))
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	require.NoError(t, providers.Shutdown(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# TYPE test_rows_total counter")
	assert.Contains(t, string(content), " 3")
}

func TestWriteMetricsWithoutRegistry(t *testing.T) {
	p := &OTelProviders{Logger: newJSONTestLogger(io.Discard)}
	assert.Error(t, p.WriteMetrics(filepath.Join(t.TempDir(), "m.prom")))
}
