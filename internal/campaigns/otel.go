package campaigns

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"campaignexport/internal/ads"
)

const (
	TracerName = "campaignexport/campaigns"
	MeterName  = "campaignexport/campaigns"
)

// exportDurationBounds are histogram buckets in seconds
var exportDurationBounds = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300}

// ExportMetrics holds the export counters
type ExportMetrics struct {
	RowsExported   metric.Int64Counter
	ExportDuration metric.Float64Histogram
	ExportFailures metric.Int64Counter
}

// NewExportMetrics registers the export instruments on meter, or on the
// global meter provider when meter is nil. Names use underscores so the
// Prometheus textfile stays readable by legacy collectors.
func NewExportMetrics(meter metric.Meter) (*ExportMetrics, error) {
	if meter == nil {
		meter = otel.Meter(MeterName)
	}

	rows, err := meter.Int64Counter(
		"campaigns_exported",
		metric.WithDescription("Total number of campaigns written to the export file"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"campaigns_export_duration",
		metric.WithDescription("Export duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(exportDurationBounds...),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(
		"campaigns_export_failures",
		metric.WithDescription("Total number of failed exports"),
	)
	if err != nil {
		return nil, err
	}

	return &ExportMetrics{
		RowsExported:   rows,
		ExportDuration: duration,
		ExportFailures: failures,
	}, nil
}

// record adds the outcome of one export
func (m *ExportMetrics) record(ctx context.Context, customerID string, rows int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("customer_id", customerID))

	m.RowsExported.Add(ctx, int64(rows), attrs)
	m.ExportDuration.Record(ctx, elapsed.Seconds(), attrs)

	if err != nil {
		class := "local"
		if _, ok := ads.AsFailure(err); ok {
			class = "transport"
		}
		m.ExportFailures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("customer_id", customerID),
			attribute.String("class", class)))
	}
}
