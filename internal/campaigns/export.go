package campaigns

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"campaignexport/internal/exporter"
	"campaignexport/internal/infrastructure"
)

// FileBaseName is the export file name without extension
const FileBaseName = "campaigns"

// ExportResult describes a finished export
type ExportResult struct {
	Path string
	Rows int
}

// Exporter writes the campaigns of a customer to a file
type Exporter struct {
	searcher Searcher
	format   exporter.Format
	metrics  *ExportMetrics
	logger   *slog.Logger
}

// NewExporter creates an Exporter writing in format. Export metrics go to meter;
// a nil meter uses the global meter provider.
func NewExporter(searcher Searcher, format exporter.Format, meter metric.Meter) *Exporter {
	logger := infrastructure.WithComponent(infrastructure.GetLogger(), "campaigns")

	metrics, err := NewExportMetrics(meter)
	if err != nil {
		logger.Warn("Export metrics disabled", slog.String("error", err.Error()))
	}

	return &Exporter{
		searcher: searcher,
		format:   format,
		metrics:  metrics,
		logger:   logger,
	}
}

// OutputPath returns the export file path inside directory
func OutputPath(directory string, format exporter.Format) string {
	return filepath.Join(directory, FileBaseName+format.Extension())
}

// Export writes every campaign of customerID to OutputPath(directory).
// The file is created before the query runs and truncated if it exists.
// Errors from the Searcher are returned unwrapped.
func (e *Exporter) Export(ctx context.Context, customerID, directory string) (result *ExportResult, err error) {
	ctx, span := otel.Tracer(TracerName).Start(ctx, "campaigns.export")
	defer span.End()

	path := OutputPath(directory, e.format)
	span.SetAttributes(
		attribute.String("ads.customer_id", customerID),
		attribute.String("export.path", path),
		attribute.String("export.format", string(e.format)))

	start := time.Now()
	rows := 0
	defer func() {
		e.metrics.record(ctx, customerID, rows, time.Since(start), err)
		span.SetAttributes(attribute.Int("export.rows", rows))
		if err != nil {
			infrastructure.RecordError(ctx, err)
		}
	}()

	e.logger.InfoContext(ctx, "Starting campaign export",
		slog.String("customer_id", customerID),
		slog.String("output_file", path))

	w, err := exporter.Create(e.format, path, Headers)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
			result = nil
		}
	}()

	for rec, err := range Records(ctx, e.searcher, customerID) {
		if err != nil {
			e.logger.ErrorContext(ctx, "Campaign stream failed",
				slog.Int("rows_written", rows),
				slog.String("error", err.Error()))
			return nil, err
		}
		if err := w.WriteRecord(rec.Strings()); err != nil {
			return nil, err
		}
		rows++
	}

	e.logger.InfoContext(ctx, "Campaign export completed",
		slog.Int("rows", rows),
		slog.String("output_file", path),
		slog.Duration("elapsed", time.Since(start)))

	return &ExportResult{Path: path, Rows: rows}, nil
}
