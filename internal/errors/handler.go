package errors

import (
	"context"
	"io"
	"log/slog"

	"campaignexport/internal/ads"
	"campaignexport/internal/infrastructure"
)

// Handle reports err and returns the exit code the process should end with.
// A transport failure is printed to stdout as the request diagnostic. Other
// errors go to the logger only.
func Handle(ctx context.Context, stdout io.Writer, logger *slog.Logger, err error) int {
	if err == nil {
		return ExitOK
	}
	if logger == nil {
		logger = slog.Default()
	}

	if failure, ok := ads.AsFailure(err); ok {
		logger.ErrorContext(ctx, "Google Ads request failed",
			slog.String("request_id", failure.RequestID),
			slog.String("status", failure.Code),
			slog.Int("http_status", failure.HTTPStatus),
			slog.Int("error_count", len(failure.Errors)))
		if werr := failure.Report(stdout); werr != nil {
			logger.ErrorContext(ctx, "Failed to write failure report", slog.String("error", werr.Error()))
		}
		return ExitTransportFailure
	}

	logger = infrastructure.WithError(logger, err)
	if code := Code(err); code != "" {
		logger = logger.With(slog.String("error_code", code))
	}
	logger.ErrorContext(ctx, "Command failed")
	return ExitCode(err)
}
