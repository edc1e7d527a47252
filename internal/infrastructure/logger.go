package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"campaignexport/internal/config"
)

// contextKey is a type for context keys
type contextKey string

// TraceIDContextKey stores the run id in a context
const TraceIDContextKey contextKey = "trace_id"

// redactedValue replaces secret attribute values
const redactedValue = "[REDACTED]"

// secretKeys are attribute keys whose values never reach a log sink
var secretKeys = map[string]struct{}{
	"developer_token": {},
	"client_secret":   {},
	"refresh_token":   {},
	"access_token":    {},
	"authorization":   {},
}

var (
	loggerMu      sync.Mutex
	globalLogger  *slog.Logger
	globalLogFile *os.File

	// consoleOutput receives console logs. Stdout carries the failure report only.
	consoleOutput io.Writer = os.Stderr
)

// InitializeLogger builds the process logger from cfg and installs it as the slog default.
// Later calls return the logger built by the first one.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if globalLogger != nil {
		return globalLogger, nil
	}

	out, file, err := openSinks(cfg)
	if err != nil {
		return nil, err
	}

	globalLogFile = file
	globalLogger = slog.New(&traceHandler{Handler: newHandler(cfg, out)})
	slog.SetDefault(globalLogger)
	return globalLogger, nil
}

// GetLogger returns the process logger, or the slog default before initialization
func GetLogger() *slog.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}

// openSinks resolves the writer for the configured output. The returned file,
// if any, is owned by the caller.
func openSinks(cfg config.LoggingConfig) (io.Writer, *os.File, error) {
	switch strings.ToLower(cfg.Output) {
	case "file":
		f, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil
	case "both":
		f, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return io.MultiWriter(consoleOutput, f), f, nil
	default:
		return consoleOutput, nil, nil
	}
}

func newHandler(cfg config.LoggingConfig, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   cfg.Development,
		Level:       parseLogLevel(cfg.Level),
		ReplaceAttr: redactSecrets,
	}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// redactSecrets masks credential values logged by key
func redactSecrets(_ []string, a slog.Attr) slog.Attr {
	if _, ok := secretKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, redactedValue)
	}
	return a
}

// traceHandler adds the run id and, inside a recording span, the OTel trace and span ids
type traceHandler struct {
	slog.Handler
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := GetTraceID(ctx); id != "" {
		r.AddAttrs(slog.String("trace_id", id))
	}
	if otelID := TraceIDFromContext(ctx); otelID != "" {
		r.AddAttrs(
			slog.String("otel_trace_id", otelID),
			slog.String("span_id", SpanIDFromContext(ctx)))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name)}
}

func parseLogLevel(level string) slog.Level {
	var l slog.Level
	switch strings.ToLower(level) {
	case "warning":
		return slog.LevelWarn
	default:
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return slog.LevelInfo
		}
		return l
	}
}

// WithTraceID stores the run id in ctx
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDContextKey, traceID)
}

// GetTraceID returns the run id stored in ctx
func GetTraceID(ctx context.Context) string {
	id, _ := ctx.Value(TraceIDContextKey).(string)
	return id
}

// CloseLogFile closes the log file opened by InitializeLogger, if any
func CloseLogFile() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if globalLogFile == nil {
		return nil
	}
	err := globalLogFile.Close()
	globalLogFile = nil
	return err
}

// ResetLoggerForTesting drops the process logger so the next InitializeLogger builds a new one
func ResetLoggerForTesting() {
	_ = CloseLogFile()
	loggerMu.Lock()
	globalLogger = nil
	loggerMu.Unlock()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}
