package errors

import (
	"errors"
	"fmt"

	"campaignexport/internal/ads"
)

// Process exit codes
const (
	ExitOK               = 0
	ExitTransportFailure = 1
	ExitRuntime          = 2
)

// Error codes attached to CLIError
const (
	CodeUsage       = "USAGE"
	CodeConfig      = "CONFIG_INVALID"
	CodeCredentials = "CREDENTIALS_INVALID"
	CodeAuth        = "AUTH_FAILED"
	CodeExport      = "EXPORT_FAILED"
	CodeTelemetry   = "TELEMETRY_FAILED"
)

// CLIError is an error that ends the command with a specific exit code
type CLIError struct {
	ExitCode  int
	ErrorCode string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap allows errors.Is and errors.As to see the cause
func (e *CLIError) Unwrap() error {
	return e.Err
}

// New creates a CLIError without a cause
func New(exitCode int, errorCode, message string) *CLIError {
	return &CLIError{
		ExitCode:  exitCode,
		ErrorCode: errorCode,
		Message:   message,
	}
}

// Wrap annotates err with an error code. A wrapped *ads.Failure keeps the
// transport failure exit code; anything else exits with ExitRuntime.
func Wrap(err error, errorCode, message string) *CLIError {
	code := ExitRuntime
	if _, ok := ads.AsFailure(err); ok {
		code = ExitTransportFailure
	}
	return &CLIError{
		ExitCode:  code,
		ErrorCode: errorCode,
		Message:   message,
		Err:       err,
	}
}

// Usagef creates a usage error
func Usagef(format string, args ...any) *CLIError {
	return New(ExitRuntime, CodeUsage, fmt.Sprintf(format, args...))
}

// ExitCode maps err onto the process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if _, ok := ads.AsFailure(err); ok {
		return ExitTransportFailure
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.ExitCode
	}
	return ExitRuntime
}

// Code returns the error code of the outermost CLIError in err, if any
func Code(err error) string {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.ErrorCode
	}
	return ""
}
