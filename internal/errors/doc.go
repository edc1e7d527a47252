// Package errors maps command failures onto exit codes.
//
// A *ads.Failure anywhere in the chain exits with ExitTransportFailure after
// its diagnostic is printed. Other errors exit with ExitRuntime unless a
// CLIError carries a different code.
package errors
