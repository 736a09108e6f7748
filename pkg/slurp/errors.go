package slurp

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	result, err := inserter.Insert(ctx, config)
//	if errors.Is(err, slurp.ErrInput) {
//	    // nothing was dispatched
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInput indicates the input file could not be turned into items.
	// No batch is dispatched when this is returned.
	ErrInput = errors.New("input error")

	// ErrBuildFailed marks a batch whose statement could not be serialized.
	ErrBuildFailed = errors.New("statement build failed")

	// ErrTransport marks a batch that never got a response from the endpoint.
	ErrTransport = errors.New("transport error")

	// ErrRemoteRejected marks a batch the endpoint answered with a non-success status.
	ErrRemoteRejected = errors.New("remote rejected")

	// ErrBatchesFailed indicates the run completed but at least one batch failed.
	ErrBatchesFailed = errors.New("batches failed")

	// ErrPanic marks a batch whose processing panicked.
	ErrPanic = errors.New("batch processing panicked")
)

// usageErrorPatterns are fragments of errors produced by cobra/pflag argument parsing.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitUsageError
	case errors.Is(err, ErrInput):
		return ExitInputError
	case errors.Is(err, ErrBatchesFailed):
		return ExitGeneralError
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
