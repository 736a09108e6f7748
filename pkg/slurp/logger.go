package slurp

// Logger provides a pluggable logging interface for slurp operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Debug logs detailed diagnostic information (verbosity 2).
	Debug(format string, args ...interface{})

	// Info logs progress about normal operations (verbosity 1 and above).
	Info(format string, args ...interface{})

	// Warn logs conditions worth surfacing at every verbosity.
	Warn(format string, args ...interface{})

	// Error logs error messages.
	// Always logged regardless of verbosity.
	Error(format string, args ...interface{})

	// With returns a Logger that attaches key=value to every line.
	With(key string, value interface{}) Logger
}
