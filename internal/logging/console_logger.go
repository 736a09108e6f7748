package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/vvka-141/slurp/pkg/slurp"
)

// ConsoleLogger writes structured log lines through logrus.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	entry *logrus.Entry
}

// NewConsoleLogger creates a ConsoleLogger writing to stderr.
// Colours are enabled only when stderr is a terminal.
func NewConsoleLogger(verbosity int) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stderr, verbosity, isTerminal(os.Stderr))
}

// NewConsoleLoggerTo creates a ConsoleLogger writing to w.
func NewConsoleLoggerTo(w io.Writer, verbosity int, colors bool) *ConsoleLogger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(LevelFromVerbosity(verbosity))
	logger.SetFormatter(&utcFormatter{
		Formatter: &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
			ForceColors:     colors,
			DisableColors:   !colors,
		},
	})
	return &ConsoleLogger{entry: logrus.NewEntry(logger)}
}

// LevelFromVerbosity maps 0..2 to warn, info and debug.
// Out of range values fall back to info.
func LevelFromVerbosity(verbosity int) logrus.Level {
	switch verbosity {
	case 0:
		return logrus.WarnLevel
	case 2:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// Debug logs detailed diagnostic information.
func (l *ConsoleLogger) Debug(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Warn logs warnings.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// With returns a child logger carrying an extra field.
func (l *ConsoleLogger) With(key string, value interface{}) slurp.Logger {
	return &ConsoleLogger{entry: l.entry.WithField(key, value)}
}

// utcFormatter renders timestamps in UTC regardless of the host zone.
type utcFormatter struct {
	logrus.Formatter
}

func (f *utcFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.UTC()
	return f.Formatter.Format(e)
}

// isTerminal reports whether colour output makes sense on f.
// NO_COLOR and CI disable colours even on a terminal.
func isTerminal(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
