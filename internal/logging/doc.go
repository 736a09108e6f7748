// Package logging provides concrete implementations of the slurp.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: logrus-backed structured lines on stderr, level from verbosity
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
