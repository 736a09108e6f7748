package slurp

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // All batches inserted, or nothing to insert
	ExitGeneralError = 1  // One or more batches failed, or unclassified error
	ExitUsageError   = 2  // CLI usage error (missing args, invalid flags, bad config)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitInputError   = 10 // Input file unreadable or not a JSON array
)

const (
	// DefaultHost is the SurrealDB host used when neither --host nor a URL is given.
	DefaultHost = "localhost"

	// DefaultPort is the SurrealDB HTTP port.
	DefaultPort = 8000

	// DefaultBatchSize is the number of items sent in a single INSERT.
	DefaultBatchSize = 500

	// DefaultWorkers is the number of batches submitted concurrently.
	DefaultWorkers = 4

	// DefaultVerbosity maps to info level logging.
	DefaultVerbosity = 1

	// MaxVerbosity maps to debug level logging.
	MaxVerbosity = 2

	// DefaultRequestTimeout bounds every HTTP submission, including reading the response.
	DefaultRequestTimeout = 120 * time.Second

	// SQLPath is appended to the base URL to reach the SurrealQL endpoint.
	SQLPath = "/sql"

	// HeaderNamespace and HeaderDatabase select the target scope on the server.
	HeaderNamespace = "Surreal-NS"
	HeaderDatabase  = "Surreal-DB"

	// MaxErrorBodyLength caps how much of a rejection body is kept in a failure reason.
	MaxErrorBodyLength = 2048
)

// Environment variables consulted when the matching flag is not set.
const (
	EnvURL       = "SURREAL_URL"
	EnvNamespace = "SURREAL_NS"
	EnvDatabase  = "SURREAL_DB"
)
