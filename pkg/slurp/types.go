package slurp

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Item is a single decoded value from the input array. No schema is
// enforced; items are passed to the statement builder untouched.
type Item = any

// Batch is a contiguous slice of input items, identified by its 0-based
// position in partition order. Batches are never mutated after creation.
type Batch struct {
	Index int
	Items []Item
}

// Len returns the number of items in the batch.
func (b Batch) Len() int {
	return len(b.Items)
}

// Outcome is the result of processing one batch.
// A nil Err means the batch succeeded with Count items.
type Outcome struct {
	Index int
	Count int
	Err   error
}

// Success returns a successful outcome for the batch at index.
func Success(index, count int) Outcome {
	return Outcome{Index: index, Count: count}
}

// Failure returns a failed outcome for the batch at index.
func Failure(index int, err error) Outcome {
	return Outcome{Index: index, Err: err}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// RemoteError captures a non-success response from the endpoint.
type RemoteError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RemoteError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("HTTP %s", e.Status)
	}
	return fmt.Sprintf("HTTP %s: %s", e.Status, body)
}

// Unwrap allows errors.Is(err, ErrRemoteRejected).
func (e *RemoteError) Unwrap() error {
	return ErrRemoteRejected
}

// RunResult is the tally of batch outcomes for one run.
// The zero value is an empty tally. Add and Merge are commutative and
// associative, so per-worker results may be merged in any order.
type RunResult struct {
	BatchesOK     int
	BatchesFailed int
	ItemsOK       int
}

// Add folds a single outcome into the tally.
func (r *RunResult) Add(o Outcome) {
	if o.OK() {
		r.BatchesOK++
		r.ItemsOK += o.Count
		return
	}
	r.BatchesFailed++
}

// Merge folds another tally into r.
func (r *RunResult) Merge(other RunResult) {
	r.BatchesOK += other.BatchesOK
	r.BatchesFailed += other.BatchesFailed
	r.ItemsOK += other.ItemsOK
}

// Total returns the number of batches that produced an outcome.
func (r RunResult) Total() int {
	return r.BatchesOK + r.BatchesFailed
}

// Err returns nil when every batch succeeded and an error wrapping
// ErrBatchesFailed otherwise. Partial success is still a failure.
func (r RunResult) Err() error {
	if r.BatchesFailed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d batches failed: %w", r.BatchesFailed, r.Total(), ErrBatchesFailed)
}

// InsertConfig contains every value an insert run consumes.
type InsertConfig struct {
	// DataPath is the JSON array file to load
	DataPath string

	// BaseURL is the SurrealDB server address, e.g. http://localhost:8000
	BaseURL string

	// Namespace and Database select the target scope via request headers
	Namespace string
	Database  string

	// Table is the destination table name
	Table string

	// BatchSize is the maximum number of items per INSERT
	BatchSize int

	// Workers is the number of batches processed concurrently
	Workers int

	// Timeout bounds each HTTP submission
	Timeout time.Duration

	// DryRun builds statements but never sends them
	DryRun bool

	// Verbosity is 0=warn, 1=info, 2=debug
	Verbosity int
}

// Endpoint returns the SurrealQL endpoint derived from BaseURL.
func (c *InsertConfig) Endpoint() string {
	return strings.TrimRight(c.BaseURL, "/") + SQLPath
}

// Validate checks if the InsertConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *InsertConfig) Validate() error {
	var errs []error

	if c.DataPath == "" {
		errs = append(errs, fmt.Errorf("DataPath is required: %w", ErrInvalidConfig))
	}

	if c.Table == "" {
		errs = append(errs, fmt.Errorf("Table is required: %w", ErrInvalidConfig))
	}

	if c.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("batch size must be at least 1, got %d: %w", c.BatchSize, ErrInvalidConfig))
	}

	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("worker count must be at least 1, got %d: %w", c.Workers, ErrInvalidConfig))
	}

	if c.Verbosity < 0 || c.Verbosity > MaxVerbosity {
		errs = append(errs, fmt.Errorf("verbosity must be between 0 and %d, got %d: %w", MaxVerbosity, c.Verbosity, ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	// Namespace, database and endpoint are only needed when requests are sent
	if !c.DryRun {
		if c.Namespace == "" {
			errs = append(errs, fmt.Errorf("Namespace is required: %w", ErrInvalidConfig))
		}
		if c.Database == "" {
			errs = append(errs, fmt.Errorf("Database is required: %w", ErrInvalidConfig))
		}
		if err := validateBaseURL(c.BaseURL); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("BaseURL is required: %w", ErrInvalidConfig)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid BaseURL %q: %v: %w", raw, err, ErrInvalidConfig)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("BaseURL %q must use http or https: %w", raw, ErrInvalidConfig)
	}
	if u.Host == "" {
		return fmt.Errorf("BaseURL %q has no host: %w", raw, ErrInvalidConfig)
	}
	return nil
}
