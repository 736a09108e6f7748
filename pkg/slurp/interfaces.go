package slurp

import "context"

// Response is what the endpoint answered for a submitted statement.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// Succeeded reports whether the status code is in the 2xx range.
func (r Response) Succeeded() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Submitter sends a single textual statement to the remote store.
// A returned error means no response was obtained (transport failure).
// Implementations must be safe for concurrent use.
type Submitter interface {
	Submit(ctx context.Context, statement string) (Response, error)
}

// StatementBuilder turns a batch into the command sent for it.
type StatementBuilder interface {
	Build(batch Batch) (string, error)
}

// Inserter runs a complete load → partition → dispatch → aggregate cycle.
type Inserter interface {
	// Insert returns the tally of the run. The returned error is non-nil for
	// input/config failures (nothing dispatched) and for runs where any
	// batch failed (result is still populated).
	Insert(ctx context.Context, config InsertConfig) (RunResult, error)
}

// ItemLoader reads the input document and returns its top-level elements.
// Errors wrap ErrInput.
type ItemLoader interface {
	Load(path string) ([]Item, error)
}
