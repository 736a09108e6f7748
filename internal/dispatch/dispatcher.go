package dispatch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/slurp/pkg/slurp"
)

// BatchProcessor handles a single batch. Implementations are called from
// several workers at once and must be safe for concurrent use.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, batch slurp.Batch) slurp.Outcome
}

// ProcessorFunc adapts a function to BatchProcessor.
type ProcessorFunc func(ctx context.Context, batch slurp.Batch) slurp.Outcome

// ProcessBatch calls f.
func (f ProcessorFunc) ProcessBatch(ctx context.Context, batch slurp.Batch) slurp.Outcome {
	return f(ctx, batch)
}

// OutcomeHandler observes each outcome as it completes.
// It is called from worker goroutines and must be safe for concurrent use.
type OutcomeHandler func(slurp.Outcome)

// Dispatcher executes batches on a fixed-size worker pool.
type Dispatcher struct {
	config    Config
	processor BatchProcessor
	onOutcome OutcomeHandler
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithOutcomeHandler registers a callback invoked once per batch outcome.
func WithOutcomeHandler(h OutcomeHandler) Option {
	return func(d *Dispatcher) {
		d.onOutcome = h
	}
}

// New creates a Dispatcher. It panics on a nil processor or a worker count
// below one; both are programmer errors caught at construction time.
func New(config Config, processor BatchProcessor, opts ...Option) *Dispatcher {
	if processor == nil {
		panic("processor cannot be nil")
	}
	if config.Workers < 1 {
		panic(fmt.Sprintf("worker count must be at least 1, got %d", config.Workers))
	}

	d := &Dispatcher{
		config:    config,
		processor: processor,
		onOutcome: func(slurp.Outcome) {},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run processes every batch and returns the merged tally. It returns only
// after all batches have produced an outcome and all workers have exited.
// Run never stops early: ctx is handed to the processor, which decides how
// a cancelled context turns into failures.
func (d *Dispatcher) Run(ctx context.Context, batches []slurp.Batch) slurp.RunResult {
	workers := min(d.config.Workers, len(batches))
	if workers == 0 {
		return slurp.RunResult{}
	}

	queue := make(chan slurp.Batch, min(d.config.queueSize(), len(batches)))
	partials := make([]slurp.RunResult, workers)

	// Workers never return an error, so the group never cancels anything;
	// it is used only to run and join the pool.
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for b := range queue {
				outcome := d.process(ctx, b)
				partials[w].Add(outcome)
				d.onOutcome(outcome)
			}
			return nil
		})
	}

	for _, b := range batches {
		queue <- b
	}
	close(queue)
	_ = g.Wait()

	var result slurp.RunResult
	for _, p := range partials {
		result.Merge(p)
	}
	return result
}

// process runs one batch, turning a panic into that batch's failure.
func (d *Dispatcher) process(ctx context.Context, b slurp.Batch) (outcome slurp.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = slurp.Failure(b.Index, fmt.Errorf("%w: %v", slurp.ErrPanic, r))
		}
	}()

	outcome = d.processor.ProcessBatch(ctx, b)
	outcome.Index = b.Index
	return outcome
}
