package dispatch

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vvka-141/slurp/pkg/slurp"
)

// SubmitProcessor builds a batch's statement and submits it, unless the run
// is a dry run. It is the production BatchProcessor.
type SubmitProcessor struct {
	builder   slurp.StatementBuilder
	submitter slurp.Submitter
	dryRun    bool
	logger    slurp.Logger
}

// NewSubmitProcessor creates a SubmitProcessor. The submitter may be nil
// when dryRun is set.
func NewSubmitProcessor(builder slurp.StatementBuilder, submitter slurp.Submitter, dryRun bool, logger slurp.Logger) *SubmitProcessor {
	if builder == nil {
		panic("builder cannot be nil")
	}
	if submitter == nil && !dryRun {
		panic("submitter cannot be nil unless dry-run is enabled")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SubmitProcessor{
		builder:   builder,
		submitter: submitter,
		dryRun:    dryRun,
		logger:    logger,
	}
}

// ProcessBatch implements BatchProcessor: build, then (unless dry-run)
// submit, then classify the response.
func (p *SubmitProcessor) ProcessBatch(ctx context.Context, b slurp.Batch) slurp.Outcome {
	log := p.logger.With("batch", b.Index)

	stmt, err := p.builder.Build(b)
	if err != nil {
		return slurp.Failure(b.Index, err)
	}
	log.Debug("statement built: %d bytes, %d records", len(stmt), b.Len())

	if p.dryRun {
		return slurp.Success(b.Index, b.Len())
	}

	resp, err := p.submitter.Submit(ctx, stmt)
	if err != nil {
		if !errors.Is(err, slurp.ErrTransport) {
			err = fmt.Errorf("%w: %w", slurp.ErrTransport, err)
		}
		return slurp.Failure(b.Index, err)
	}

	if !resp.Succeeded() {
		return slurp.Failure(b.Index, &slurp.RemoteError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       truncate(string(resp.Body), slurp.MaxErrorBodyLength),
		})
	}

	log.Debug("response: %s", resp.Body)
	return slurp.Success(b.Index, b.Len())
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "... (truncated)"
}
