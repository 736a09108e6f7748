package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vvka-141/slurp/internal/batch"
	"github.com/vvka-141/slurp/internal/dispatch"
	"github.com/vvka-141/slurp/internal/surreal"
	"github.com/vvka-141/slurp/pkg/slurp"
)

// SubmitterFactory creates the submitter for a validated, non-dry-run config.
type SubmitterFactory func(config slurp.InsertConfig) slurp.Submitter

// NewSurrealSubmitter is the production SubmitterFactory: one HTTP client
// shared by every worker of the run.
func NewSurrealSubmitter(config slurp.InsertConfig) slurp.Submitter {
	return surreal.NewClient(surreal.ClientConfig{
		Endpoint:  config.Endpoint(),
		Namespace: config.Namespace,
		Database:  config.Database,
		Timeout:   config.Timeout,
	})
}

// InsertService implements slurp.Inserter.
// Insert may be called concurrently; each call owns its own dispatcher and
// submitter.
type InsertService struct {
	loader       slurp.ItemLoader
	newSubmitter SubmitterFactory
	logger       slurp.Logger
}

// NewInsertService creates an InsertService. It panics on nil dependencies.
func NewInsertService(loader slurp.ItemLoader, newSubmitter SubmitterFactory, logger slurp.Logger) *InsertService {
	if loader == nil {
		panic("loader cannot be nil")
	}
	if newSubmitter == nil {
		panic("newSubmitter cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &InsertService{
		loader:       loader,
		newSubmitter: newSubmitter,
		logger:       logger,
	}
}

// Insert loads config.DataPath, splits it into batches and dispatches them.
//
// Input and config problems abort before anything is sent and return a zero
// RunResult. Otherwise every batch is attempted and the returned error is
// result.Err().
func (s *InsertService) Insert(ctx context.Context, config slurp.InsertConfig) (slurp.RunResult, error) {
	if err := config.Validate(); err != nil {
		return slurp.RunResult{}, err
	}

	log := s.logger.With("run", uuid.NewString())

	log.Info("loading JSON: %s", config.DataPath)
	items, err := s.loader.Load(config.DataPath)
	if err != nil {
		return slurp.RunResult{}, fmt.Errorf("failed to load %s: %w", config.DataPath, err)
	}
	if len(items) == 0 {
		log.Warn("no items found in input; nothing to insert")
		return slurp.RunResult{}, nil
	}

	batches, err := batch.Partition(items, config.BatchSize)
	if err != nil {
		return slurp.RunResult{}, fmt.Errorf("%w: %w", slurp.ErrInvalidConfig, err)
	}
	log.Info("items: %d, batch size: %d, batches: %d, threads: %d",
		len(items), config.BatchSize, len(batches), config.Workers)

	var submitter slurp.Submitter
	if config.DryRun {
		log.Info("dry-run enabled; not sending INSERTs")
	} else {
		submitter = s.newSubmitter(config)
		log.Debug("endpoint: %s (ns=%s, db=%s)", config.Endpoint(), config.Namespace, config.Database)
	}

	processor := dispatch.NewSubmitProcessor(surreal.NewInsertBuilder(config.Table), submitter, config.DryRun, log)
	dispatcher := dispatch.New(
		dispatch.Config{Workers: config.Workers},
		processor,
		dispatch.WithOutcomeHandler(reportOutcome(log, config.DryRun)),
	)

	result := dispatcher.Run(ctx, batches)

	if result.BatchesFailed > 0 {
		log.Error("done with errors: ok=%d, err=%d", result.BatchesOK, result.BatchesFailed)
	} else {
		log.Info("done: all %d batches ok", result.BatchesOK)
	}
	return result, result.Err()
}

// reportOutcome logs one line per finished batch. The logger is safe for
// concurrent use, so the handler is too.
func reportOutcome(log slurp.Logger, dryRun bool) dispatch.OutcomeHandler {
	return func(o slurp.Outcome) {
		switch {
		case !o.OK():
			log.With("batch", o.Index).Error("batch #%d failed: %v", o.Index, o.Err)
		case dryRun:
			log.Info("DRY batch #%d: %d records", o.Index, o.Count)
		default:
			log.Info("batch #%d ok (%d records)", o.Index, o.Count)
		}
	}
}
