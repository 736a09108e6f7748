package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vvka-141/slurp/pkg/slurp"
)

func makeBatches(n, size int) []slurp.Batch {
	batches := make([]slurp.Batch, n)
	for i := range batches {
		items := make([]slurp.Item, size)
		for j := range items {
			items[j] = i*size + j
		}
		batches[i] = slurp.Batch{Index: i, Items: items}
	}
	return batches
}

// outcomeRecorder collects outcomes from concurrent workers.
type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []slurp.Outcome
}

func (r *outcomeRecorder) handle(o slurp.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *outcomeRecorder) byIndex() map[int]slurp.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := make(map[int]slurp.Outcome, len(r.outcomes))
	for _, o := range r.outcomes {
		m[o.Index] = o
	}
	return m
}

func succeed(_ context.Context, b slurp.Batch) slurp.Outcome {
	return slurp.Success(b.Index, b.Len())
}

func TestDispatcher_Run_EveryBatchExactlyOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	var seen sync.Map
	var duplicates atomic.Int64
	processor := ProcessorFunc(func(ctx context.Context, b slurp.Batch) slurp.Outcome {
		if _, loaded := seen.LoadOrStore(b.Index, true); loaded {
			duplicates.Add(1)
		}
		return succeed(ctx, b)
	})

	rec := &outcomeRecorder{}
	d := New(Config{Workers: 4}, processor, WithOutcomeHandler(rec.handle))

	result := d.Run(context.Background(), makeBatches(53, 3))

	assert.Equal(t, slurp.RunResult{BatchesOK: 53, ItemsOK: 159}, result)
	assert.Zero(t, duplicates.Load())
	assert.Len(t, rec.outcomes, 53)
	assert.Len(t, rec.byIndex(), 53)
}

func TestDispatcher_Run_NoBatches(t *testing.T) {
	defer goleak.VerifyNone(t)

	called := false
	d := New(DefaultConfig(), ProcessorFunc(func(ctx context.Context, b slurp.Batch) slurp.Outcome {
		called = true
		return succeed(ctx, b)
	}))

	result := d.Run(context.Background(), nil)
	assert.Equal(t, slurp.RunResult{}, result)
	assert.False(t, called)
}

func TestDispatcher_Run_ConcurrencyBound(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8} {
		for _, count := range []int{1, 5, 40} {
			t.Run(fmt.Sprintf("workers=%d/batches=%d", workers, count), func(t *testing.T) {
				defer goleak.VerifyNone(t)

				var inFlight, peak atomic.Int64
				processor := ProcessorFunc(func(ctx context.Context, b slurp.Batch) slurp.Outcome {
					now := inFlight.Add(1)
					for {
						old := peak.Load()
						if now <= old || peak.CompareAndSwap(old, now) {
							break
						}
					}
					time.Sleep(2 * time.Millisecond)
					inFlight.Add(-1)
					return succeed(ctx, b)
				})

				d := New(Config{Workers: workers}, processor)
				result := d.Run(context.Background(), makeBatches(count, 1))

				assert.Equal(t, count, result.BatchesOK)
				assert.LessOrEqual(t, peak.Load(), int64(workers))
				assert.LessOrEqual(t, peak.Load(), int64(count))
				assert.GreaterOrEqual(t, peak.Load(), int64(1))
			})
		}
	}
}

func TestDispatcher_Run_UsesAllWorkers(t *testing.T) {
	defer goleak.VerifyNone(t)

	const workers = 4
	var arrived sync.WaitGroup
	arrived.Add(workers)
	release := make(chan struct{})

	// The first four batches block until all four are running at once,
	// which only happens if four workers are active.
	var started atomic.Int64
	processor := ProcessorFunc(func(ctx context.Context, b slurp.Batch) slurp.Outcome {
		if started.Add(1) <= workers {
			arrived.Done()
			<-release
		}
		return succeed(ctx, b)
	})

	d := New(Config{Workers: workers}, processor)

	done := make(chan slurp.RunResult)
	go func() { done <- d.Run(context.Background(), makeBatches(10, 1)) }()

	waitCh := make(chan struct{})
	go func() { arrived.Wait(); close(waitCh) }()

	select {
	case <-waitCh:
	case <-time.After(5 * time.Second):
		close(release)
		t.Fatal("workers did not run concurrently")
	}
	close(release)

	result := <-done
	assert.Equal(t, 10, result.BatchesOK)
}

func TestDispatcher_Run_FailureIsolation(t *testing.T) {
	defer goleak.VerifyNone(t)

	batches := makeBatches(20, 2)
	failAt := map[int]bool{3: true, 11: true}

	run := func(inject bool) (slurp.RunResult, map[int]slurp.Outcome) {
		processor := ProcessorFunc(func(ctx context.Context, b slurp.Batch) slurp.Outcome {
			if inject && failAt[b.Index] {
				return slurp.Failure(b.Index, fmt.Errorf("injected failure: %w", slurp.ErrTransport))
			}
			return succeed(ctx, b)
		})
		rec := &outcomeRecorder{}
		result := New(Config{Workers: 3}, processor, WithOutcomeHandler(rec.handle)).Run(context.Background(), batches)
		return result, rec.byIndex()
	}

	cleanResult, clean := run(false)
	faultyResult, faulty := run(true)

	assert.Equal(t, slurp.RunResult{BatchesOK: 20, ItemsOK: 40}, cleanResult)
	assert.Equal(t, slurp.RunResult{BatchesOK: 18, BatchesFailed: 2, ItemsOK: 36}, faultyResult)
	assert.Equal(t, faultyResult.Total(), len(batches))

	require.Len(t, faulty, len(batches))
	for i := range batches {
		if failAt[i] {
			assert.False(t, faulty[i].OK(), "batch %d should fail", i)
			assert.True(t, errors.Is(faulty[i].Err, slurp.ErrTransport))
			continue
		}
		assert.Equal(t, clean[i], faulty[i], "batch %d must be unaffected by other failures", i)
	}
}

func TestDispatcher_Run_PanicBecomesFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	processor := ProcessorFunc(func(ctx context.Context, b slurp.Batch) slurp.Outcome {
		if b.Index == 2 {
			panic("kaboom")
		}
		return succeed(ctx, b)
	})

	rec := &outcomeRecorder{}
	result := New(Config{Workers: 2}, processor, WithOutcomeHandler(rec.handle)).Run(context.Background(), makeBatches(5, 1))

	assert.Equal(t, slurp.RunResult{BatchesOK: 4, BatchesFailed: 1, ItemsOK: 4}, result)
	failed := rec.byIndex()[2]
	require.Error(t, failed.Err)
	assert.True(t, errors.Is(failed.Err, slurp.ErrPanic))
	assert.Contains(t, failed.Err.Error(), "kaboom")
}

func TestDispatcher_Run_IndexComesFromBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	// A processor that forgets to set the index still yields correct outcomes.
	processor := ProcessorFunc(func(_ context.Context, b slurp.Batch) slurp.Outcome {
		return slurp.Outcome{Count: b.Len()}
	})

	rec := &outcomeRecorder{}
	New(Config{Workers: 2}, processor, WithOutcomeHandler(rec.handle)).Run(context.Background(), makeBatches(6, 1))

	indices := make([]int, 0, 6)
	for i := range rec.byIndex() {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, indices)
}

func TestDispatcher_Run_CancelledContextStillYieldsOutcomes(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := ProcessorFunc(func(ctx context.Context, b slurp.Batch) slurp.Outcome {
		if err := ctx.Err(); err != nil {
			return slurp.Failure(b.Index, err)
		}
		return succeed(ctx, b)
	})

	result := New(Config{Workers: 2}, processor).Run(ctx, makeBatches(7, 1))
	assert.Equal(t, slurp.RunResult{BatchesFailed: 7}, result)
}

func TestDispatcher_Run_SmallQueue(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := New(Config{Workers: 2, QueueSize: 1}, ProcessorFunc(succeed))
	result := d.Run(context.Background(), makeBatches(25, 4))
	assert.Equal(t, slurp.RunResult{BatchesOK: 25, ItemsOK: 100}, result)
}

func TestNew_PanicsOnInvalidArguments(t *testing.T) {
	assert.Panics(t, func() { New(Config{Workers: 1}, nil) })
	assert.Panics(t, func() { New(Config{Workers: 0}, ProcessorFunc(succeed)) })
	assert.NotPanics(t, func() { New(DefaultConfig(), ProcessorFunc(succeed)) })
}
