// Package batch splits an ordered item sequence into fixed-size batches.
package batch

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vvka-141/slurp/pkg/slurp"
)

// ErrInvalidBatchSize is returned for a batch size below 1.
var ErrInvalidBatchSize = errors.New("batch size must be at least 1")

// Partition splits items into consecutive batches of at most size items.
// Batch i holds items[i*size : min((i+1)*size, len(items))]; only the last
// batch may be short. Each batch's slice is capacity-clipped so appending to
// one can never overwrite its neighbour. Empty input yields no batches.
func Partition(items []slurp.Item, size int) ([]slurp.Batch, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidBatchSize, size)
	}

	batches := make([]slurp.Batch, 0, Count(len(items), size))
	for chunk := range slices.Chunk(items, size) {
		batches = append(batches, slurp.Batch{Index: len(batches), Items: chunk})
	}
	return batches, nil
}

// Count returns the number of batches Partition produces for n items.
func Count(n, size int) int {
	if n <= 0 || size < 1 {
		return 0
	}
	return (n + size - 1) / size
}
