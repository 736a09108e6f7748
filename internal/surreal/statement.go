package surreal

import (
	"fmt"
	"strings"

	"github.com/vvka-141/slurp/internal/codec"
	"github.com/vvka-141/slurp/pkg/slurp"
)

// InsertBuilder renders batches as INSERT statements for one table.
// Safe for concurrent use.
type InsertBuilder struct {
	table string
}

// NewInsertBuilder creates a builder targeting table.
func NewInsertBuilder(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

// Build implements slurp.StatementBuilder.
func (b *InsertBuilder) Build(batch slurp.Batch) (string, error) {
	return BuildInsert(b.table, batch)
}

// BuildInsert returns `INSERT INTO <table> <json array> RETURN NONE;`.
// The array is compact with sorted object keys, so equal batches always
// render identically. Items that have no JSON form (NaN, Inf, channels)
// produce an error wrapping slurp.ErrBuildFailed.
func BuildInsert(table string, batch slurp.Batch) (string, error) {
	items := batch.Items
	if items == nil {
		items = []slurp.Item{}
	}

	payload, err := codec.Encode(items)
	if err != nil {
		return "", fmt.Errorf("%w: batch #%d: %v", slurp.ErrBuildFailed, batch.Index, err)
	}

	var sb strings.Builder
	sb.Grow(len("INSERT INTO ") + len(table) + 1 + len(payload) + len(" RETURN NONE;"))
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteByte(' ')
	sb.Write(payload)
	sb.WriteString(" RETURN NONE;")
	return sb.String(), nil
}
