package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/slurp/internal/files/filesystem"
	testhelpers "github.com/vvka-141/slurp/internal/testing"
	"github.com/vvka-141/slurp/pkg/slurp"
)

func writeDocument(n int) string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"seq":%d,"name":"item %d","tags":["a","b"],"big":9007199254740993}`, i, i)
	}
	b.WriteString("]")
	return b.String()
}

func TestInsertService_Integration_InsertsEveryRecord(t *testing.T) {
	baseURL := testhelpers.RequireSurreal(t)
	ns, db := testhelpers.UniqueScope(t)

	mfs := filesystem.NewMemoryFileSystem("/in")
	mfs.AddFile("items.json", writeDocument(1234))
	inserter := testhelpers.NewTestInserter(t, mfs)

	result, err := inserter.Insert(context.Background(), slurp.InsertConfig{
		DataPath:  "/in/items.json",
		BaseURL:   baseURL,
		Namespace: ns,
		Database:  db,
		Table:     "item",
		BatchSize: 100,
		Workers:   4,
		Timeout:   30 * time.Second,
		Verbosity: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, slurp.RunResult{BatchesOK: 13, ItemsOK: 1234}, result)
	assert.Equal(t, 1234, testhelpers.CountRecords(t, baseURL, ns, db, "item"))
}

func TestInsertService_Integration_DryRunWritesNothing(t *testing.T) {
	baseURL := testhelpers.RequireSurreal(t)
	ns, db := testhelpers.UniqueScope(t)

	mfs := filesystem.NewMemoryFileSystem("/in")
	mfs.AddFile("marker.json", `[{"marker":true}]`)
	mfs.AddFile("items.json", writeDocument(50))
	inserter := testhelpers.NewTestInserter(t, mfs)

	cfg := slurp.InsertConfig{
		DataPath:  "/in/marker.json",
		BaseURL:   baseURL,
		Namespace: ns,
		Database:  db,
		Table:     "marker",
		BatchSize: 10,
		Workers:   2,
		Verbosity: 1,
	}
	_, err := inserter.Insert(context.Background(), cfg)
	require.NoError(t, err)

	cfg.DataPath = "/in/items.json"
	cfg.Table = "item"
	cfg.DryRun = true
	result, err := inserter.Insert(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, 5, result.BatchesOK)
	assert.Equal(t, 1, testhelpers.CountRecords(t, baseURL, ns, db, "marker"))
	assert.Equal(t, 0, testhelpers.CountRecords(t, baseURL, ns, db, "item"))
}
