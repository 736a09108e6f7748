package testing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/vvka-141/slurp/internal/codec"
	"github.com/vvka-141/slurp/internal/files/filesystem"
	"github.com/vvka-141/slurp/internal/loader"
	"github.com/vvka-141/slurp/internal/logging"
	"github.com/vvka-141/slurp/internal/services"
	"github.com/vvka-141/slurp/internal/surreal"
	"github.com/vvka-141/slurp/internal/testinfra"
	"github.com/vvka-141/slurp/pkg/slurp"
)

// EnvTestURL points integration tests at an already running SurrealDB.
const EnvTestURL = "SLURP_TEST_URL"

var (
	testContainerOnce sync.Once
	testContainerURL  string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartSurreal(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerURL = container.BaseURL
	})
	return testContainerURL, testContainerErr
}

// GetTestURL returns the base URL of the test SurrealDB.
// Priority: SLURP_TEST_URL env var > auto-started testcontainer > skip test.
func GetTestURL(t *testing.T) string {
	t.Helper()

	if url := os.Getenv(EnvTestURL); url != "" {
		return url
	}

	url, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", EnvTestURL, err)
	}
	return url
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireSurreal combines SkipIfShort and GetTestURL for convenience.
func RequireSurreal(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestURL(t)
}

// NewTestInserter creates an Inserter reading through fsProvider and
// discarding log output.
func NewTestInserter(t *testing.T, fsProvider filesystem.FileSystemProvider) slurp.Inserter {
	t.Helper()

	return services.NewInsertService(
		loader.NewLoader(fsProvider),
		services.NewSurrealSubmitter,
		logging.NewNullLogger(),
	)
}

// UniqueScope returns a namespace and database name no other test uses.
// SurrealDB creates both on first write.
func UniqueScope(t *testing.T) (ns, db string) {
	t.Helper()

	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return "test_" + id, "db_" + id
}

// CountRecords returns the number of records in table.
func CountRecords(t *testing.T, baseURL, ns, db, table string) int {
	t.Helper()

	client := surreal.NewClient(surreal.ClientConfig{
		Endpoint:  strings.TrimRight(baseURL, "/") + slurp.SQLPath,
		Namespace: ns,
		Database:  db,
	})

	resp, err := client.Submit(context.Background(), fmt.Sprintf("SELECT count() FROM %s GROUP ALL;", table))
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if !resp.Succeeded() {
		t.Fatalf("count query rejected: %s: %s", resp.Status, resp.Body)
	}

	count, err := parseCount(resp.Body)
	if err != nil {
		t.Fatalf("unexpected count response %s: %v", resp.Body, err)
	}
	return count
}

// parseCount reads [{"result":[{"count":N}],"status":"OK"}]. An empty result
// means the table has no records.
func parseCount(body []byte) (int, error) {
	doc, err := codec.Decode(body)
	if err != nil {
		return 0, err
	}

	statements, ok := doc.([]any)
	if !ok || len(statements) != 1 {
		return 0, fmt.Errorf("expected one statement result")
	}
	stmt, ok := statements[0].(map[string]any)
	if !ok {
		return 0, fmt.Errorf("statement result is not an object")
	}
	if status, _ := stmt["status"].(string); status != "OK" {
		return 0, fmt.Errorf("statement status %q: %v", status, stmt["result"])
	}

	rows, ok := stmt["result"].([]any)
	if !ok {
		return 0, fmt.Errorf("result is not an array")
	}
	if len(rows) == 0 {
		return 0, nil
	}
	row, ok := rows[0].(map[string]any)
	if !ok {
		return 0, fmt.Errorf("row is not an object")
	}
	n, ok := row["count"].(json.Number)
	if !ok {
		return 0, fmt.Errorf("count is not a number")
	}
	v, err := n.Int64()
	return int(v), err
}
