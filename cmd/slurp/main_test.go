package main

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/slurp/pkg/slurp"
)

const envRunMain = "SLURP_RUN_MAIN"

// TestMain_PanicExitsWithPanicCode re-runs the test binary as slurp itself
// so the os.Exit in main's recover can be observed.
func TestMain_PanicExitsWithPanicCode(t *testing.T) {
	if os.Getenv(envRunMain) == "1" {
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestMain_PanicExitsWithPanicCode$")
	cmd.Env = append(os.Environ(), envRunMain+"=1", "SLURP_TEST_PANIC=1")
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "expected a non-zero exit, got %v\n%s", err, out)
	assert.Equal(t, slurp.ExitPanic, exitErr.ExitCode())
	assert.Contains(t, string(out), "panic: intentional test panic")
}
