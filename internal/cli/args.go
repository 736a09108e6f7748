package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RejectPositionalArgs fails when any positional argument is given.
// The message keeps the "accepts" wording so it maps to the usage exit code.
func RejectPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf(`accepts 0 arg(s), received %d

Usage: %s

Example:
  %s --data items.json --table person --ns test --db test`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
