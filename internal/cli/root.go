package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slurp",
		Short: "Bulk-load a JSON array into SurrealDB",
		Long: `slurp reads a JSON array from disk, splits it into fixed-size batches and
sends every batch as one INSERT statement to SurrealDB's /sql HTTP endpoint,
a bounded number of batches at a time.

A failed batch never stops the others. The run reports how many batches
succeeded and exits non-zero if any failed.

Exit Codes:
  0  - Success (or nothing to insert)
  1  - One or more batches failed
  2  - CLI usage error or invalid configuration
  3  - Panic or unexpected system error
  10 - Input file unreadable or not a JSON array`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug output (same as --verbosity 2)")

	cmd.AddCommand(newInsertCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.ExecuteContext(context.Background())
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
