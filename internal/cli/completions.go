package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// verbosityLevels pairs each --verbosity value with its log level for shell completion.
var verbosityLevels = []string{"0\twarn", "1\tinfo", "2\tdebug"}

// completeVerbosity provides shell completion for --verbosity values.
func completeVerbosity(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, level := range verbosityLevels {
		if strings.HasPrefix(level, toComplete) {
			matches = append(matches, level)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeJSONFiles restricts --data completion to .json files.
func completeJSONFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeYAMLFiles restricts --config completion to YAML files.
func completeYAMLFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}
