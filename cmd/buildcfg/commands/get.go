package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/buildcfg/display"
)

// GetConfigCmd prints the flags of one config
var GetConfigCmd = &cobra.Command{
	Use:     "get-config <name>",
	Aliases: []string{"get"},
	Short:   "Print the generator flags of a config, one per line",
	Long: `Print the generator flags of a config, one per line, in the order they
must be passed to the generator.

Exits with status 1 when the config is unknown.

Examples:
  buildcfg get-config release64nolp
  buildcfg get-config debug32 --json
  cmake -S . -B builds/debug32 $(buildcfg get-config debug32)`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeConfigNames,
	RunE:              runGetConfig,
}

func runGetConfig(cmd *cobra.Command, args []string) error {
	table, err := LoadTable(cmd)
	if err != nil {
		return err
	}

	flags, err := table.Flags(args[0])
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), flags)
	}
	return printLines(cmd, flags)
}

func printLines(cmd *cobra.Command, lines []string) error {
	out := cmd.OutOrStdout()
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
