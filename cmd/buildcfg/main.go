package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/buildcfg/cmd/buildcfg/commands"
	"github.com/teranos/buildcfg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "buildcfg",
	Short: "buildcfg - named build configuration presets",
	Long: `buildcfg - named build configuration presets for the generator.

Each config is a named, ordered list of -D flags. The built-in presets can be
extended with a project presets file (buildcfg-presets.toml).

Available commands:
  get-config   - Print the flags of a config, one per line
  list-configs - List every config name
  defaults     - Show the default and debug config names
  show         - Show configs with flags and derivation (json, yaml, toml)
  cmdline      - Print the shell-quoted generator command line
  check        - Validate the presets file (optionally watching it)
  am           - Manage buildcfg configuration ("I am")

Examples:
  buildcfg get-config release64nolp
  buildcfg list-configs --long
  buildcfg cmdline --debug
  buildcfg check --watch`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.InitLogging(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	commands.AddGlobalFlags(rootCmd)
	commands.Register(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
