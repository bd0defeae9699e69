package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teranos/buildcfg/am"
	"github.com/teranos/buildcfg/errors"
	"github.com/teranos/buildcfg/preset"
)

// CmdlineCmd renders the generator invocation for a config
var CmdlineCmd = &cobra.Command{
	Use:   "cmdline [name]",
	Short: "Print the shell-quoted generator command line for a config",
	Long: `Print the generator command line for a config, shell-quoted and ready
to paste. Nothing is executed.

Without a name the default config is used; --debug selects the debug config.
The generator, source directory and build root come from configuration
(generator.command, generator.source_dir, generator.build_root).

Examples:
  buildcfg cmdline release64
  buildcfg cmdline --debug
  buildcfg cmdline debug64nolp --build-dir /tmp/dbg --extra "-G Ninja"`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeConfigNames,
	RunE:              runCmdline,
}

var (
	cmdlineDebug    bool
	cmdlineBuildDir string
	cmdlineExtra    string
)

func init() {
	CmdlineCmd.Flags().BoolVar(&cmdlineDebug, "debug", false, "Use the debug config when no name is given")
	CmdlineCmd.Flags().StringVar(&cmdlineBuildDir, "build-dir", "", "Build directory (default: <build_root>/<config>)")
	CmdlineCmd.Flags().StringVar(&cmdlineExtra, "extra", "", "Extra shell-style arguments appended after the config flags")
}

func runCmdline(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	table, err := LoadTable(cmd)
	if err != nil {
		return err
	}

	name := table.DefaultName()
	switch {
	case len(args) == 1:
		if cmdlineDebug {
			return errors.WithHint(
				errors.NewInvalidRequestError("--debug cannot be combined with a config name"),
				"drop --debug or the name",
			)
		}
		name = args[0]
	case cmdlineDebug:
		name = table.DebugName()
	}

	flags, err := table.Flags(name)
	if err != nil {
		return err
	}

	if cmdlineExtra != "" {
		extra, err := preset.SplitFlags(cmdlineExtra)
		if err != nil {
			return err
		}
		flags = append(flags, extra...)
	}

	buildDir := cmdlineBuildDir
	if buildDir == "" {
		buildDir = filepath.Join(cfg.Generator.BuildRoot, name)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(),
		preset.CommandLine(cfg.Generator.Command, cfg.Generator.SourceDir, buildDir, flags))
	return err
}
