package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/buildcfg/am"
	"github.com/teranos/buildcfg/display"
	"github.com/teranos/buildcfg/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage buildcfg configuration",
	Long: `am - Manage buildcfg configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (BUILDCFG_* prefix, e.g. BUILDCFG_GENERATOR_COMMAND)
3. Project config (./buildcfg.toml, searched upward)
4. User config (~/.buildcfg/buildcfg.toml)
5. System config (/etc/buildcfg/buildcfg.toml)
6. Default values

Examples:
  buildcfg am show                 # Show current configuration
  buildcfg am show --format json   # Show configuration in JSON format
  buildcfg am where                # Show which files were loaded
  buildcfg am get generator.command
  buildcfg am validate             # Validate current configuration`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runAmShow,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Args:  cobra.NoArgs,
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Args:  cobra.NoArgs,
	RunE:  runAmWhere,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value (dot notation, e.g. generator.command)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := am.Get(args[0])
		if value == nil {
			return errors.WithHint(
				errors.NewNotFoundError("configuration key %q", args[0]),
				"run 'buildcfg am show' to list keys",
			)
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), value)
		return err
	},
}

var amFormat string

func init() {
	amShowCmd.Flags().StringVar(&amFormat, "format", string(display.FormatTOML), "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
	AmCmd.AddCommand(amGetCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	format, err := display.ParseFormat(amFormat)
	if err != nil {
		return err
	}
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	return display.Output(cmd.OutOrStdout(), format, cfg)
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration is invalid")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s configuration is valid\n", pterm.Green("ok"))
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	sources := am.Sources()
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), sources)
	}

	out := cmd.OutOrStdout()
	for _, src := range sources {
		status := pterm.Gray("missing")
		switch {
		case src.Merged:
			status = pterm.Green("loaded")
		case src.Exists:
			status = pterm.Yellow("unreadable")
		}
		fmt.Fprintf(out, "%-8s %-10s %s\n", src.Kind, status, src.Path)
	}
	return nil
}
