package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/buildcfg/display"
	"github.com/teranos/buildcfg/preset"
)

// ShowCmd dumps one or all configs in a structured format
var ShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show configs with their flags and derivation",
	Long: `Show one config, or every config, with its flags and how it is derived.

Examples:
  buildcfg show                     # every config as JSON
  buildcfg show debug32 --format yaml
  buildcfg show --format toml`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeConfigNames,
	RunE:              runShow,
}

var showFormat string

func init() {
	ShowCmd.Flags().StringVar(&showFormat, "format", string(display.FormatJSON), "Output format: json, yaml, toml")
}

// showDocument is the top-level shape of `show` output
type showDocument struct {
	Default string         `json:"default" yaml:"default" toml:"default"`
	Debug   string         `json:"debug" yaml:"debug" toml:"debug"`
	Configs []preset.Entry `json:"configs" yaml:"configs" toml:"configs"`
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := display.ParseFormat(showFormat)
	if err != nil {
		return err
	}

	table, err := LoadTable(cmd)
	if err != nil {
		return err
	}

	doc := showDocument{Default: table.DefaultName(), Debug: table.DebugName()}
	if len(args) == 1 {
		entry, err := entryFor(table, args[0])
		if err != nil {
			return err
		}
		doc.Configs = []preset.Entry{entry}
	} else {
		doc.Configs = table.Entries()
	}

	return display.Output(cmd.OutOrStdout(), format, doc)
}

func entryFor(table *preset.Table, name string) (preset.Entry, error) {
	flags, err := table.Flags(name)
	if err != nil {
		return preset.Entry{}, err
	}
	def, err := table.Definition(name)
	if err != nil {
		return preset.Entry{}, err
	}
	return preset.Entry{Name: name, Flags: flags, Definition: def}, nil
}
