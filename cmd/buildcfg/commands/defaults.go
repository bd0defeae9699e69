package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/buildcfg/display"
	"github.com/teranos/buildcfg/preset"
)

// DefaultsCmd prints the default and debug selectors
var DefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show the default and debug config names",
	Long: `Show the config names used when no config is requested (DEFAULT)
and for debug builds (DEBUG). A presets file may override both.`,
	Args: cobra.NoArgs,
	RunE: runDefaults,
}

type selectors struct {
	Default string `json:"default"`
	Debug   string `json:"debug"`
}

func runDefaults(cmd *cobra.Command, args []string) error {
	table, err := LoadTable(cmd)
	if err != nil {
		return err
	}

	sel := selectors{Default: table.DefaultName(), Debug: table.DebugName()}
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), sel)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "DEFAULT=%s\nDEBUG=%s\n", sel.Default, sel.Debug)
	return err
}

// selectorNames returns the default/debug markers shown next to names
func selectorNames(table *preset.Table, name string) string {
	switch name {
	case table.DefaultName():
		if name == table.DebugName() {
			return "default, debug"
		}
		return "default"
	case table.DebugName():
		return "debug"
	}
	return ""
}
