package commands

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/buildcfg/display"
	"github.com/teranos/buildcfg/preset"
)

// ListConfigsCmd prints every config name
var ListConfigsCmd = &cobra.Command{
	Use:     "list-configs",
	Aliases: []string{"ls"},
	Short:   "List all config names",
	Long: `List all config names, one per line, sorted.

With --long, print a table with each config's build type, flag count,
how it is derived, and whether it is the default or debug selector.`,
	Args: cobra.NoArgs,
	RunE: runListConfigs,
}

var listLong bool

func init() {
	ListConfigsCmd.Flags().BoolVarP(&listLong, "long", "l", false, "Show build type, flag count and derivation")
}

type listRow struct {
	Name      string `json:"name"`
	BuildType string `json:"build_type"`
	Flags     int    `json:"flags"`
	Derived   string `json:"derived,omitempty"`
	Selector  string `json:"selector,omitempty"`
}

func runListConfigs(cmd *cobra.Command, args []string) error {
	table, err := LoadTable(cmd)
	if err != nil {
		return err
	}

	names := table.Names()
	if !listLong {
		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(cmd.OutOrStdout(), names)
		}
		return printLines(cmd, names)
	}

	rows, err := listRows(table, names)
	if err != nil {
		return err
	}
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), rows)
	}

	data := [][]string{{"NAME", "BUILD TYPE", "FLAGS", "DERIVED", "SELECTOR"}}
	for _, r := range rows {
		data = append(data, []string{r.Name, r.BuildType, strconv.Itoa(r.Flags), r.Derived, r.Selector})
	}
	return pterm.DefaultTable.
		WithHasHeader().
		WithData(data).
		WithWriter(cmd.OutOrStdout()).
		Render()
}

func listRows(table *preset.Table, names []string) ([]listRow, error) {
	rows := make([]listRow, 0, len(names))
	for _, name := range names {
		flags, err := table.Flags(name)
		if err != nil {
			return nil, err
		}
		def, err := table.Definition(name)
		if err != nil {
			return nil, err
		}

		row := listRow{
			Name:      name,
			BuildType: preset.BuildType(flags),
			Flags:     len(flags),
			Selector:  selectorNames(table, name),
		}
		if def.Derived() {
			row.Derived = def.String()
		}
		rows = append(rows, row)
	}
	return rows, nil
}
