package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/buildcfg/am"
	"github.com/teranos/buildcfg/errors"
	"github.com/teranos/buildcfg/logger"
	"github.com/teranos/buildcfg/preset"
	"github.com/teranos/buildcfg/version"
)

// AddGlobalFlags registers the flags every command inherits
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	root.PersistentFlags().String("presets", "", "Presets file layered over the built-in table (default: presets.file from config)")
	root.PersistentFlags().Bool("builtin", false, "Ignore any presets file and use only the built-in presets")
	root.PersistentFlags().Bool("json", false, "Output JSON where supported")
}

// InitLogging sets up the global logger from -v and log.json
func InitLogging(cmd *cobra.Command) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")

	jsonLogs := false
	if cfg, err := am.Load(); err == nil {
		jsonLogs = cfg.Log.JSON
	}

	if err := logger.Initialize(jsonLogs, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	logger.Debugw("Logger initialized", "level", logger.LevelName(verbosity))

	if logger.ShouldLogTrace(verbosity) {
		for _, src := range am.Sources() {
			logger.Debugw("Config source",
				"kind", src.Kind,
				logger.FieldFile, src.Path,
				"merged", src.Merged)
		}
	}
	return nil
}

// LoadTable returns the preset table commands operate on: the built-in
// presets, plus the presets file when one is configured and present.
// A presets file named explicitly with --presets must exist.
func LoadTable(cmd *cobra.Command) (*preset.Table, error) {
	if builtinOnly, _ := cmd.Flags().GetBool("builtin"); builtinOnly {
		return preset.Builtin(), nil
	}

	path, explicit, err := presetsPath(cmd)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return preset.Builtin(), nil
	}

	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Debugw("No presets file, using built-in presets", logger.FieldFile, path)
			return preset.Builtin(), nil
		}
	}

	return preset.LoadTable(path, version.Version)
}

func presetsPath(cmd *cobra.Command) (path string, explicit bool, err error) {
	if f := cmd.Flags().Lookup("presets"); f != nil && f.Changed {
		return f.Value.String(), true, nil
	}

	cfg, err := am.Load()
	if err != nil {
		return "", false, errors.Wrap(err, "failed to load configuration")
	}
	return cfg.Presets.File, false, nil
}

// completeConfigNames offers config names for shell completion
func completeConfigNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	table, err := LoadTable(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return table.Names(), cobra.ShellCompDirectiveNoFileComp
}
