package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/buildcfg/am"
	"github.com/teranos/buildcfg/errors"
	"github.com/teranos/buildcfg/preset"
	"github.com/teranos/buildcfg/version"
)

// CheckCmd builds the preset table from the presets file and reports problems
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the presets file builds a valid table",
	Long: `Build the preset table (built-in presets plus the presets file) and
report whether it is valid. With --watch, keep rebuilding whenever the
presets file changes until interrupted.

Examples:
  buildcfg check
  buildcfg check --presets ci/presets.toml --watch`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

var checkWatch bool

func init() {
	CheckCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Re-check whenever the presets file changes")
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	table, err := LoadTable(cmd)
	if err != nil {
		if !checkWatch {
			return err
		}
		PrintError(cmd.ErrOrStderr(), err)
	} else {
		reportTable(out, table)
	}

	if !checkWatch {
		return nil
	}

	path, _, err := presetsPath(cmd)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.WithHint(
			errors.NewInvalidRequestError("no presets file to watch"),
			"pass --presets or set presets.file",
		)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchPresets(ctx, path, out, cmd.ErrOrStderr())
}

// watchPresets reports every rebuild of the table at path until ctx is done
func watchPresets(ctx context.Context, path string, out, errOut io.Writer) error {
	watcher, err := am.NewPresetsWatcher(path, version.Version)
	if err != nil {
		return err
	}
	watcher.OnReload(func(table *preset.Table, err error) {
		if err != nil {
			PrintError(errOut, err)
			return
		}
		reportTable(out, table)
	})
	watcher.Start()

	fmt.Fprintf(out, "%s %s\n", pterm.Gray("watching"), watcher.Path())
	<-ctx.Done()
	return watcher.Stop()
}

func reportTable(w io.Writer, table *preset.Table) {
	fmt.Fprintf(w, "%s %d configs (default %s, debug %s)\n",
		pterm.Green("ok"), table.Len(), table.DefaultName(), table.DebugName())
}
