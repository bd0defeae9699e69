package am

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/teranos/buildcfg/preset"
)

type reloadResult struct {
	table *preset.Table
	err   error
}

func startWatcher(t *testing.T, path string) <-chan reloadResult {
	t.Helper()

	pw, err := NewPresetsWatcher(path, "dev")
	require.NoError(t, err)
	pw.SetDebounce(50 * time.Millisecond)

	results := make(chan reloadResult, 8)
	pw.OnReload(func(table *preset.Table, err error) {
		results <- reloadResult{table: table, err: err}
	})
	pw.Start()
	t.Cleanup(func() { _ = pw.Stop() })
	return results
}

func waitReload(t *testing.T, results <-chan reloadResult) reloadResult {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for presets reload")
		return reloadResult{}
	}
}

func TestPresetsWatcherRebuildsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), preset.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	results := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte(`
[[preset]]
name = "release64lto"
base = "release64"
append = ["-DUSE_LTO=YES"]
`), 0o644))

	r := waitReload(t, results)
	require.NoError(t, r.err)
	require.NotNil(t, r.table)
	assert.True(t, r.table.Has("release64lto"))
	assert.False(t, preset.Builtin().Has("release64lto"))
}

func TestPresetsWatcherReportsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), preset.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	results := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte(`
[[preset]]
name = "broken"
base = "minimal"
skip = 9
`), 0o644))

	r := waitReload(t, results)
	assert.Nil(t, r.table)
	assert.ErrorIs(t, r.err, preset.ErrMalformedConfig)
}

func TestPresetsWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, preset.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	results := startWatcher(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.toml"), []byte("x = 1"), 0o644))

	select {
	case r := <-results:
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestPresetsWatcherStopWithoutStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), preset.DefaultFileName)
	pw, err := NewPresetsWatcher(path, "dev")
	require.NoError(t, err)
	assert.Equal(t, path, pw.Path())
	assert.NoError(t, pw.Stop())
}

func TestPresetsWatcherStopReleasesGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), preset.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	pw, err := NewPresetsWatcher(path, "dev")
	require.NoError(t, err)
	pw.Start()
	require.NoError(t, pw.Stop())

	// Start after Stop is a no-op.
	pw.Start()
}
