package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, VerbosityUser))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
		})
	}
}

func TestInitializeJSONFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeWithWriter(true, VerbosityInfo, &buf))
	defer Cleanup()

	ComponentLogger("preset").Infow("Table built", FieldCount, 13)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Table built", entry["msg"])
	assert.Equal(t, "preset", entry["logger"])
	assert.EqualValues(t, 13, entry[FieldCount])
}

func TestVerbosityFiltersLevels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeWithWriter(false, VerbosityUser, &buf))

	Infow("hidden at default verbosity")
	Debugw("hidden too")
	Warnw("shown")

	out := stripANSI(buf.String())
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  shown")
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{10, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(LevelName(tt.verbosity), func(t *testing.T) {
			assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity))
		})
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Trace (-vvv+)", LevelName(7))
	assert.Equal(t, "Unknown", LevelName(-1))
	assert.True(t, ShouldLogTrace(3))
	assert.False(t, ShouldLogTrace(2))
}

func TestNopBeforeInitialize(t *testing.T) {
	Logger = nil
	t.Cleanup(func() { Logger = zap.NewNop().Sugar() })

	// Helpers must tolerate a nil logger
	Infow("x")
	Errorw("x")
	Warnw("x")
	Debugw("x")
	Cleanup()
}

func TestChildLoggerKeepsContextFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitializeWithWriter(false, VerbosityDebug, &buf))
	t.Cleanup(func() { Logger = zap.NewNop().Sugar() })

	log := ChildLogger(ComponentLogger("am.watcher"), FieldFile, "buildcfg-presets.toml")
	log.Debugw("Presets file changed", FieldOperation, "WRITE")

	out := stripANSI(buf.String())
	assert.Contains(t, out, "a.watcher  Presets file changed  file=buildcfg-presets.toml operation=WRITE")
}
