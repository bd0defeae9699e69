package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across buildcfg.
const (
	FieldOperation = "operation"

	FieldConfig    = "config"
	FieldBase      = "base"
	FieldSkip      = "skip"
	FieldFlagCount = "flags"
	FieldCount     = "count"

	FieldFile  = "file"
	FieldError = "error"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	log := logger.ComponentLogger("preset.file")
//	log.Debugw("decoded presets", logger.FieldCount, len(defs))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
