package am

import (
	"strings"

	"github.com/teranos/buildcfg/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Generator.Command) == "" {
		return errors.NewInvalidRequestError("generator.command cannot be empty")
	}
	if strings.TrimSpace(c.Generator.SourceDir) == "" {
		return errors.NewInvalidRequestError("generator.source_dir cannot be empty (use \".\")")
	}
	if strings.TrimSpace(c.Generator.BuildRoot) == "" {
		return errors.NewInvalidRequestError("generator.build_root cannot be empty")
	}
	// An empty presets file disables the overlay; only whitespace is suspicious
	if c.Presets.File != "" && strings.TrimSpace(c.Presets.File) == "" {
		return errors.NewInvalidRequestError("presets.file is blank")
	}
	return nil
}
