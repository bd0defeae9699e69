// Package am loads buildcfg's own configuration ("I am"): where the presets
// file lives and how generator command lines are rendered.
package am

// Config represents the buildcfg configuration
type Config struct {
	Presets   PresetsConfig   `mapstructure:"presets" json:"presets" yaml:"presets" toml:"presets"`
	Generator GeneratorConfig `mapstructure:"generator" json:"generator" yaml:"generator" toml:"generator"`
	Log       LogConfig       `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
}

// PresetsConfig locates the project presets file
type PresetsConfig struct {
	File string `mapstructure:"file" json:"file" yaml:"file" toml:"file"` // Relative paths resolve against the working directory
}

// GeneratorConfig describes the generator invocation rendered by `buildcfg cmdline`
type GeneratorConfig struct {
	Command   string `mapstructure:"command" json:"command" yaml:"command" toml:"command"`             // e.g. "cmake"
	SourceDir string `mapstructure:"source_dir" json:"source_dir" yaml:"source_dir" toml:"source_dir"` // passed as -S
	BuildRoot string `mapstructure:"build_root" json:"build_root" yaml:"build_root" toml:"build_root"` // build dirs are <build_root>/<config>
}

// LogConfig configures log output
type LogConfig struct {
	JSON bool `mapstructure:"json" json:"json" yaml:"json" toml:"json"`
}
