package am

import (
	"github.com/spf13/viper"

	"github.com/teranos/buildcfg/preset"
)

// Directory and file names used by the configuration cascade
const (
	ConfigFileName = "buildcfg.toml"
	UserConfigDir  = ".buildcfg"
	SystemConfig   = "/etc/buildcfg/" + ConfigFileName
	EnvPrefix      = "BUILDCFG"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("presets.file", preset.DefaultFileName)

	v.SetDefault("generator.command", "cmake")
	v.SetDefault("generator.source_dir", ".")
	v.SetDefault("generator.build_root", "builds")

	v.SetDefault("log.json", false)
}
