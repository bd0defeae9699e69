package am

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/buildcfg/errors"
	"github.com/teranos/buildcfg/logger"
)

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper
	loadedSources []Source
)

// Source is one file in the configuration cascade
type Source struct {
	Kind   string `json:"kind" yaml:"kind"` // system, user, project
	Path   string `json:"path" yaml:"path"`
	Exists bool   `json:"exists" yaml:"exists"`
	Merged bool   `json:"merged" yaml:"merged"`
}

// Load reads the buildcfg configuration using Viper.
// The result is cached until Reset is called.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViperLocked()
	config, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	mu.Lock()
	defer mu.Unlock()
	return initViperLocked()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path on top of defaults
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}
	return config, nil
}

// Sources returns the cascade consulted by the last Load, lowest precedence first
func Sources() []Source {
	mu.Lock()
	defer mu.Unlock()
	initViperLocked()
	return append([]Source(nil), loadedSources...)
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	loadedSources = nil
}

// initViperLocked initializes Viper with configuration sources and defaults.
// Callers hold mu.
func initViperLocked() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	// BUILDCFG_GENERATOR_COMMAND overrides generator.command, etc.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	loadedSources = mergeConfigFiles(v, candidateSources())

	viperInstance = v
	return v
}

// candidateSources lists config files in precedence order: system < user < project
func candidateSources() []Source {
	sources := []Source{{Kind: "system", Path: SystemConfig}}

	if homeDir, err := os.UserHomeDir(); err == nil {
		sources = append(sources, Source{Kind: "user", Path: filepath.Join(homeDir, UserConfigDir, ConfigFileName)})
	}

	if project := findProjectConfig(); project != "" {
		sources = append(sources, Source{Kind: "project", Path: project})
	}
	return sources
}

// findProjectConfig searches for buildcfg.toml by walking up the directory tree.
// Returns the first match, or empty string if none found.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges the existing files of sources into v, in order,
// so later files override earlier ones. Environment variables still win.
func mergeConfigFiles(v *viper.Viper, sources []Source) []Source {
	for i := range sources {
		src := &sources[i]
		if _, err := os.Stat(src.Path); err != nil {
			continue
		}
		src.Exists = true

		fileViper := viper.New()
		fileViper.SetConfigFile(src.Path)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			logger.Warnw("Skipping unreadable config file",
				logger.FieldFile, src.Path,
				logger.FieldError, err)
			continue
		}

		if err := v.MergeConfigMap(fileViper.AllSettings()); err != nil {
			logger.Warnw("Failed to merge config file",
				logger.FieldFile, src.Path,
				logger.FieldError, err)
			continue
		}
		src.Merged = true
		logger.Debugw("Merged config file", logger.FieldFile, src.Path, "kind", src.Kind)
	}
	return sources
}

// Get returns a configuration value using dot notation
func Get(key string) interface{} {
	return GetViper().Get(key)
}

// GetString returns a configuration value as string using dot notation
func GetString(key string) string {
	return GetViper().GetString(key)
}
