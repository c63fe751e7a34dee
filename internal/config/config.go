package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Makepad-fr/todo/internal/model"
)

// Config holds everything tunable about where records live and how they
// are shown.
type Config struct {
	Dir             string  `mapstructure:"dir" yaml:"dir"`
	Extension       string  `mapstructure:"extension" yaml:"extension"`
	DefaultPriority float64 `mapstructure:"default_priority" yaml:"default_priority"`
	DateFormat      string  `mapstructure:"date_format" yaml:"date_format"`
	Theme           string  `mapstructure:"theme" yaml:"theme"`
	LogLevel        string  `mapstructure:"log_level" yaml:"log_level"`
}

const envPrefix = "TODO"

func DefaultConfig() *Config {
	return &Config{
		Dir:             ".todo",
		Extension:       ".todo",
		DefaultPriority: model.DefaultPriority,
		DateFormat:      "2006-01-02 15:04",
		Theme:           "classic",
		LogLevel:        "warn",
	}
}

// Load merges defaults, the global file, the project file and TODO_*
// environment variables, later sources winning. Missing files are skipped.
func Load() (*Config, error) {
	return LoadFrom(GlobalConfigPath(), ProjectConfigPath())
}

// LoadFrom is Load with explicit file locations. Empty paths are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, cfg)

	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		v.SetConfigFile(p)
		if err := v.MergeInConfig(); err != nil {
			return cfg, err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// AutomaticEnv only reaches keys viper already knows about, so every field
// gets registered through its default.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("dir", cfg.Dir)
	v.SetDefault("extension", cfg.Extension)
	v.SetDefault("default_priority", cfg.DefaultPriority)
	v.SetDefault("date_format", cfg.DateFormat)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("log_level", cfg.LogLevel)
}

// GlobalConfigPath returns the per-user config file.
func GlobalConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "todo", "config.yaml")
}

// ProjectConfigPath returns the config file next to the records of the
// current directory.
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".todo", "config.yaml")
}
