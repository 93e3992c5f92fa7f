// Package config loads kraken CLI settings from an optional config file
// and KRAKEN_CLI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/openkraken/cli/launcher"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "kraken"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// EnvPrefix prefixes environment overrides, e.g. KRAKEN_CLI_INSTALL_ROOT.
	EnvPrefix = "KRAKEN_CLI"
)

// Config holds the settings that are not per-invocation flags.
type Config struct {
	// InstallRoot contains the build/ directory with the prebuilt binaries.
	// Empty means the parent of the executable's directory.
	InstallRoot   string        `mapstructure:"install_root"`
	RuntimeMode   string        `mapstructure:"runtime_mode"`
	StderrFilters []string      `mapstructure:"stderr_filters"`
	Verbose       bool          `mapstructure:"verbose"`
	Compile       CompileConfig `mapstructure:"compile"`
}

// CompileConfig configures the bytecode compiler.
type CompileConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	DiskCache   bool          `mapstructure:"disk_cache"`
	MemoryLimit string        `mapstructure:"memory_limit"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		RuntimeMode:   "debug",
		StderrFilters: append([]string(nil), launcher.DefaultStderrFilters...),
		Compile: CompileConfig{
			Timeout:     30 * time.Second,
			DiskCache:   true,
			MemoryLimit: "256mb",
		},
	}
}

// Dir returns $XDG_CONFIG_HOME/kraken, defaulting to ~/.config/kraken.
func Dir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration. When path is set the file must exist;
// otherwise config.{yaml,json,toml} in Dir() is used if present. The second
// return value is the file that was read, if any.
func Load(path string) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("install_root", defaults.InstallRoot)
	v.SetDefault("runtime_mode", defaults.RuntimeMode)
	v.SetDefault("stderr_filters", defaults.StderrFilters)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("compile.timeout", defaults.Compile.Timeout)
	v.SetDefault("compile.disk_cache", defaults.Compile.DiskCache)
	v.SetDefault("compile.memory_limit", defaults.Compile.MemoryLimit)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read config %s: %w", path, err)
		}
	} else if dir, err := Dir(); err == nil {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, "", fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("decode config: %w", err)
	}
	return &cfg, v.ConfigFileUsed(), nil
}
