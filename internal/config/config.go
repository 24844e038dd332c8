// Package config loads CLI and server settings from defaults, an optional
// pitheme.yaml, PITHEME_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pulseinsights/pitheme/internal/css"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides: compile.include_legacy_layer
// is read from PITHEME_COMPILE_INCLUDE_LEGACY_LAYER.
const EnvPrefix = "PITHEME"

// Config holds resolved settings.
type Config struct {
	Compile css.Options  `mapstructure:"compile"`
	Output  OutputConfig `mapstructure:"output"`
	Server  ServerConfig `mapstructure:"server"`
	Log     LogConfig    `mapstructure:"log"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Verbosity int    `mapstructure:"verbosity"`
	File      string `mapstructure:"file"`
}

// New returns a viper instance with defaults and environment overrides set.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	opts := css.DefaultOptions()
	v.SetDefault("compile.include_legacy_layer", opts.IncludeLegacyLayer)
	v.SetDefault("compile.include_focus_styles", opts.IncludeFocusStyles)
	v.SetDefault("compile.include_slider_styles", opts.IncludeSliderStyles)
	v.SetDefault("compile.include_all_at_once_styles", opts.IncludeAllAtOnceStyles)

	v.SetDefault("output.dir", "output")
	v.SetDefault("server.addr", "127.0.0.1:8787")

	v.SetDefault("log.verbosity", 0)
	v.SetDefault("log.file", "")
}

// Load reads the config file at path into v and decodes the result. With an
// empty path, pitheme.yaml is looked up in the working directory and may be
// absent.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		v.SetConfigName("pitheme")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}
