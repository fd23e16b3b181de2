// Package config loads application configuration from a YAML file,
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// envPrefix namespaces the environment variables, e.g. REVISE_DB_PATH.
const envPrefix = "REVISE_"

// Config holds all application settings.
type Config struct {
	Addr        string `koanf:"addr" validate:"required"`
	DBPath      string `koanf:"db_path" validate:"required"`
	ContentPath string `koanf:"content_path" validate:"required"`
	CacheDir    string `koanf:"cache_dir" validate:"required"`
	LogLevel    string `koanf:"log_level" validate:"required,oneof=debug info warn error"`
	LogJSON     bool   `koanf:"log_json"`
	DailyGoal   int    `koanf:"daily_goal" validate:"gte=0"`
	SyncOnStart bool   `koanf:"sync_on_start"`
}

// Load builds the configuration: the YAML file (when given), then
// environment variables, then flags, later sources overriding earlier ones.
// The returned config is validated.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// Flag names use dashes; koanf keys use underscores.
	if err := k.Load(posflag.ProviderWithValue(flags, ".", k,
		func(key, value string) (string, interface{}) {
			return strings.ReplaceAll(key, "-", "_"), value
		}), nil); err != nil {
		return nil, fmt.Errorf("failed to read flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
