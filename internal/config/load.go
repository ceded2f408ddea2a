package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix namespaces every environment variable read by Load, so
// TOPIK_SERVER_PORT sets server.port and so on.
const envPrefix = "TOPIK"

// Load configuration from environment variables and optionally a config
// file (config.yaml in the working directory). Environment variables take
// precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment and defaults
		// cover everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks a Config against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// setDefaults registers the defaults viper falls back to when neither the
// config file nor the environment provides a value.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.path", "topik.db")
	v.SetDefault("content.dir", "data")
	v.SetDefault("content.levels", []int{1, 2})
	v.SetDefault("telemetry.enabled", false)
	// Empty defaults register the keys so AutomaticEnv can bind them.
	v.SetDefault("telemetry.url", "")
	v.SetDefault("telemetry.fallback_url", "")
	v.SetDefault("telemetry.batch_size", 20)
	v.SetDefault("telemetry.flush_interval_seconds", 300)
}
