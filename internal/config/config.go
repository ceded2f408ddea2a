package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Content   ContentConfig   `mapstructure:"content" validate:"required"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Path is the SQLite database file. The file and its parent
	// directory are created on first open.
	Path string `mapstructure:"path" validate:"required"`
}

// ContentConfig locates the static vocabulary level files.
type ContentConfig struct {
	// Dir holds the topik<level>.json files.
	Dir string `mapstructure:"dir" validate:"required"`

	// Levels lists the vocabulary levels served by this install.
	Levels []int `mapstructure:"levels" validate:"required,min=1,dive,gt=0"`
}

// TelemetryConfig controls response-event delivery. Disabled by default;
// when enabled a collector URL is required.
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	URL         string `mapstructure:"url" validate:"required_if=Enabled true,omitempty,url"`
	FallbackURL string `mapstructure:"fallback_url" validate:"omitempty,url"`

	// BatchSize is the pending-event count that forces a flush.
	BatchSize int `mapstructure:"batch_size" validate:"omitempty,gt=0"`

	// FlushIntervalSeconds is the periodic flush cadence.
	FlushIntervalSeconds int `mapstructure:"flush_interval_seconds" validate:"omitempty,gt=0"`
}
