package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Database configuration
	Database DatabaseConfig `mapstructure:"database"`

	// Weights configuration
	Weights WeightsConfig `mapstructure:"weights"`

	// Search configuration
	Search SearchConfig `mapstructure:"search"`

	// Telemetry configuration
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // sqlite, neo4j, memory
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// WeightsConfig holds the parameters of the weighting model.
type WeightsConfig struct {
	// Alpha is the asymptote split point of the holding curve.
	Alpha float64 `mapstructure:"alpha"`
	// Rate mixes an aspect's own weight against its path context.
	Rate float64 `mapstructure:"rate"`
}

// SearchConfig holds path enumeration limits.
type SearchConfig struct {
	MaxPaths      int `mapstructure:"max_paths"`
	MaxPathLength int `mapstructure:"max_path_length"`
}

// TelemetryConfig holds telemetry configuration
type TelemetryConfig struct {
	// Sink selects where error records are persisted: parquet or sqlite.
	Sink        string `mapstructure:"sink"`
	ParquetPath string `mapstructure:"parquet_path"`
	SQLitePath  string `mapstructure:"sqlite_path"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override with environment variables if present
	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.username", "")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.database", "")

	// Weight model defaults
	viper.SetDefault("weights.alpha", 0.7)
	viper.SetDefault("weights.rate", 0.7)

	// Search defaults (0 means unlimited)
	viper.SetDefault("search.max_paths", 0)
	viper.SetDefault("search.max_path_length", 0)

	// Telemetry defaults
	viper.SetDefault("telemetry.sink", "parquet")

	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetDefault("database.uri", fmt.Sprintf("%s/.aspecter/aspects.sqlite3", home))
		viper.SetDefault("telemetry.parquet_path", fmt.Sprintf("%s/.aspecter/telemetry", home))
		viper.SetDefault("telemetry.sqlite_path", fmt.Sprintf("%s/.aspecter/telemetry.sqlite3", home))
	} else {
		viper.SetDefault("database.uri", "./aspects.sqlite3")
	}
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	// Database credentials
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		config.Database.URI = uri
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		config.Database.Username = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		config.Database.Password = pass
	}

	// Generic database settings
	if dbDriver := os.Getenv("DB_DRIVER"); dbDriver != "" {
		config.Database.Driver = dbDriver
	}
	if dbURI := os.Getenv("DB_URI"); dbURI != "" {
		config.Database.URI = dbURI
	}

	// Server settings
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		viper.Set("server.port", port)
	}

	// Telemetry settings
	if sink := os.Getenv("TELEMETRY_SINK"); sink != "" {
		config.Telemetry.Sink = sink
	}
	if path := os.Getenv("TELEMETRY_PARQUET_PATH"); path != "" {
		config.Telemetry.ParquetPath = path
	}
	if path := os.Getenv("TELEMETRY_SQLITE_PATH"); path != "" {
		config.Telemetry.SQLitePath = path
	}
}
