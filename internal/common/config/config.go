// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Comparison ComparisonConfig `mapstructure:"comparison"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// CatalogConfig selects and tunes the catalog source.
type CatalogConfig struct {
	Source       string `mapstructure:"source"` // "file" or "postgres"
	FilePath     string `mapstructure:"file_path"`
	CacheTTL     int    `mapstructure:"cache_ttl"`       // seconds, redis layer
	LocalTTL     int    `mapstructure:"local_cache_ttl"` // seconds, in-process layer
	RedisEnabled bool   `mapstructure:"redis_enabled"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ComparisonConfig holds the composite-score weights. The three weights
// conventionally sum to 1.0; this is not enforced.
type ComparisonConfig struct {
	Weights    WeightsConfig `mapstructure:"weights"`
	TravelMode string        `mapstructure:"travel_mode"`
}

type WeightsConfig struct {
	Price        float64 `mapstructure:"price"`
	Availability float64 `mapstructure:"availability"`
	Distance     float64 `mapstructure:"distance"`
}

// ServerConfig holds the optional metrics listener settings.
type ServerConfig struct {
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
