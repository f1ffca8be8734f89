package config

import "time"

// Config is the service configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Factors    FactorsConfig    `mapstructure:"factors"`
	Formatting FormattingConfig `mapstructure:"formatting"`
	Validation ValidationConfig `mapstructure:"validation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port          string `mapstructure:"port"`
	ReadTimeout   int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout  int    `mapstructure:"write_timeout"` // milliseconds
	MaxBodySize   int    `mapstructure:"max_body_size"` // bytes
	EnableMetrics bool   `mapstructure:"enable_metrics"`
}

// FactorsConfig points at an optional directory of table overrides. The
// embedded tables are always loaded first.
type FactorsConfig struct {
	Dir string `mapstructure:"dir"`
}

type FormattingConfig struct {
	Locale   string `mapstructure:"locale"`
	Currency string `mapstructure:"currency"`
}

type ValidationConfig struct {
	Strict bool `mapstructure:"strict"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
