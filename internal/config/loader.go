package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Load reads config.yaml (./configs or .), then config.<APP_ENVIRONMENT>.yaml,
// then environment variables such as SERVER_PORT or LOGGING_LEVEL.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName("config." + env)
	_ = v.MergeInConfig()

	return build(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	bindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// bindEnv makes every known key overridable from the environment even when
// the config file does not mention it. PORT is honoured for container hosts.
func bindEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"app.name", "app.version", "app.environment",
		"server.port", "server.read_timeout", "server.write_timeout", "server.max_body_size", "server.enable_metrics",
		"factors.dir",
		"formatting.locale", "formatting.currency",
		"validation.strict",
		"logging.level", "logging.format",
	} {
		_ = v.BindEnv(key)
	}
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	v.SetDefault("server.enable_metrics", true)
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "injury-estimator"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 5000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 5000
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = 64 * 1024
	}
	if cfg.Formatting.Locale == "" {
		cfg.Formatting.Locale = "en-US"
	}
	if cfg.Formatting.Currency == "" {
		cfg.Formatting.Currency = "USD"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	if _, err := language.Parse(cfg.Formatting.Locale); err != nil {
		return fmt.Errorf("formatting.locale %q: %w", cfg.Formatting.Locale, err)
	}
	if _, err := currency.ParseISO(cfg.Formatting.Currency); err != nil {
		return fmt.Errorf("formatting.currency %q: %w", cfg.Formatting.Currency, err)
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}
	if cfg.Factors.Dir != "" {
		if st, err := os.Stat(cfg.Factors.Dir); err != nil || !st.IsDir() {
			return fmt.Errorf("factors.dir %q is not a directory", cfg.Factors.Dir)
		}
	}
	return nil
}
