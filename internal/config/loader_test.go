package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: calc\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "calc", cfg.App.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "en-US", cfg.Formatting.Locale)
	assert.Equal(t, "USD", cfg.Formatting.Currency)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Server.EnableMetrics)
	assert.False(t, cfg.Validation.Strict)
}

func TestLoadFromFileEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"9000\"\nlogging:\n  level: info\n")
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("LOGGING_LEVEL", "debug")
	t.Setenv("VALIDATION_STRICT", "true")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Validation.Strict)
}

func TestLoadFromFileRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad currency", "formatting:\n  currency: DOLLARS\n"},
		{"bad level", "logging:\n  level: verbose\n"},
		{"missing factors dir", "factors:\n  dir: /definitely/not/here\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
