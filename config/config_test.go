package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "models/rf_model.json", cfg.Model.Path)
	assert.Equal(t, "models/feature_columns.json", cfg.Model.SchemaPath)
	assert.Empty(t, cfg.Model.Type)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, int64(65536), cfg.HTTP.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "en", cfg.UI.Locale)
	assert.Equal(t, "Churn Prediction", cfg.UI.Title)
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
model:
  type: random_forest
  path: /srv/models/rf_model.json
http:
  port: 9090
  timeout: 5s
  allowed_origins: ["https://example.com"]
log:
  level: debug
  format: console
ui:
  locale: de
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "random_forest", cfg.Model.Type)
	assert.Equal(t, "/srv/models/rf_model.json", cfg.Model.Path)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, []string{"https://example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, language.German, cfg.UI.Language())
	// Defaults still apply for unset values
	assert.Equal(t, "models/feature_columns.json", cfg.Model.SchemaPath)
	assert.Equal(t, "Churn Prediction", cfg.UI.Title)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "modle:\n  path: x\n",
		"bad port":     "http:\n  port: 70000\n",
		"bad timeout":  "http:\n  timeout: -1s\n",
		"bad level":    "log:\n  level: loud\n",
		"bad format":   "log:\n  format: xml\n",
		"bad locale":   "ui:\n  locale: \"!!\"\n",
		"empty schema": "model:\n  schema_path: \"\"\n",
		"not yaml":     "model: [",
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := Load(path)
		assert.Error(t, err, name)
	}
}

func TestNewLoggerWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "churn.log")
	logger, err := NewLogger(LogConfig{Level: "info", Format: "json", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Info("model loaded")
	logger.Debug("hidden below level")
	require.NoError(t, logger.Sync())

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"msg":"model loaded"`)
	assert.NotContains(t, string(payload), "hidden below level")
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	_, err := NewLogger(LogConfig{Level: "verbose"})
	assert.Error(t, err)
}
