package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

// Config holds the full application configuration.
type Config struct {
	Model ModelConfig `yaml:"model"`
	HTTP  HTTPConfig  `yaml:"http"`
	Log   LogConfig   `yaml:"log"`
	UI    UIConfig    `yaml:"ui"`
}

// ModelConfig points at the exported classifier and its feature schema.
// Type is optional; when set the artifact must declare the same type.
type ModelConfig struct {
	Type       string `yaml:"type"`
	Path       string `yaml:"path"`
	SchemaPath string `yaml:"schema_path"`
}

// HTTPConfig configures the form server.
type HTTPConfig struct {
	Port           int           `yaml:"port"`
	Timeout        time.Duration `yaml:"timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
}

// LogConfig configures logging. An empty File logs to stderr.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// UIConfig configures page rendering.
type UIConfig struct {
	Locale string `yaml:"locale"`
	Title  string `yaml:"title"`
}

func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Path:       "models/rf_model.json",
			SchemaPath: "models/feature_columns.json",
		},
		HTTP: HTTPConfig{
			Port:           8080,
			Timeout:        30 * time.Second,
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   64 << 10,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		UI: UIConfig{
			Locale: "en",
			Title:  "Churn Prediction",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	payload, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrapf(err, "config: read %s", path)
	}
	if err == nil {
		if err := yaml.UnmarshalStrict(payload, cfg); err != nil {
			return nil, eris.Wrapf(err, "config: decode %s", path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Model.Path == "" || c.Model.SchemaPath == "" {
		return eris.New("config: model.path and model.schema_path are required")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return eris.Errorf("config: http.port %d out of range", c.HTTP.Port)
	}
	if c.HTTP.Timeout <= 0 {
		return eris.New("config: http.timeout must be positive")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return eris.New("config: http.max_body_bytes must be positive")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return eris.Errorf("config: log.format %q must be json or console", c.Log.Format)
	}
	if _, err := language.Parse(c.UI.Locale); err != nil {
		return eris.Wrapf(err, "config: parse ui.locale %q", c.UI.Locale)
	}
	return nil
}

// Language returns the parsed UI locale, English when unset or invalid.
func (c UIConfig) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}
