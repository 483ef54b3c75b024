// Package config loads gridlint CLI configuration from defaults,
// gridlint.yaml, GRIDLINT_ environment variables and flags.
//
// The engine settings (rules, field types, sensitive words) are the shared
// types from internal/config; this package adds the CLI-only fields.
package config

import (
	intconfig "github.com/leapstack-labs/gridlint/internal/config"
	"github.com/leapstack-labs/gridlint/pkg/core"
)

// Defaults for CLI-only settings.
const (
	DefaultOutput     = "auto"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
	DefaultStateFile  = ".gridlint/state.db"
	DefaultServePort  = 8080
	DefaultMaxUpload  = 32
	DefaultTempPrefix = "~$"
)

// DefaultExtensions are the file extensions check reads.
var DefaultExtensions = []string{".csv", ".tsv"}

// ServeConfig holds configuration for the API server.
type ServeConfig struct {
	Port        int   `koanf:"port"`
	MaxUploadMB int64 `koanf:"max_upload_mb"`
}

// SourceConfig selects a SQL query as the table to check.
type SourceConfig struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
	Query  string `koanf:"query"`
}

// Config holds all CLI configuration options.
type Config struct {
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
	LogLevel     string `koanf:"log_level"`
	LogFormat    string `koanf:"log_format"`

	// StatePath enables run history when set.
	StatePath string `koanf:"state_path"`
	Workers   int    `koanf:"workers"`
	// Report is a report file path, or "auto" for the dated default name.
	Report     string   `koanf:"report"`
	Extensions []string `koanf:"extensions"`
	TempPrefix string   `koanf:"temp_prefix"`

	Engine     core.EngineConfig      `koanf:"engine"`
	Rules      core.RulesConfig       `koanf:"rules"`
	FieldTypes []core.FieldTypeConfig `koanf:"field_types"`
	Sensitive  core.SensitiveConfig   `koanf:"sensitive"`

	Serve  ServeConfig  `koanf:"serve"`
	Source SourceConfig `koanf:"source"`

	// ConfigDir is the directory relative paths in the config file are
	// resolved against.
	ConfigDir string `koanf:"-"`
}

// Settings returns the engine settings.
func (c *Config) Settings() intconfig.Settings {
	return intconfig.Settings{
		Engine:     c.Engine,
		Rules:      c.Rules,
		FieldTypes: c.FieldTypes,
		Sensitive:  c.Sensitive,
	}
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	s := intconfig.Default()
	return &Config{
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Extensions:   append([]string(nil), DefaultExtensions...),
		TempPrefix:   DefaultTempPrefix,
		Engine:       s.Engine,
		FieldTypes:   s.FieldTypes,
		Serve:        ServeConfig{Port: DefaultServePort, MaxUploadMB: DefaultMaxUpload},
		ConfigDir:    ".",
	}
}
