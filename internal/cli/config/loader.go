package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	intconfig "github.com/leapstack-labs/gridlint/internal/config"
)

// EnvPrefix prefixes environment variables. A double underscore nests:
// GRIDLINT_ENGINE__MIN_HEADER_COLS sets engine.min_header_cols.
const EnvPrefix = "GRIDLINT_"

// loggerKey is used to store logger in context.
type loggerKey struct{}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// flagKeys maps flag names to config keys. Flags not listed here are
// command options, not configuration.
var flagKeys = map[string]string{
	"output":        "output",
	"verbose":       "verbose",
	"log-level":     "log_level",
	"log-format":    "log_format",
	"state":         "state_path",
	"workers":       "workers",
	"report":        "report",
	"extensions":    "extensions",
	"port":          "serve.port",
	"max-upload-mb": "serve.max_upload_mb",
	"driver":        "source.driver",
	"dsn":           "source.dsn",
	"query":         "source.query",
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

func defaults() map[string]any {
	d := Default()
	fieldTypes := make([]any, len(d.FieldTypes))
	for i, ft := range d.FieldTypes {
		fieldTypes[i] = map[string]any{"type": ft.Type, "keywords": ft.Keywords}
	}
	return map[string]any{
		"output":                  d.OutputFormat,
		"verbose":                 false,
		"log_level":               d.LogLevel,
		"log_format":              d.LogFormat,
		"workers":                 0,
		"extensions":              d.Extensions,
		"temp_prefix":             d.TempPrefix,
		"engine.min_header_cols":  d.Engine.MinHeaderCols,
		"engine.header_scan_rows": d.Engine.HeaderScanRows,
		"engine.skip_first_col":   d.Engine.SkipFirstCol,
		"engine.skip_empty_cols":  d.Engine.SkipEmptyCols,
		"field_types":             fieldTypes,
		"serve.port":              d.Serve.Port,
		"serve.max_upload_mb":     d.Serve.MaxUploadMB,
	}
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Without an explicit file, gridlint.yaml is searched upward from the
// working directory.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")
	configFileUsed = ""

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfgFile = intconfig.SearchConfigFile(cwd, intconfig.DefaultSearchDepth)
		}
	} else if _, err := os.Stat(cfgFile); err != nil {
		return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
	}
	configFileUsed = cfgFile
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ConfigDir = "."
	if configFileUsed != "" {
		if abs, err := filepath.Abs(configFileUsed); err == nil {
			cfg.ConfigDir = filepath.Dir(abs)
		}
	}
	if cfg.StatePath != "" && !filepath.IsAbs(cfg.StatePath) && (flags == nil || !flags.Changed("state")) {
		cfg.StatePath = filepath.Join(cfg.ConfigDir, cfg.StatePath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	currentConfig = &cfg
	return &cfg, nil
}

// envKey turns GRIDLINT_ENGINE__SKIP_FIRST_COL into engine.skip_first_col.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the configuration loaded last, or nil.
func GetCurrentConfig() *Config {
	return currentConfig
}

// WithLogger stores the logger in ctx.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.New(slog.DiscardHandler)
}
