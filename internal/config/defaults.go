package config

import (
	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/grid"
)

// Config file names, searched in this order.
const (
	ConfigFileName    = "gridlint.yaml"
	ConfigFileNameAlt = "gridlint.yml"
)

// DefaultSearchDepth is how many parent directories are searched for a
// config file.
const DefaultSearchDepth = 10

// DefaultEngine returns the default table-shape settings.
func DefaultEngine() core.EngineConfig {
	return core.EngineConfig{
		MinHeaderCols:  grid.DefaultMinHeaderCols,
		HeaderScanRows: grid.DefaultHeaderScanRows,
		SkipFirstCol:   true,
		SkipEmptyCols:  true,
	}
}

// DefaultFieldTypes returns the built-in header keywords per field type.
func DefaultFieldTypes() []core.FieldTypeConfig {
	builtin := grid.DefaultFieldTypes()
	out := make([]core.FieldTypeConfig, len(builtin))
	for i, ft := range builtin {
		out[i] = core.FieldTypeConfig{Type: ft.Name, Keywords: append([]string(nil), ft.Keywords...)}
	}
	return out
}

// Default returns settings with every rule enabled and no rule options.
func Default() Settings {
	return Settings{
		Engine:     DefaultEngine(),
		FieldTypes: DefaultFieldTypes(),
	}
}
