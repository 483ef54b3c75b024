package config

import (
	"fmt"

	"github.com/leapstack-labs/gridlint/internal/cli/output"
	"github.com/leapstack-labs/gridlint/pkg/core"
)

// Validate checks the configuration for values that would fail later.
func (c *Config) Validate() error {
	if !output.Mode(c.OutputFormat).Valid() {
		return fmt.Errorf("invalid output %q (want one of %v)", c.OutputFormat, output.Modes)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format %q (want text or json)", c.LogFormat)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port out of range: %d", c.Serve.Port)
	}
	if c.Engine.MinHeaderCols < 0 || c.Engine.HeaderScanRows < 0 {
		return fmt.Errorf("engine limits must not be negative")
	}
	for ref, sev := range c.Rules.Severity {
		if _, ok := core.ParseSeverity(sev); !ok {
			return fmt.Errorf("invalid severity %q for rule %s", sev, ref)
		}
	}
	for i, ft := range c.FieldTypes {
		if ft.Type == "" {
			return fmt.Errorf("field_types[%d]: type is required", i)
		}
	}
	return nil
}
