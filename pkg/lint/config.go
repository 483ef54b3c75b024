package lint

import (
	"fmt"

	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/grid"
)

// Config controls rule selection, severities, options, and table shape handling.
// Rule references are IDs or names, case-insensitive.
type Config struct {
	// Enabled restricts the run to these rules. Empty enables every rule.
	Enabled []string

	// DisabledRules contains rule references to skip.
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules.
	SeverityOverrides map[string]core.Severity

	// RuleOptions holds options per rule reference.
	RuleOptions map[string]map[string]any

	MinHeaderCols  int
	HeaderScanRows int
	SkipFirstCol   bool
	SkipEmptyCols  bool

	// FieldTypes classifies columns for cell rules.
	FieldTypes grid.FieldTypes
}

// NewConfig creates the default configuration: every rule enabled, header
// detection with three columns over ten rows, first and empty columns skipped.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
		RuleOptions:       make(map[string]map[string]any),
		MinHeaderCols:     grid.DefaultMinHeaderCols,
		HeaderScanRows:    grid.DefaultHeaderScanRows,
		SkipFirstCol:      true,
		SkipEmptyCols:     true,
		FieldTypes:        grid.DefaultFieldTypes(),
	}
}

// FromSettings builds a Config from the shared configuration types.
func FromSettings(engine core.EngineConfig, rules core.RulesConfig, fields []core.FieldTypeConfig) (*Config, error) {
	cfg := NewConfig()
	if engine.MinHeaderCols > 0 {
		cfg.MinHeaderCols = engine.MinHeaderCols
	}
	if engine.HeaderScanRows > 0 {
		cfg.HeaderScanRows = engine.HeaderScanRows
	}
	cfg.SkipFirstCol = engine.SkipFirstCol
	cfg.SkipEmptyCols = engine.SkipEmptyCols

	cfg.Enabled = append(cfg.Enabled, rules.Enabled...)
	for _, ref := range rules.Disabled {
		cfg.Disable(ref)
	}
	for ref, s := range rules.Severity {
		sev, ok := core.ParseSeverity(s)
		if !ok {
			return nil, fmt.Errorf("invalid severity %q for rule %s", s, ref)
		}
		cfg.SetSeverity(ref, sev)
	}
	for ref, opts := range rules.Options {
		cfg.SetRuleOptions(ref, opts)
	}

	if len(fields) > 0 {
		types := make(grid.FieldTypes, 0, len(fields))
		for _, f := range fields {
			if f.Type == "" {
				return nil, fmt.Errorf("field type entry without a type name")
			}
			types = append(types, grid.FieldType{Name: f.Type, Keywords: f.Keywords})
		}
		cfg.FieldTypes = types
	}

	return cfg, nil
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(r Rule) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[refKey(r.ID())] || c.DisabledRules[refKey(r.Name())]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(r Rule, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[refKey(r.ID())]; ok {
			return sev
		}
		if sev, ok := c.SeverityOverrides[refKey(r.Name())]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetRuleOptions returns the options of a rule. Options set by ID take
// precedence over options set by name.
func (c *Config) GetRuleOptions(r Rule) map[string]any {
	if c == nil {
		return nil
	}
	if opts, ok := c.RuleOptions[refKey(r.ID())]; ok {
		return opts
	}
	return c.RuleOptions[refKey(r.Name())]
}

// Enable restricts the run to the given rules.
func (c *Config) Enable(refs ...string) *Config {
	c.Enabled = append(c.Enabled, refs...)
	return c
}

// Disable disables a rule by ID or name.
func (c *Config) Disable(ref string) *Config {
	c.DisabledRules[refKey(ref)] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ref string, severity core.Severity) *Config {
	c.SeverityOverrides[refKey(ref)] = severity
	return c
}

// SetRuleOptions sets the options of a rule.
func (c *Config) SetRuleOptions(ref string, opts map[string]any) *Config {
	c.RuleOptions[refKey(ref)] = opts
	return c
}
