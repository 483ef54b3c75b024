package core

// EngineConfig holds the table-shape settings used by the validation engine.
type EngineConfig struct {
	// MinHeaderCols is the minimum number of non-empty cells a row needs to be
	// picked as the header row.
	MinHeaderCols int `koanf:"min_header_cols" yaml:"min_header_cols"`

	// HeaderScanRows limits how many leading rows are considered for the header.
	HeaderScanRows int `koanf:"header_scan_rows" yaml:"header_scan_rows"`

	// SkipFirstCol excludes the first column (usually a sequence number) from cell checks.
	SkipFirstCol bool `koanf:"skip_first_col" yaml:"skip_first_col"`

	// SkipEmptyCols excludes columns with no data at all from cell checks.
	SkipEmptyCols bool `koanf:"skip_empty_cols" yaml:"skip_empty_cols"`
}

// RulesConfig holds rule selection and per-rule options.
type RulesConfig struct {
	// Enabled lists rule IDs or names to run. Empty means every built-in rule.
	Enabled []string `koanf:"enabled" yaml:"enabled,omitempty"`

	// Disabled contains rule IDs or names to skip.
	Disabled []string `koanf:"disabled" yaml:"disabled,omitempty"`

	// Severity maps rule ID or name to severity override (error, warning, info, hint).
	Severity map[string]string `koanf:"severity" yaml:"severity,omitempty"`

	// Options contains rule-specific options keyed by rule ID or name.
	Options map[string]RuleOptions `koanf:"options" yaml:"options,omitempty"`
}

// RuleOptions holds rule-specific configuration options.
type RuleOptions map[string]any

// FieldTypeConfig maps a semantic field type to the header keywords that identify it.
type FieldTypeConfig struct {
	Type     string   `koanf:"type" yaml:"type"`
	Keywords []string `koanf:"keywords" yaml:"keywords"`
}

// SensitiveConfig configures the banned-word list used by content scanning.
type SensitiveConfig struct {
	Words    []string `koanf:"words" yaml:"words,omitempty"`
	WordFile string   `koanf:"word_file" yaml:"word_file,omitempty"`
}
