package lint

import "github.com/leapstack-labs/gridlint/pkg/core"

// =============================================================================
// Rule Definitions
// =============================================================================

// CellCheckFunc is the check function of a cell rule.
type CellCheckFunc func(cell Cell, opts map[string]any) (bool, string)

// HeaderCheckFunc is the check function applied to header cells.
type HeaderCheckFunc func(text string, opts map[string]any) (bool, string)

// TableCheckFunc is the check function of a table rule.
type TableCheckFunc func(t *Table, opts map[string]any) []Diagnostic

// ValidateFunc validates rule options when the rule is loaded.
type ValidateFunc func(opts map[string]any) error

// Meta holds rule metadata shared by CellRuleDef and TableRuleDef.
type Meta struct {
	ID          string
	Name        string
	Group       string
	Description string
	Severity    core.Severity
	ConfigKeys  []string

	Rationale   string
	BadExample  string
	GoodExample string
}

// CellRuleDef defines a cell rule by its check functions.
type CellRuleDef struct {
	Meta
	Check       CellCheckFunc
	CheckHeader HeaderCheckFunc // optional
	Validate    ValidateFunc    // optional
}

// TableRuleDef defines a table rule by its check function.
type TableRuleDef struct {
	Meta
	Check    TableCheckFunc
	Validate ValidateFunc // optional
}

type metaRule struct{ m Meta }

func (r metaRule) ID() string                     { return r.m.ID }
func (r metaRule) Name() string                   { return r.m.Name }
func (r metaRule) Group() string                  { return r.m.Group }
func (r metaRule) Description() string            { return r.m.Description }
func (r metaRule) DefaultSeverity() core.Severity { return r.m.Severity }
func (r metaRule) ConfigKeys() []string           { return r.m.ConfigKeys }

type cellRule struct {
	metaRule
	def CellRuleDef
}

func (r *cellRule) Kind() core.RuleKind { return core.RuleKindCell }

func (r *cellRule) CheckCell(cell Cell, opts map[string]any) (bool, string) {
	if r.def.Check == nil {
		return false, ""
	}
	return r.def.Check(cell, opts)
}

func (r *cellRule) ValidateOptions(opts map[string]any) error {
	if r.def.Validate == nil {
		return nil
	}
	return r.def.Validate(opts)
}

type headerCellRule struct {
	*cellRule
}

func (r *headerCellRule) CheckHeader(text string, opts map[string]any) (bool, string) {
	return r.def.CheckHeader(text, opts)
}

type tableRule struct {
	metaRule
	def TableRuleDef
}

func (r *tableRule) Kind() core.RuleKind { return core.RuleKindTable }

func (r *tableRule) CheckTable(t *Table, opts map[string]any) []Diagnostic {
	if r.def.Check == nil {
		return nil
	}
	return r.def.Check(t, opts)
}

func (r *tableRule) ValidateOptions(opts map[string]any) error {
	if r.def.Validate == nil {
		return nil
	}
	return r.def.Validate(opts)
}

// WrapCell turns a CellRuleDef into a CellRule. When CheckHeader is set the
// result also implements HeaderChecker.
func WrapCell(def CellRuleDef) CellRule {
	r := &cellRule{metaRule: metaRule{m: def.Meta}, def: def}
	if def.CheckHeader != nil {
		return &headerCellRule{cellRule: r}
	}
	return r
}

// WrapTable turns a TableRuleDef into a TableRule.
func WrapTable(def TableRuleDef) TableRule {
	return &tableRule{metaRule: metaRule{m: def.Meta}, def: def}
}
