package lint

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/grid"
)

// Analyzer runs the enabled rules of a registry against grids.
type Analyzer struct {
	config  *Config
	logger  *slog.Logger
	scanner ContentScanner

	rules       []Rule
	cellRules   []CellRule
	headerRules []CellRule
	tableRules  []TableRule
	options     map[string]map[string]any
	severity    map[string]core.Severity
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the operational logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithScanner injects the content scanner used by word-scanning rules.
func WithScanner(s ContentScanner) Option {
	return func(a *Analyzer) { a.scanner = s }
}

// Result is the outcome of analyzing one grid.
type Result struct {
	HeaderRow  int              `json:"header_row"` // 0-based
	Headers    []string         `json:"headers"`
	Skipped    []int            `json:"skipped_columns,omitempty"` // 0-based
	Violations []core.Violation `json:"violations"`
}

// NewAnalyzer selects and loads rules from reg according to cfg.
// Unknown rule references and rules whose options fail validation are logged
// and left out; they never prevent the remaining rules from running.
func NewAnalyzer(reg *Registry, cfg *Config, opts ...Option) *Analyzer {
	if cfg == nil {
		cfg = NewConfig()
	}
	a := &Analyzer{
		config:   cfg,
		logger:   slog.New(slog.DiscardHandler),
		options:  make(map[string]map[string]any),
		severity: make(map[string]core.Severity),
	}
	for _, opt := range opts {
		opt(a)
	}
	if reg == nil {
		return a
	}

	for _, rule := range a.selectRules(reg) {
		if cfg.IsDisabled(rule) {
			continue
		}

		ruleOpts := cfg.GetRuleOptions(rule)
		if v, ok := rule.(OptionsValidator); ok {
			if err := v.ValidateOptions(ruleOpts); err != nil {
				a.logger.Warn("rule failed to load; skipping", "rule", rule.ID(), "name", rule.Name(), "error", err)
				continue
			}
		}

		a.options[rule.ID()] = ruleOpts
		a.severity[rule.ID()] = cfg.GetSeverity(rule, rule.DefaultSeverity())
		a.rules = append(a.rules, rule)

		switch r := rule.(type) {
		case CellRule:
			a.cellRules = append(a.cellRules, r)
			if _, ok := r.(HeaderChecker); ok {
				a.headerRules = append(a.headerRules, r)
			}
		case TableRule:
			a.tableRules = append(a.tableRules, r)
		}
	}

	return a
}

// selectRules returns the enabled subset of reg in dispatch order.
func (a *Analyzer) selectRules(reg *Registry) []Rule {
	if len(a.config.Enabled) == 0 {
		return reg.All()
	}

	wanted := make(map[string]bool, len(a.config.Enabled))
	for _, ref := range a.config.Enabled {
		rule, ok := reg.Lookup(ref)
		if !ok {
			a.logger.Warn("rule not found; skipping", "rule", ref)
			continue
		}
		wanted[rule.ID()] = true
	}

	var out []Rule
	for _, rule := range reg.All() {
		if wanted[rule.ID()] {
			out = append(out, rule)
		}
	}
	return out
}

// Rules returns the loaded rules in dispatch order.
func (a *Analyzer) Rules() []Rule {
	out := make([]Rule, len(a.rules))
	copy(out, a.rules)
	return out
}

// Analyze validates one grid. Violations are ordered by discovery: header
// cells, then data cells row by row, then table rules in registry order.
func (a *Analyzer) Analyze(g grid.Accessor) *Result {
	if g == nil || g.Rows() == 0 {
		return &Result{}
	}

	headerRow := grid.ResolveHeaderN(g, a.config.MinHeaderCols, a.config.HeaderScanRows)
	skipped := grid.SkippedColumns(g, headerRow, a.config.SkipFirstCol, a.config.SkipEmptyCols)

	table := NewTable(g, headerRow, skipped)
	table.Scanner = a.scanner
	table.Logger = a.logger

	col := NewCollector()
	a.checkHeader(table, col)
	a.checkCells(table, col)
	for _, rule := range a.tableRules {
		diags := a.runTable(rule, table)
		col.AddDiagnostics(rule.ID(), a.severity[rule.ID()], diags)
	}

	res := &Result{
		HeaderRow:  headerRow,
		Headers:    table.Headers.Headers(),
		Violations: col.Violations(),
	}
	for c := range skipped {
		res.Skipped = append(res.Skipped, c)
	}
	sort.Ints(res.Skipped)
	return res
}

func (a *Analyzer) checkHeader(t *Table, col *Collector) {
	if len(a.headerRules) == 0 {
		return
	}
	for c := 0; c < t.Cols(); c++ {
		if t.IsSkipped(c) {
			continue
		}
		text := t.Text(t.HeaderRow, c)
		for _, rule := range a.headerRules {
			if bad, msg := a.runHeader(rule, t.HeaderRow, c, text); bad {
				col.Add(rule.ID(), a.severity[rule.ID()], t.HeaderRow, c, msg)
			}
		}
	}
}

func (a *Analyzer) checkCells(t *Table, col *Collector) {
	if len(a.cellRules) == 0 {
		return
	}
	headers := t.Headers.Headers()
	fieldMap := grid.BuildFieldMap(headers, a.config.FieldTypes)

	for r := t.FirstDataRow(); r < t.Rows(); r++ {
		for c := 0; c < t.Cols(); c++ {
			if t.IsSkipped(c) {
				continue
			}
			cell := Cell{
				Row:       r,
				Col:       c,
				Text:      t.Text(r, c),
				Header:    headers[c],
				FieldType: fieldMap[c],
			}
			for _, rule := range a.cellRules {
				if bad, msg := a.runCell(rule, cell); bad {
					col.Add(rule.ID(), a.severity[rule.ID()], r, c, msg)
				}
			}
		}
	}
}

func (a *Analyzer) runCell(rule CellRule, cell Cell) (bad bool, msg string) {
	defer func() {
		if rec := recover(); rec != nil {
			a.logger.Warn("rule panicked; cell skipped",
				"rule", rule.ID(), "row", cell.Row+1, "col", cell.Col+1, "error", fmt.Sprint(rec))
			bad, msg = false, ""
		}
	}()
	return rule.CheckCell(cell, a.options[rule.ID()])
}

func (a *Analyzer) runHeader(rule CellRule, row, c int, text string) (bad bool, msg string) {
	defer func() {
		if rec := recover(); rec != nil {
			a.logger.Warn("rule panicked; header cell skipped",
				"rule", rule.ID(), "row", row+1, "col", c+1, "error", fmt.Sprint(rec))
			bad, msg = false, ""
		}
	}()
	return rule.(HeaderChecker).CheckHeader(text, a.options[rule.ID()])
}

func (a *Analyzer) runTable(rule TableRule, t *Table) (diags []Diagnostic) {
	defer func() {
		if rec := recover(); rec != nil {
			a.logger.Warn("rule panicked; table rule skipped", "rule", rule.ID(), "error", fmt.Sprint(rec))
			diags = nil
		}
	}()
	return rule.CheckTable(t, a.options[rule.ID()])
}
