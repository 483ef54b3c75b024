// Package lint provides the data-quality rule framework: rule contracts, the
// static rule registry, configuration, and the Analyzer that dispatches rules
// over a grid.
//
// # Rule Kinds
//
// Two kinds of rules exist:
//
//  1. Cell rules (CellRule): a function of one cell's text and its column's
//     field type. The Analyzer calls every enabled cell rule once per data cell
//     of every non-skipped column. A cell rule that also implements
//     HeaderChecker is run against the header row as well.
//  2. Table rules (TableRule): a function of the whole table. They resolve
//     their own columns from configuration and return positioned diagnostics.
//
// # Registration
//
// There is no implicit registration. The set of rules is closed and built
// explicitly, which verifies IDs and names are unique:
//
//	reg, err := lint.NewRegistry(rules.Builtin()...)
//
// # Configuration
//
// Config selects rules by ID or name and carries per-rule options:
//
//	cfg := lint.NewConfig()
//	cfg.Disable("row_duplicate")
//	cfg.SetSeverity("phone", core.SeverityWarning)
//	cfg.SetRuleOptions("range", map[string]any{"fields": map[string]any{"年龄": []any{0, 150}}})
//
// # Analysis
//
//	analyzer := lint.NewAnalyzer(reg, cfg, lint.WithLogger(logger), lint.WithScanner(words))
//	result := analyzer.Analyze(g)
//
// An Analyzer is immutable after construction and may validate many tables
// concurrently. A rule that panics is logged and skipped for that unit of
// work; the scan always completes.
package lint
