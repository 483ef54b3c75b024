package lint_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gridlint/internal/testutil"
	"github.com/leapstack-labs/gridlint/pkg/automaton"
	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/grid"
	"github.com/leapstack-labs/gridlint/pkg/lint"
	"github.com/leapstack-labs/gridlint/pkg/lint/rules"
)

func phoneGrid() *grid.Grid {
	return grid.New([][]string{
		{"序号", "姓名", "手机号"},
		{"1", "张三", "13800138000"},
		{"2", "李四", "138****8000"},
		{"3", "王五", "1380013800"},
		{"4", "赵六", "13900139000"},
	})
}

func TestAnalyzer_PhoneEndToEnd(t *testing.T) {
	a := lint.NewAnalyzer(rules.NewRegistry(), lint.NewConfig(), lint.WithLogger(testutil.NewTestLogger(t)))
	res := a.Analyze(phoneGrid())

	assert.Equal(t, 0, res.HeaderRow)
	assert.Equal(t, []int{0}, res.Skipped)
	require.Len(t, res.Violations, 1)

	v := res.Violations[0]
	assert.Equal(t, 4, v.Row)
	assert.Equal(t, 3, v.Col)
	assert.Equal(t, "FT02", v.RuleID)
	assert.Equal(t, core.SeverityError, v.Severity)
	assert.Equal(t, "手机号：长度需为11位（当前10位）", v.Message)
}

func TestAnalyzer_EmptyGrid(t *testing.T) {
	a := lint.NewAnalyzer(rules.NewRegistry(), nil)
	res := a.Analyze(grid.New(nil))
	assert.Empty(t, res.Violations)
}

func TestAnalyzer_HeaderBelowTitle(t *testing.T) {
	g := grid.New([][]string{
		{"2024年客户名单"},
		{"序号", "姓名", "邮编"},
		{"1", "张三", "10008"},
	})
	a := lint.NewAnalyzer(rules.NewRegistry(), lint.NewConfig().Enable("postcode"))
	res := a.Analyze(g)

	assert.Equal(t, 1, res.HeaderRow)
	assert.Equal(t, []string{"序号", "姓名", "邮编"}, res.Headers)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, 3, res.Violations[0].Row)
	assert.Equal(t, 3, res.Violations[0].Col)
}

func TestAnalyzer_DiscoveryOrder(t *testing.T) {
	g := grid.New([][]string{
		{"序号", "null", "手机号", "手机号"},
		{"1", "", "1", "x"},
		{"1", "", "1", "x"},
	})
	cfg := lint.NewConfig().Enable("null", "header_duplicate", "row_duplicate")
	cfg.SkipEmptyCols = false
	res := lint.NewAnalyzer(rules.NewRegistry(), cfg).Analyze(g)

	var got []string
	for _, v := range res.Violations {
		got = append(got, v.RuleID)
	}
	// header cell, data cells row by row, then table rules in registry order
	assert.Equal(t, []string{"NL01", "NL01", "NL01", "DU01", "DU02"}, got)
	assert.Equal(t, "表头特殊字符：null", res.Violations[0].Message)
	assert.Equal(t, 1, res.Violations[0].Row)
}

func TestAnalyzer_SeverityAndDisable(t *testing.T) {
	cfg := lint.NewConfig()
	cfg.SetSeverity("phone", core.SeverityWarning)

	res := lint.NewAnalyzer(rules.NewRegistry(), cfg).Analyze(phoneGrid())
	require.Len(t, res.Violations, 1)
	assert.Equal(t, core.SeverityWarning, res.Violations[0].Severity)

	cfg.Disable("FT02")
	res = lint.NewAnalyzer(rules.NewRegistry(), cfg).Analyze(phoneGrid())
	assert.Empty(t, res.Violations)
}

func TestAnalyzer_UnknownRuleIsLogged(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	cfg := lint.NewConfig().Enable("phone", "no_such_rule")

	a := lint.NewAnalyzer(rules.NewRegistry(), cfg, lint.WithLogger(logger))
	require.Len(t, a.Rules(), 1)

	warns := logs.Find(slog.LevelWarn, "rule not found")
	require.Len(t, warns, 1)
	assert.Equal(t, "no_such_rule", warns[0].Attrs["rule"])

	res := a.Analyze(phoneGrid())
	assert.Len(t, res.Violations, 1)
}

func TestAnalyzer_InvalidOptionsSkipRule(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	cfg := lint.NewConfig().Enable("range", "phone")
	cfg.SetRuleOptions("range", map[string]any{"fields": map[string]any{"年龄": []any{1}}})

	a := lint.NewAnalyzer(rules.NewRegistry(), cfg, lint.WithLogger(logger))
	require.Len(t, a.Rules(), 1)
	assert.Equal(t, "FT02", a.Rules()[0].ID())
	assert.Len(t, logs.Find(slog.LevelWarn, "failed to load"), 1)
}

func TestAnalyzer_TableRuleOptions(t *testing.T) {
	g := grid.New([][]string{
		{"序号", "姓名", "年龄"},
		{"1", "张三", "200"},
		{"2", "李四", "30"},
	})
	cfg := lint.NewConfig().Enable("VL01")
	cfg.SetRuleOptions("VL01", map[string]any{"fields": map[string]any{"年龄": []any{0, 150}}})

	res := lint.NewAnalyzer(rules.NewRegistry(), cfg).Analyze(g)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, 2, res.Violations[0].Row)
	assert.Equal(t, 3, res.Violations[0].Col)
}

func TestAnalyzer_Scanner(t *testing.T) {
	g := grid.New([][]string{
		{"序号", "姓名", "备注"},
		{"1", "张三", "无"},
		{"2", "李四", "涉及赌博"},
	})
	cfg := lint.NewConfig().Enable("sensitive_word")

	res := lint.NewAnalyzer(rules.NewRegistry(), cfg).Analyze(g)
	assert.Empty(t, res.Violations, "no scanner injected")

	scanner := automaton.Build([]string{"赌博"})
	res = lint.NewAnalyzer(rules.NewRegistry(), cfg, lint.WithScanner(scanner)).Analyze(g)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, 3, res.Violations[0].Row)
	assert.Equal(t, 3, res.Violations[0].Col)
}

var panicky = lint.CellRuleDef{
	Meta: lint.Meta{ID: "XX01", Name: "panicky", Group: "test", Description: "panics on boom", Severity: core.SeverityError},
	Check: func(cell lint.Cell, _ map[string]any) (bool, string) {
		if cell.Text == "boom" {
			panic("boom")
		}
		if cell.Text == "bad" {
			return true, "bad value"
		}
		return false, ""
	},
}

var panickyTable = lint.TableRuleDef{
	Meta: lint.Meta{ID: "XX02", Name: "panicky_table", Group: "test", Description: "always panics", Severity: core.SeverityError},
	Check: func(*lint.Table, map[string]any) []lint.Diagnostic {
		var m map[string]int
		m["x"] = 1
		return nil
	},
}

func TestAnalyzer_PanicIsolation(t *testing.T) {
	reg := lint.MustRegistry(lint.WrapCell(panicky), lint.WrapTable(panickyTable), lint.WrapTable(tableMarker))
	logger, logs := testutil.NewCaptureLogger()

	g := grid.New([][]string{
		{"a", "b", "c"},
		{"boom", "bad", "ok"},
		{"bad", "boom", "ok"},
	})
	cfg := lint.NewConfig()
	cfg.SkipFirstCol = false

	res := lint.NewAnalyzer(reg, cfg, lint.WithLogger(logger)).Analyze(g)

	var ids []string
	for _, v := range res.Violations {
		ids = append(ids, v.RuleID)
	}
	assert.Equal(t, []string{"XX01", "XX01", "XX03"}, ids)
	assert.Len(t, logs.Find(slog.LevelWarn, "rule panicked"), 3)
}

var tableMarker = lint.TableRuleDef{
	Meta: lint.Meta{ID: "XX03", Name: "marker", Group: "test", Description: "reports one finding", Severity: core.SeverityInfo},
	Check: func(t *lint.Table, _ map[string]any) []lint.Diagnostic {
		return []lint.Diagnostic{{Row: t.HeaderRow, Col: 0, Message: "marker"}}
	},
}
