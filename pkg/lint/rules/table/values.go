package table

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/lint"
)

const (
	rangeName  = "range"
	lengthName = "length"
	enumName   = "enum"
)

// Range checks numeric columns against an inclusive [min, max] bound.
var Range = lint.TableRuleDef{
	Meta: lint.Meta{
		ID:          "VL01",
		Name:        rangeName,
		Group:       "value",
		Description: "Numeric values must fall within the configured inclusive range. Non-numeric cells are ignored.",
		Severity:    core.SeverityError,
		ConfigKeys:  []string{"fields"},
		BadExample:  "年龄: 200 (range 0~150)",
	},
	Check:    checkRange,
	Validate: validateRange,
}

// Length checks the character count of cells in configured columns.
var Length = lint.TableRuleDef{
	Meta: lint.Meta{
		ID:          "VL02",
		Name:        lengthName,
		Group:       "value",
		Description: "Cell text must have an allowed number of characters. Two values form a range, otherwise the values are a list.",
		Severity:    core.SeverityError,
		ConfigKeys:  []string{"fields"},
		Rationale:   "Numeric cells read from spreadsheets as floats have a trailing '.0' removed before counting.",
	},
	Check:    checkLength,
	Validate: validateLength,
}

// Enum checks that cells hold one of the allowed values.
var Enum = lint.TableRuleDef{
	Meta: lint.Meta{
		ID:          "VL03",
		Name:        enumName,
		Group:       "value",
		Description: "Cells must exactly equal one of the allowed values. Allowed values may be a list or a string separated by ',' or '，'.",
		Severity:    core.SeverityError,
		ConfigKeys:  []string{"fields"},
		BadExample:  "性别: 未知 (allowed 男,女)",
	},
	Check:    checkEnum,
	Validate: validateEnum,
}

// =============================================================================
// Range
// =============================================================================

type rangeOptions struct {
	Fields map[string][]float64 `mapstructure:"fields"`
}

func validateRange(opts map[string]any) error {
	var o rangeOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return err
	}
	for k, b := range o.Fields {
		if len(b) != 2 {
			return fmt.Errorf("range for %q needs [min, max]", k)
		}
		if b[0] > b[1] {
			return fmt.Errorf("range for %q has min greater than max", k)
		}
	}
	return nil
}

func checkRange(t *lint.Table, opts map[string]any) []lint.Diagnostic {
	var o rangeOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return nil
	}

	var diags []lint.Diagnostic
	for _, f := range resolveFields(t, rangeName, keys(o.Fields), matchFuzzy) {
		bounds := o.Fields[f.name]
		if len(bounds) != 2 {
			continue
		}
		lo, hi := bounds[0], bounds[1]
		for r := t.FirstDataRow(); r < t.Rows(); r++ {
			num, ok := parseNumber(t.Text(r, f.col))
			if !ok {
				continue
			}
			if num < lo || num > hi {
				diags = append(diags, lint.Diagnostic{
					Row: r,
					Col: f.col,
					Message: fmt.Sprintf("字段数值超出范围：%s（允许%s~%s），当前值=%s",
						f.name, formatNumber(lo), formatNumber(hi), formatNumber(num)),
				})
			}
		}
	}
	return diags
}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// =============================================================================
// Length
// =============================================================================

type lengthOptions struct {
	Fields map[string][]int `mapstructure:"fields"`
}

func validateLength(opts map[string]any) error {
	var o lengthOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return err
	}
	for k, allowed := range o.Fields {
		if len(allowed) == 0 {
			return fmt.Errorf("length for %q is empty", k)
		}
		for _, n := range allowed {
			if n < 0 {
				return fmt.Errorf("length for %q must not be negative", k)
			}
		}
		if len(allowed) == 2 && allowed[0] > allowed[1] {
			return fmt.Errorf("length range for %q has min greater than max", k)
		}
	}
	return nil
}

func checkLength(t *lint.Table, opts map[string]any) []lint.Diagnostic {
	var o lengthOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return nil
	}

	var diags []lint.Diagnostic
	for _, f := range resolveFields(t, lengthName, keys(o.Fields), matchFuzzy) {
		allowed := o.Fields[f.name]
		if len(allowed) == 0 {
			continue
		}
		for r := t.FirstDataRow(); r < t.Rows(); r++ {
			raw := t.Text(r, f.col)
			if raw == "" {
				continue
			}
			processed := StripFloatSuffix(raw)
			n := utf8.RuneCountInString(processed)
			if lengthAllowed(n, allowed) {
				continue
			}
			diags = append(diags, lint.Diagnostic{
				Row: r,
				Col: f.col,
				Message: fmt.Sprintf("字段位数不符合要求：%s（要求%s，原始值='%s'，处理后值='%s'，实际%d位）",
					f.name, describeLengths(allowed), raw, processed, n),
			})
		}
	}
	return diags
}

// StripFloatSuffix removes the ".0" a spreadsheet reader appends to whole
// numbers. Non-numeric text is returned unchanged.
func StripFloatSuffix(s string) string {
	if !strings.HasSuffix(s, ".0") {
		return s
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return s
	}
	return strings.TrimSuffix(s, ".0")
}

func lengthAllowed(n int, allowed []int) bool {
	if len(allowed) == 2 {
		return n >= allowed[0] && n <= allowed[1]
	}
	for _, a := range allowed {
		if n == a {
			return true
		}
	}
	return false
}

func describeLengths(allowed []int) string {
	if len(allowed) == 2 {
		return fmt.Sprintf("%d位到%d位之间", allowed[0], allowed[1])
	}
	parts := make([]string, len(allowed))
	for i, n := range allowed {
		parts[i] = strconv.Itoa(n) + "位"
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], "、") + "或" + parts[len(parts)-1]
}

// =============================================================================
// Enum
// =============================================================================

type enumOptions struct {
	Fields map[string]any `mapstructure:"fields"`
}

func validateEnum(opts map[string]any) error {
	var o enumOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return err
	}
	for k, v := range o.Fields {
		if len(EnumValues(v)) == 0 {
			return fmt.Errorf("enum for %q has no allowed values", k)
		}
	}
	return nil
}

// EnumValues reads allowed values from a list or a delimited string.
func EnumValues(v any) []string {
	var raw []string
	switch x := v.(type) {
	case string:
		raw = strings.FieldsFunc(x, func(r rune) bool { return r == ',' || r == '，' })
	case []string:
		raw = x
	case []any:
		for _, item := range x {
			raw = append(raw, fmt.Sprint(item))
		}
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func checkEnum(t *lint.Table, opts map[string]any) []lint.Diagnostic {
	var o enumOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return nil
	}

	var diags []lint.Diagnostic
	for _, f := range resolveFields(t, enumName, keys(o.Fields), matchFuzzy) {
		values := EnumValues(o.Fields[f.name])
		if len(values) == 0 {
			continue
		}
		allowed := make(map[string]bool, len(values))
		for _, v := range values {
			allowed[v] = true
		}
		for r := t.FirstDataRow(); r < t.Rows(); r++ {
			v := t.Text(r, f.col)
			if v == "" || allowed[v] {
				continue
			}
			diags = append(diags, lint.Diagnostic{
				Row: r,
				Col: f.col,
				Message: fmt.Sprintf("字段枚举值非法：%s（允许值：%s，当前值='%s'）",
					f.name, strings.Join(values, "、"), v),
			})
		}
	}
	return diags
}
