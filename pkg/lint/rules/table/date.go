package table

import (
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/lint"
)

const dateFormatName = "date_format"

// DateFormat checks that cells parse with one of the allowed date patterns.
var DateFormat = lint.TableRuleDef{
	Meta: lint.Meta{
		ID:          "VL04",
		Name:        dateFormatName,
		Group:       "value",
		Description: "Dates must match one of the configured strftime patterns. Field names match headers exactly after normalization.",
		Severity:    core.SeverityError,
		ConfigKeys:  []string{"fields"},
		BadExample:  "出生日期: 2024/13/01 (allowed %Y/%m/%d)",
		GoodExample: "出生日期: 2024/1/5",
	},
	Check:    checkDateFormat,
	Validate: validateDateFormat,
}

type dateOptions struct {
	Fields map[string][]string `mapstructure:"fields"`
}

func validateDateFormat(opts map[string]any) error {
	var o dateOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return err
	}
	for k, patterns := range o.Fields {
		if len(patterns) == 0 {
			return fmt.Errorf("date formats for %q are empty", k)
		}
		for _, p := range patterns {
			if _, err := StrftimeLayout(p); err != nil {
				return fmt.Errorf("field %q: %w", k, err)
			}
		}
	}
	return nil
}

func checkDateFormat(t *lint.Table, opts map[string]any) []lint.Diagnostic {
	var o dateOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return nil
	}

	var diags []lint.Diagnostic
	for _, f := range resolveFields(t, dateFormatName, keys(o.Fields), matchExact) {
		patterns := o.Fields[f.name]
		layouts := make([]string, 0, len(patterns))
		readable := make([]string, 0, len(patterns))
		for _, p := range patterns {
			layout, err := StrftimeLayout(p)
			if err != nil {
				continue
			}
			layouts = append(layouts, layout)
			readable = append(readable, ReadableFormat(p))
		}
		if len(layouts) == 0 {
			continue
		}

		for r := t.FirstDataRow(); r < t.Rows(); r++ {
			v := t.Text(r, f.col)
			if v == "" || parsesAny(v, layouts) {
				continue
			}
			diags = append(diags, lint.Diagnostic{
				Row: r,
				Col: f.col,
				Message: fmt.Sprintf("日期格式非法：%s（当前值='%s'，不匹配允许的日期格式（允许：%s））",
					f.name, v, strings.Join(readable, ", ")),
			})
		}
	}
	return diags
}

func parsesAny(v string, layouts []string) bool {
	for _, l := range layouts {
		if _, err := time.Parse(l, v); err == nil {
			return true
		}
	}
	return false
}
