package cell

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/grid"
	"github.com/leapstack-labs/gridlint/pkg/lint"
)

// Precision limits the number of significant decimal places in numeric
// columns selected by header keyword.
var Precision = lint.CellRuleDef{
	Meta: lint.Meta{
		ID:          "NM01",
		Name:        "precision",
		Group:       "numeric",
		Description: "Numbers in columns whose header contains a configured keyword may not exceed the configured decimal places.",
		Severity:    core.SeverityError,
		ConfigKeys:  []string{"fields"},
		BadExample:  "金额: 12.345 (max 2)",
		GoodExample: "金额: 12.30",
	},
	Check:    checkPrecision,
	Validate: validatePrecision,
}

type precisionOptions struct {
	Fields map[string]int `mapstructure:"fields"`
}

func validatePrecision(opts map[string]any) error {
	var o precisionOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return err
	}
	for k, p := range o.Fields {
		if p < 0 {
			return fmt.Errorf("precision for %q must not be negative", k)
		}
	}
	return nil
}

func checkPrecision(cell lint.Cell, opts map[string]any) (bool, string) {
	if cell.Text == "" || cell.Header == "" {
		return false, ""
	}
	var o precisionOptions
	if err := lint.DecodeOptions(opts, &o); err != nil || len(o.Fields) == 0 {
		return false, ""
	}

	maxDigits, ok := precisionFor(cell.Header, o.Fields)
	if !ok {
		return false, ""
	}

	clean := strings.NewReplacer(",", "", " ", "").Replace(cell.Text)
	num, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return false, ""
	}

	digits := FractionDigits(num)
	if digits > maxDigits {
		return true, fmt.Sprintf("小数精度错误：%s列需保留%d位小数（当前值%s，实际%d位）", cell.Header, maxDigits, cell.Text, digits)
	}
	return false, ""
}

// precisionFor finds the configured precision whose keyword is contained in
// the header. Longer keywords are tried first.
func precisionFor(header string, fields map[string]int) (int, bool) {
	h := grid.Normalize(header)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(keys[i]), utf8.RuneCountInString(keys[j])
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		kn := grid.Normalize(k)
		if kn == "" || !strings.Contains(h, kn) {
			continue
		}
		return fields[k], true
	}
	return 0, false
}

// FractionDigits counts the decimal places of the shortest representation of
// f, ignoring trailing zeros.
func FractionDigits(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}
	return len(strings.TrimRight(s[dot+1:], "0"))
}
