package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/lint"
)

const compositeKeyName = "composite_key"

// CompositeKey checks uniqueness of primary keys and of primary+slave key
// combinations.
var CompositeKey = lint.TableRuleDef{
	Meta: lint.Meta{
		ID:          "DU03",
		Name:        compositeKeyName,
		Group:       "uniqueness",
		Description: "Primary key values, and primary plus slave key combinations, must be unique across data rows.",
		Severity:    core.SeverityError,
		ConfigKeys:  []string{"keys"},
		Rationale:   "Primary fields are joined with '|'. Slave fields are separated by ',' or '，'. Rows with an empty primary value are not checked.",
	},
	Check:    checkCompositeKey,
	Validate: validateCompositeKey,
}

type compositeKey struct {
	Primary               string `mapstructure:"primary"`
	Slave                 string `mapstructure:"slave"`
	AllowPrimaryDuplicate bool   `mapstructure:"allow_primary_duplicate"`
}

type compositeOptions struct {
	Keys []compositeKey `mapstructure:"keys"`
}

func validateCompositeKey(opts map[string]any) error {
	var o compositeOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return err
	}
	for i, k := range o.Keys {
		if len(splitPrimary(k.Primary)) == 0 {
			return fmt.Errorf("keys[%d]: primary is required", i)
		}
	}
	return nil
}

func splitPrimary(s string) []string {
	return splitFields(s, func(r rune) bool { return r == '|' })
}

func splitSlave(s string) []string {
	return splitFields(s, func(r rune) bool { return r == ',' || r == '，' })
}

func splitFields(s string, sep func(rune) bool) []string {
	var out []string
	for _, f := range strings.FieldsFunc(s, sep) {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// keyGroups collects row indices per key in first-seen order.
type keyGroups struct {
	order []string
	rows  map[string][]int
	label map[string]string
}

func newKeyGroups() *keyGroups {
	return &keyGroups{rows: map[string][]int{}, label: map[string]string{}}
}

func (g *keyGroups) add(key, label string, row int) {
	if _, ok := g.rows[key]; !ok {
		g.order = append(g.order, key)
		g.label[key] = label
	}
	g.rows[key] = append(g.rows[key], row)
}

// report emits one diagnostic per repeated occurrence, citing every row of
// the group.
func (g *keyGroups) report(prefix string, col int) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, key := range g.order {
		rows := g.rows[key]
		if len(rows) < 2 {
			continue
		}
		nums := make([]string, len(rows))
		for i, r := range rows {
			nums[i] = strconv.Itoa(r + 1)
		}
		msg := fmt.Sprintf("%s：%s | 重复行：%s", prefix, g.label[key], strings.Join(nums, ","))
		for _, r := range rows[1:] {
			diags = append(diags, lint.Diagnostic{Row: r, Col: col, Message: msg})
		}
	}
	return diags
}

func checkCompositeKey(t *lint.Table, opts map[string]any) []lint.Diagnostic {
	var o compositeOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return nil
	}

	var diags []lint.Diagnostic
	for _, k := range o.Keys {
		diags = append(diags, checkKey(t, k)...)
	}
	return diags
}

func checkKey(t *lint.Table, k compositeKey) []lint.Diagnostic {
	pks := splitPrimary(k.Primary)
	if len(pks) == 0 {
		return nil
	}
	pcols, ok := t.Headers.MatchAll(pks)
	if !ok {
		t.Unresolved(compositeKeyName, k.Primary)
		return nil
	}

	sks := splitSlave(k.Slave)
	scols, slaveOK := t.Headers.MatchAll(sks)
	if len(sks) == 0 {
		slaveOK = false
	} else if !slaveOK {
		t.Unresolved(compositeKeyName, k.Slave)
	}

	checkPrimary := !k.AllowPrimaryDuplicate

	primary := newKeyGroups()
	combo := newKeyGroups()
	for r := t.FirstDataRow(); r < t.Rows(); r++ {
		pvals, complete := keyValues(t, r, pcols)
		if !complete {
			continue
		}
		pkey := strings.Join(pvals, "\x1f")
		plabel := keyLabel(pks, pvals)
		if checkPrimary {
			primary.add(pkey, plabel, r)
		}
		if slaveOK {
			svals, _ := keyValues(t, r, scols)
			ckey := pkey + "\x1e" + strings.Join(svals, "\x1f")
			combo.add(ckey, plabel+" + "+keyLabel(sks, svals), r)
		}
	}

	anchor := keyAnchor(t, pcols)
	diags := primary.report("主键重复", anchor)
	return append(diags, combo.report("组合重复", anchor)...)
}

// keyAnchor is the first primary column that is not skipped, falling back
// to the table's anchor column.
func keyAnchor(t *lint.Table, pcols []int) int {
	for _, c := range pcols {
		if !t.IsSkipped(c) {
			return c
		}
	}
	return anchorCol(t)
}

// keyValues returns the trimmed values of cols in row r and whether all of
// them are non-empty.
func keyValues(t *lint.Table, r int, cols []int) ([]string, bool) {
	vals := make([]string, len(cols))
	complete := true
	for i, c := range cols {
		vals[i] = t.Text(r, c)
		if vals[i] == "" {
			complete = false
		}
	}
	return vals, complete
}

func keyLabel(names, vals []string) string {
	parts := make([]string, len(names))
	for i := range names {
		parts[i] = names[i] + "=" + vals[i]
	}
	return "[" + strings.Join(parts, " + ") + "]"
}
