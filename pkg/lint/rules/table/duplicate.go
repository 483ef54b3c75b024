package table

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/grid"
	"github.com/leapstack-labs/gridlint/pkg/lint"
)

// HeaderDuplicate flags header names that repeat, ignoring case and padding.
var HeaderDuplicate = lint.TableRuleDef{
	Meta: lint.Meta{
		ID:          "DU01",
		Name:        "header_duplicate",
		Group:       "uniqueness",
		Description: "Header names must be unique (case-insensitive).",
		Severity:    core.SeverityError,
		BadExample:  "姓名 | 手机号 | 姓名",
	},
	Check: checkHeaderDuplicate,
}

// RowDuplicate flags data rows identical to an earlier row.
var RowDuplicate = lint.TableRuleDef{
	Meta: lint.Meta{
		ID:          "DU02",
		Name:        "row_duplicate",
		Group:       "uniqueness",
		Description: "Data rows must not repeat an earlier row. Fully empty rows are exempt.",
		Severity:    core.SeverityError,
	},
	Check: checkRowDuplicate,
}

func checkHeaderDuplicate(t *lint.Table, _ map[string]any) []lint.Diagnostic {
	var diags []lint.Diagnostic
	seen := make(map[string]int)
	for c := 0; c < t.Cols(); c++ {
		name := t.Text(t.HeaderRow, c)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			diags = append(diags, lint.Diagnostic{
				Row:     t.HeaderRow,
				Col:     c,
				Message: fmt.Sprintf("表头字段重复：'%s' 与第%d列的'%s'重复", name, prev+1, t.Text(t.HeaderRow, prev)),
			})
			continue
		}
		seen[key] = c
	}
	return diags
}

func checkRowDuplicate(t *lint.Table, _ map[string]any) []lint.Diagnostic {
	var diags []lint.Diagnostic
	anchor := anchorCol(t)

	// Rows are bucketed by hash; candidates in a bucket are compared in full.
	buckets := make(map[uint64][]int)
	rows := make(map[int][]string)

	for r := t.FirstDataRow(); r < t.Rows(); r++ {
		vals := grid.RowTexts(t.Grid, r)
		if allBlank(vals) {
			continue
		}

		h := xxh3.Hash([]byte(strings.Join(vals, "\x1f")))
		first := -1
		for _, cand := range buckets[h] {
			if equalRows(rows[cand], vals) {
				first = cand
				break
			}
		}
		if first >= 0 {
			diags = append(diags, lint.Diagnostic{
				Row:     r,
				Col:     anchor,
				Message: fmt.Sprintf("数据行重复：第%d行与第%d行完全重复", r+1, first+1),
			})
			continue
		}
		buckets[h] = append(buckets[h], r)
		rows[r] = vals
	}
	return diags
}

func allBlank(vals []string) bool {
	for _, v := range vals {
		if v != "" {
			return false
		}
	}
	return true
}

func equalRows(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
