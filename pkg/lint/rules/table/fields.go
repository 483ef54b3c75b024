package table

import (
	"sort"

	"github.com/leapstack-labs/gridlint/pkg/lint"
)

// fieldCol is a configured field resolved to a header column.
type fieldCol struct {
	name string
	col  int
}

type matchMode int

const (
	matchFuzzy matchMode = iota
	matchExact
	matchVerbatim
)

// resolveFields resolves configured field names against the header, in
// left-to-right column order. Unresolved names and names landing on a skipped
// column are dropped.
func resolveFields(t *lint.Table, rule string, names []string, mode matchMode) []fieldCol {
	out := make([]fieldCol, 0, len(names))
	for _, name := range names {
		var (
			col int
			ok  bool
		)
		switch mode {
		case matchExact:
			col, ok = t.Headers.MatchExact(name)
		case matchVerbatim:
			col, ok = t.Headers.Column(name)
		default:
			col, ok = t.Headers.Match(name)
		}
		if !ok {
			t.Unresolved(rule, name)
			continue
		}
		if t.IsSkipped(col) {
			continue
		}
		out = append(out, fieldCol{name: name, col: col})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].col != out[j].col {
			return out[i].col < out[j].col
		}
		return out[i].name < out[j].name
	})
	return out
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// anchorCol is the column row-level findings are attributed to: the first
// column that is not skipped.
func anchorCol(t *lint.Table) int {
	for c := 0; c < t.Cols(); c++ {
		if !t.IsSkipped(c) {
			return c
		}
	}
	return 0
}
