package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/lint"
	"github.com/leapstack-labs/gridlint/pkg/lint/rules"
)

func TestBuiltin_CellRulesFirst(t *testing.T) {
	all := rules.Builtin()
	require.Len(t, all, 14)

	seenTable := false
	for _, r := range all {
		if r.Kind() == core.RuleKindTable {
			seenTable = true
			continue
		}
		assert.False(t, seenTable, "cell rule %s after a table rule", r.ID())
	}
}

func TestNewRegistry(t *testing.T) {
	reg := rules.NewRegistry()
	assert.Equal(t, 14, reg.Count())

	r, ok := reg.Lookup("composite_key")
	require.True(t, ok)
	assert.Equal(t, "DU03", r.ID())

	r, ok = reg.Lookup("ft02")
	require.True(t, ok)
	assert.Equal(t, "phone", r.Name())
}

func TestBuiltin_Documented(t *testing.T) {
	for _, r := range rules.Builtin() {
		info := lint.GetRuleInfo(r)
		assert.NotEmpty(t, info.Description, r.ID())
		assert.NotEmpty(t, info.Group, r.ID())
	}
}
