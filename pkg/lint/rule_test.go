package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/lint"
)

// kindOnly implements Rule without any check interface.
type kindOnly struct {
	id   string
	kind core.RuleKind
}

func (r kindOnly) ID() string                     { return r.id }
func (r kindOnly) Name() string                   { return "kind_only_" + r.id }
func (r kindOnly) Group() string                  { return "test" }
func (r kindOnly) Description() string            { return "" }
func (r kindOnly) DefaultSeverity() core.Severity { return core.SeverityError }
func (r kindOnly) ConfigKeys() []string           { return nil }
func (r kindOnly) Kind() core.RuleKind            { return r.kind }

func cellDef(id, name string) lint.CellRuleDef {
	return lint.CellRuleDef{
		Meta: lint.Meta{ID: id, Name: name, Group: "test", Severity: core.SeverityWarning},
		Check: func(lint.Cell, map[string]any) (bool, string) {
			return false, ""
		},
	}
}

func TestNewRegistry(t *testing.T) {
	t.Run("duplicate id", func(t *testing.T) {
		_, err := lint.NewRegistry(lint.WrapCell(cellDef("T01", "a")), lint.WrapCell(cellDef("t01", "b")))
		assert.ErrorIs(t, err, lint.ErrDuplicateRule)
	})

	t.Run("name shadows id", func(t *testing.T) {
		_, err := lint.NewRegistry(lint.WrapCell(cellDef("T01", "a")), lint.WrapCell(cellDef("T02", "T01")))
		assert.ErrorIs(t, err, lint.ErrDuplicateRule)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := lint.NewRegistry(lint.WrapCell(cellDef("T01", "")))
		assert.ErrorIs(t, err, lint.ErrInvalidRule)
	})

	t.Run("kind without implementation", func(t *testing.T) {
		_, err := lint.NewRegistry(kindOnly{id: "T01", kind: core.RuleKindCell})
		assert.ErrorIs(t, err, lint.ErrInvalidRule)

		_, err = lint.NewRegistry(kindOnly{id: "T01", kind: core.RuleKindTable})
		assert.ErrorIs(t, err, lint.ErrInvalidRule)

		_, err = lint.NewRegistry(kindOnly{id: "T01", kind: "other"})
		assert.ErrorIs(t, err, lint.ErrInvalidRule)
	})

	t.Run("lookup by id or name", func(t *testing.T) {
		reg, err := lint.NewRegistry(lint.WrapCell(cellDef("T01", "alpha")), lint.WrapCell(cellDef("T02", "beta")))
		require.NoError(t, err)
		assert.Equal(t, 2, reg.Count())

		r, ok := reg.Lookup(" ALPHA ")
		require.True(t, ok)
		assert.Equal(t, "T01", r.ID())

		_, err = reg.Resolve("gamma")
		assert.ErrorIs(t, err, lint.ErrUnknownRule)

		assert.Equal(t, []string{"test"}, reg.Groups())
		assert.Len(t, reg.ByGroup("test"), 2)
		assert.Len(t, reg.Infos(), 2)
	})

	t.Run("must panics", func(t *testing.T) {
		assert.Panics(t, func() {
			lint.MustRegistry(lint.WrapCell(cellDef("T01", "a")), lint.WrapCell(cellDef("T01", "b")))
		})
	})
}

func TestGetRuleInfo(t *testing.T) {
	def := cellDef("T01", "alpha")
	def.BadExample = "bad"
	def.CheckHeader = func(string, map[string]any) (bool, string) { return false, "" }

	info := lint.GetRuleInfo(lint.WrapCell(def))
	assert.Equal(t, "T01", info.ID)
	assert.Equal(t, core.RuleKindCell, info.Kind)
	assert.True(t, info.ChecksHeader)
	assert.Equal(t, "bad", info.BadExample)
	assert.Equal(t, core.SeverityWarning, info.DefaultSeverity)
}

func TestFromSettings(t *testing.T) {
	cfg, err := lint.FromSettings(
		core.EngineConfig{MinHeaderCols: 2, SkipFirstCol: false, SkipEmptyCols: true},
		core.RulesConfig{
			Enabled:  []string{"phone"},
			Disabled: []string{"NL01"},
			Severity: map[string]string{"Phone": "warn"},
			Options:  map[string]core.RuleOptions{"FT02": {"mask_chars": "*#"}},
		},
		[]core.FieldTypeConfig{{Type: "phone", Keywords: []string{"电话"}}},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.MinHeaderCols)
	assert.Equal(t, 10, cfg.HeaderScanRows)
	assert.False(t, cfg.SkipFirstCol)
	assert.Equal(t, []string{"phone"}, cfg.Enabled)
	assert.True(t, cfg.DisabledRules["nl01"])
	assert.Equal(t, core.SeverityWarning, cfg.SeverityOverrides["phone"])
	assert.Equal(t, "*#", cfg.RuleOptions["ft02"]["mask_chars"])
	require.Len(t, cfg.FieldTypes, 1)

	_, err = lint.FromSettings(core.EngineConfig{}, core.RulesConfig{Severity: map[string]string{"x": "loud"}}, nil)
	assert.Error(t, err)

	_, err = lint.FromSettings(core.EngineConfig{}, core.RulesConfig{}, []core.FieldTypeConfig{{Keywords: []string{"a"}}})
	assert.Error(t, err)
}

func TestConfig_RuleOptionsPreferID(t *testing.T) {
	rule := lint.WrapCell(cellDef("T01", "alpha"))
	cfg := lint.NewConfig().
		SetRuleOptions("alpha", map[string]any{"v": 1}).
		SetRuleOptions("T01", map[string]any{"v": 2})
	assert.Equal(t, 2, cfg.GetRuleOptions(rule)["v"])
}

func TestOptions(t *testing.T) {
	opts := map[string]any{
		"n":     float64(3),
		"s":     "4",
		"b":     "true",
		"list":  []any{"a", 1, "b"},
		"name":  "x",
		"empty": "",
	}
	assert.Equal(t, 3, lint.GetIntOption(opts, "n", 0))
	assert.Equal(t, 4, lint.GetIntOption(opts, "s", 0))
	assert.Equal(t, 9, lint.GetIntOption(opts, "missing", 9))
	assert.True(t, lint.GetBoolOption(opts, "b", false))
	assert.Equal(t, []string{"a", "b"}, lint.GetStringSliceOption(opts, "list", nil))
	assert.Equal(t, "x", lint.GetStringOption(opts, "name", "d"))
	assert.Equal(t, "d", lint.GetStringOption(opts, "empty", "d"))
	assert.Equal(t, "d", lint.GetStringOption(nil, "name", "d"))

	var out struct {
		Count  int      `mapstructure:"count"`
		Fields []string `mapstructure:"fields"`
	}
	require.NoError(t, lint.DecodeOptions(map[string]any{"count": "5", "fields": "a"}, &out))
	assert.Equal(t, 5, out.Count)
	assert.Equal(t, []string{"a"}, out.Fields)

	assert.Error(t, lint.DecodeOptions(map[string]any{"count": "many"}, &out))
}

func TestCollector(t *testing.T) {
	c := lint.NewCollector()
	c.Add("T01", core.SeverityError, 0, 0, "a")
	c.AddDiagnostics("T02", core.SeverityInfo, []lint.Diagnostic{{Row: 4, Col: 2, Message: "b"}})

	require.Equal(t, 2, c.Len())
	vs := c.Violations()
	assert.Equal(t, core.Violation{Row: 1, Col: 1, RuleID: "T01", Severity: core.SeverityError, Message: "a"}, vs[0])
	assert.Equal(t, 5, vs[1].Row)
	assert.Equal(t, 3, vs[1].Col)
}
