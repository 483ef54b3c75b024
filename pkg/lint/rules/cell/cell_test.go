package cell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/gridlint/pkg/grid"
	"github.com/leapstack-labs/gridlint/pkg/lint"
	"github.com/leapstack-labs/gridlint/pkg/lint/rules/cell"
)

type cellCase struct {
	name      string
	text      string
	fieldType string
	header    string
	opts      map[string]any
	wantBad   bool
	wantMsg   string
}

func runCellCases(t *testing.T, def lint.CellRuleDef, tests []cellCase) {
	t.Helper()
	rule := lint.WrapCell(def)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad, msg := rule.CheckCell(lint.Cell{Text: tt.text, FieldType: tt.fieldType, Header: tt.header}, tt.opts)
			assert.Equal(t, tt.wantBad, bad)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, msg)
			}
			if !tt.wantBad {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestNull(t *testing.T) {
	runCellCases(t, cell.Null, []cellCase{
		{name: "double em dash", text: "——", wantBad: true, wantMsg: "特殊字符：——"},
		{name: "single em dash", text: "—", wantBad: true, wantMsg: "特殊字符：—"},
		{name: "whitespace", text: "  ", wantBad: true, wantMsg: "空值(空白字符)"},
		{name: "empty", text: "", wantBad: true, wantMsg: "空值(空白字符)"},
		{name: "null any case", text: "NuLL", wantBad: true, wantMsg: "特殊字符：null"},
		{name: "dash", text: "-", wantBad: true, wantMsg: "特殊字符：-"},
		{name: "underscore", text: "_", wantBad: true, wantMsg: "特殊字符：_"},
		{name: "backslash", text: `\`, wantBad: true, wantMsg: `特殊字符：\`},
		{name: "ideographic comma", text: "、", wantBad: true, wantMsg: "特殊字符：、"},
		{name: "tilde", text: "~", wantBad: true, wantMsg: "特殊字符：~"},
		{name: "slash", text: "/", wantBad: true, wantMsg: "特殊字符：/"},
		{name: "text", text: "abc", wantBad: false},
		{name: "dash inside value", text: "2024-01-01", wantBad: false},
		{name: "nullable word", text: "nullable", wantBad: false},
	})
}

func TestNull_HeaderIsTagged(t *testing.T) {
	rule := lint.WrapCell(cell.Null)
	hc, ok := rule.(lint.HeaderChecker)
	if !ok {
		t.Fatal("null rule must check header cells")
	}

	bad, msg := hc.CheckHeader(" ", nil)
	assert.True(t, bad)
	assert.Equal(t, "表头空值(空白字符)", msg)

	bad, msg = hc.CheckHeader("/", nil)
	assert.True(t, bad)
	assert.Equal(t, "表头特殊字符：/", msg)

	bad, _ = hc.CheckHeader("姓名", nil)
	assert.False(t, bad)
}

func TestIDNumber(t *testing.T) {
	runCellCases(t, cell.IDNumber, []cellCase{
		{name: "valid with X", text: "11010119900101001X", fieldType: grid.FieldIDNumber},
		{name: "valid lowercase x", text: "11010119900101001x", fieldType: grid.FieldIDNumber},
		{name: "valid digits", text: "110101199001010011", fieldType: grid.FieldIDNumber},
		{name: "masked", text: "110101********001X", fieldType: grid.FieldIDNumber},
		{
			name: "sixteen chars", text: "1101011990010100", fieldType: grid.FieldIDNumber,
			wantBad: true, wantMsg: "身份证号：长度需为18位（当前16位）",
		},
		{
			name: "letter in body", text: "1101011990A101001X", fieldType: grid.FieldIDNumber,
			wantBad: true, wantMsg: "身份证号：前17位需为数字（当前值：1101011990A101001X）",
		},
		{
			name: "bad check char", text: "11010119900101001Y", fieldType: grid.FieldIDNumber,
			wantBad: true, wantMsg: "身份证号：最后一位需为数字或X（当前值：11010119900101001Y）",
		},
		{
			name: "fully masked", text: "******************", fieldType: grid.FieldIDNumber,
			wantBad: true,
		},
		{name: "other field type", text: "123", fieldType: grid.FieldPhone},
		{name: "no field type", text: "123", fieldType: ""},
		{name: "empty left to null rule", text: "", fieldType: grid.FieldIDNumber},
		{
			name: "custom mask chars", text: "110101########001X", fieldType: grid.FieldIDNumber,
			opts: map[string]any{"mask_chars": "#"},
		},
	})
}

func TestPhone(t *testing.T) {
	runCellCases(t, cell.Phone, []cellCase{
		{name: "masked", text: "138****8000", fieldType: grid.FieldPhone},
		{name: "plain", text: "13800138000", fieldType: grid.FieldPhone},
		{name: "fully masked", text: "***********", fieldType: grid.FieldPhone},
		{
			name: "ten digits", text: "1380013800", fieldType: grid.FieldPhone,
			wantBad: true, wantMsg: "手机号：长度需为11位（当前10位）",
		},
		{
			name: "letters", text: "138abcd8000", fieldType: grid.FieldPhone,
			wantBad: true, wantMsg: "手机号：非脱敏部分需为数字（当前值：138abcd8000）",
		},
		{name: "not a phone column", text: "1380013800", fieldType: ""},
	})
}

func TestPostcode(t *testing.T) {
	runCellCases(t, cell.Postcode, []cellCase{
		{name: "valid", text: "100080", fieldType: grid.FieldPostcode},
		{
			name: "short", text: "10008", fieldType: grid.FieldPostcode,
			wantBad: true, wantMsg: "邮政编码：长度需为6位（当前5位）",
		},
		{
			name: "masked not allowed", text: "10**80", fieldType: grid.FieldPostcode,
			wantBad: true, wantMsg: "邮政编码：需为6位纯数字（当前值：10**80）",
		},
		{name: "other type", text: "abc", fieldType: grid.FieldIDNumber},
	})
}

func TestPrecision(t *testing.T) {
	opts := map[string]any{"fields": map[string]any{"金额": 2, "单价": 4}}

	runCellCases(t, cell.Precision, []cellCase{
		{name: "within", text: "12.34", header: "合同金额(元)", opts: opts},
		{name: "trailing zeros ignored", text: "12.3400", header: "金额", opts: opts},
		{name: "thousands separators", text: "1,234.5", header: "金额", opts: opts},
		{
			name: "too many digits", text: "12.345", header: "金额", opts: opts,
			wantBad: true, wantMsg: "小数精度错误：金额列需保留2位小数（当前值12.345，实际3位）",
		},
		{name: "other keyword", text: "1.23456", header: "单价", opts: opts, wantBad: true},
		{name: "non numeric skipped", text: "abc", header: "金额", opts: opts},
		{name: "unconfigured header", text: "1.23456", header: "数量", opts: opts},
		{name: "no options", text: "1.23456", header: "金额"},
	})
}

func TestPrecision_OptionShapes(t *testing.T) {
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal([]byte("fields:\n  金额: 2\n"), &fromYAML))

	shapes := map[string]map[string]any{
		"int map":    {"fields": map[string]int{"金额": 2}},
		"string map": {"fields": map[string]string{"金额": "2"}},
		"float map":  {"fields": map[string]float64{"金额": 2}},
		"yaml":       fromYAML,
	}
	rule := lint.WrapCell(cell.Precision)
	for name, opts := range shapes {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, rule.(lint.OptionsValidator).ValidateOptions(opts))

			bad, msg := rule.CheckCell(lint.Cell{Text: "1.2345", Header: "金额"}, opts)
			assert.True(t, bad)
			assert.Equal(t, "小数精度错误：金额列需保留2位小数（当前值1.2345，实际4位）", msg)

			bad, _ = rule.CheckCell(lint.Cell{Text: "1.23", Header: "金额"}, opts)
			assert.False(t, bad)
		})
	}
}

func TestPrecision_ValidateOptions(t *testing.T) {
	rule := lint.WrapCell(cell.Precision)
	v, ok := rule.(lint.OptionsValidator)
	if !ok {
		t.Fatal("precision rule must validate options")
	}
	assert.NoError(t, v.ValidateOptions(map[string]any{"fields": map[string]any{"金额": "2"}}))
	assert.Error(t, v.ValidateOptions(map[string]any{"fields": map[string]any{"金额": -1}}))
	assert.Error(t, v.ValidateOptions(map[string]any{"fields": "金额"}))
}

func TestFractionDigits(t *testing.T) {
	assert.Equal(t, 0, cell.FractionDigits(12))
	assert.Equal(t, 1, cell.FractionDigits(12.5))
	assert.Equal(t, 3, cell.FractionDigits(0.125))
	assert.Equal(t, 0, cell.FractionDigits(100.0))
}
