package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/lint"
)

const encryptName = "encrypt"

// Encrypt requires cells of configured columns to be masked.
var Encrypt = lint.TableRuleDef{
	Meta: lint.Meta{
		ID:          "SC01",
		Name:        encryptName,
		Group:       "security",
		Description: "Cells in the configured columns must contain at least min_mask_count mask characters.",
		Severity:    core.SeverityError,
		ConfigKeys:  []string{"fields", "min_mask_count", "ignore_empty", "mask_char"},
		Rationale:   "Column names match the trimmed header text exactly.",
		BadExample:  "身份证号: 110101199001010011",
		GoodExample: "身份证号: 110101********0011",
	},
	Check:    checkEncrypt,
	Validate: validateEncrypt,
}

// SensitiveWord scans every checked cell for banned words.
var SensitiveWord = lint.TableRuleDef{
	Meta: lint.Meta{
		ID:          "SC02",
		Name:        "sensitive_word",
		Group:       "security",
		Description: "Cells must not contain words from the sensitive word list (case-insensitive).",
		Severity:    core.SeverityError,
	},
	Check: checkSensitiveWord,
}

type encryptOptions struct {
	Fields       []string `mapstructure:"fields"`
	MinMaskCount int      `mapstructure:"min_mask_count"`
	IgnoreEmpty  *bool    `mapstructure:"ignore_empty"`
	MaskChar     string   `mapstructure:"mask_char"`
}

func decodeEncrypt(opts map[string]any) (encryptOptions, error) {
	o := encryptOptions{MinMaskCount: 1, MaskChar: "*"}
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return o, err
	}
	if o.MaskChar == "" {
		o.MaskChar = "*"
	}
	if o.IgnoreEmpty == nil {
		ignore := true
		o.IgnoreEmpty = &ignore
	}
	return o, nil
}

func validateEncrypt(opts map[string]any) error {
	o, err := decodeEncrypt(opts)
	if err != nil {
		return err
	}
	if o.MinMaskCount < 1 {
		return errors.New("min_mask_count must be at least 1")
	}
	return nil
}

func checkEncrypt(t *lint.Table, opts map[string]any) []lint.Diagnostic {
	o, err := decodeEncrypt(opts)
	if err != nil {
		return nil
	}

	var diags []lint.Diagnostic
	for _, f := range resolveFields(t, encryptName, o.Fields, matchVerbatim) {
		for r := t.FirstDataRow(); r < t.Rows(); r++ {
			v := t.Text(r, f.col)
			if v == "" && *o.IgnoreEmpty {
				continue
			}
			if strings.Count(v, o.MaskChar) >= o.MinMaskCount {
				continue
			}
			diags = append(diags, lint.Diagnostic{
				Row: r,
				Col: f.col,
				Message: fmt.Sprintf("字段加密检查：【%s】列（行%d列%d）未加密，当前值='%s'（需包含至少%d个%s）",
					f.name, r+1, f.col+1, v, o.MinMaskCount, o.MaskChar),
			})
		}
	}
	return diags
}

func checkSensitiveWord(t *lint.Table, _ map[string]any) []lint.Diagnostic {
	if t.Scanner == nil {
		return nil
	}

	var diags []lint.Diagnostic
	for r := t.FirstDataRow(); r < t.Rows(); r++ {
		for c := 0; c < t.Cols(); c++ {
			if t.IsSkipped(c) {
				continue
			}
			v := t.Text(r, c)
			if v == "" {
				continue
			}
			words := t.Scanner.Scan(v)
			if len(words) == 0 {
				continue
			}
			diags = append(diags, lint.Diagnostic{
				Row: r,
				Col: c,
				Message: fmt.Sprintf("内容包含敏感词：【%s】列（行%d列%d），当前值='%s'，检测到敏感词：%s",
					t.Headers.Header(c), r+1, c+1, v, strings.Join(words, "、")),
			})
		}
	}
	return diags
}
