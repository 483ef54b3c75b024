package cell

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/grid"
	"github.com/leapstack-labs/gridlint/pkg/lint"
)

const defaultMaskChars = "*"

// IDNumber validates 18-character resident identity numbers, masked or not.
var IDNumber = lint.CellRuleDef{
	Meta: lint.Meta{
		ID:          "FT01",
		Name:        "id_number",
		Group:       "format",
		Description: "Identity numbers have 18 characters: digits, with a digit or X last. Mask characters are allowed.",
		Severity:    core.SeverityError,
		ConfigKeys:  []string{"mask_chars"},
		BadExample:  "1101011990010100",
		GoodExample: "11010119900101001X",
	},
	Check: checkIDNumber,
}

// Phone validates 11-character mobile numbers, masked or not.
var Phone = lint.CellRuleDef{
	Meta: lint.Meta{
		ID:          "FT02",
		Name:        "phone",
		Group:       "format",
		Description: "Mobile numbers have 11 characters; everything except mask characters must be a digit.",
		Severity:    core.SeverityError,
		ConfigKeys:  []string{"mask_chars"},
		BadExample:  "1380013800",
		GoodExample: "138****8000",
	},
	Check: checkPhone,
}

// Postcode validates 6-digit postal codes. Masking is not accepted.
var Postcode = lint.CellRuleDef{
	Meta: lint.Meta{
		ID:          "FT03",
		Name:        "postcode",
		Group:       "format",
		Description: "Postal codes are exactly six digits.",
		Severity:    core.SeverityError,
		BadExample:  "10008A",
		GoodExample: "100080",
	},
	Check: checkPostcode,
}

func checkIDNumber(cell lint.Cell, opts map[string]any) (bool, string) {
	if cell.FieldType != grid.FieldIDNumber || cell.Text == "" {
		return false, ""
	}
	v := cell.Text

	if n := utf8.RuneCountInString(v); n != 18 {
		return true, fmt.Sprintf("身份证号：长度需为18位（当前%d位）", n)
	}

	clean := stripMask(v, lint.GetStringOption(opts, "mask_chars", defaultMaskChars))
	if len(clean) < 2 || !isDigits(clean[:len(clean)-1]) {
		return true, fmt.Sprintf("身份证号：前17位需为数字（当前值：%s）", v)
	}
	last := clean[len(clean)-1]
	if last != 'X' && last != 'x' && !isDigit(last) {
		return true, fmt.Sprintf("身份证号：最后一位需为数字或X（当前值：%s）", v)
	}
	return false, ""
}

func checkPhone(cell lint.Cell, opts map[string]any) (bool, string) {
	if cell.FieldType != grid.FieldPhone || cell.Text == "" {
		return false, ""
	}
	v := cell.Text

	if n := utf8.RuneCountInString(v); n != 11 {
		return true, fmt.Sprintf("手机号：长度需为11位（当前%d位）", n)
	}
	clean := stripMask(v, lint.GetStringOption(opts, "mask_chars", defaultMaskChars))
	if clean != "" && !isDigits(clean) {
		return true, fmt.Sprintf("手机号：非脱敏部分需为数字（当前值：%s）", v)
	}
	return false, ""
}

func checkPostcode(cell lint.Cell, _ map[string]any) (bool, string) {
	if cell.FieldType != grid.FieldPostcode || cell.Text == "" {
		return false, ""
	}
	v := cell.Text

	if n := utf8.RuneCountInString(v); n != 6 {
		return true, fmt.Sprintf("邮政编码：长度需为6位（当前%d位）", n)
	}
	if !isDigits(v) {
		return true, fmt.Sprintf("邮政编码：需为6位纯数字（当前值：%s）", v)
	}
	return false, ""
}

func stripMask(s, maskChars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(maskChars, r) {
			return -1
		}
		return r
	}, s)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isDigits reports whether s is non-empty and made of ASCII digits only.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
