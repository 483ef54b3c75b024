package cell

import (
	"strings"

	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/lint"
)

// Null flags blank cells and placeholder tokens.
var Null = lint.CellRuleDef{
	Meta: lint.Meta{
		ID:          "NL01",
		Name:        "null",
		Group:       "completeness",
		Description: "Blank cells and placeholder tokens (null, -, _, \\, 、, ~, /, —, ——) are not values.",
		Severity:    core.SeverityError,
		Rationale:   "Placeholders typed to fill a required cell hide missing data from downstream checks.",
		BadExample:  "——",
		GoodExample: "张三",
	},
	Check:       checkNull,
	CheckHeader: checkNullHeader,
}

// headerTag prefixes messages about header cells.
const headerTag = "表头"

var placeholders = map[string]bool{
	"-":  true,
	"_":  true,
	"\\": true,
	"、":  true,
	"~":  true,
	"/":  true,
	"—":  true,
	"——": true,
}

func nullMessage(text string) (bool, string) {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return true, "空值(空白字符)"
	case strings.EqualFold(text, "null"):
		return true, "特殊字符：null"
	case placeholders[text]:
		return true, "特殊字符：" + text
	}
	return false, ""
}

func checkNull(cell lint.Cell, _ map[string]any) (bool, string) {
	return nullMessage(cell.Text)
}

func checkNullHeader(text string, _ map[string]any) (bool, string) {
	bad, msg := nullMessage(text)
	if !bad {
		return false, ""
	}
	return true, headerTag + msg
}
