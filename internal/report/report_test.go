package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gridlint/internal/loader"
	"github.com/leapstack-labs/gridlint/pkg/core"
)

var at = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func sampleReport() *Report {
	r := New("data", at)
	r.Add(FileResult{
		Path:      "data/a.csv",
		HeaderRow: 2,
		Violations: []core.Violation{
			{Row: 4, Col: 3, RuleID: "FT02", Severity: core.SeverityError, Message: "手机号：长度需为11位（当前10位）"},
			{Row: 5, Col: 2, RuleID: "NL01", Severity: core.SeverityWarning, Message: "特殊字符：——"},
		},
	})
	r.Add(FileResult{Path: "data/b.csv", HeaderRow: 1})
	r.Add(FileResult{Path: "data/c.csv", Empty: true})
	r.Add(FileResult{Path: "data/d.csv", Error: "permission denied"})
	r.Skipped = []loader.Skipped{{Path: "data/e.xlsx", Reason: "spreadsheet files are not supported; export to CSV"}}
	return r
}

func TestReport_Summary(t *testing.T) {
	r := sampleReport()

	assert.Equal(t, Summary{
		Files:      4,
		Clean:      1,
		WithIssues: 1,
		Failed:     2,
		Violations: 2,
		BySeverity: map[string]int{"error": 1, "warning": 1},
	}, r.Summary)
	assert.True(t, r.HasErrors())
	assert.True(t, r.HasViolations())
	assert.NotNil(t, r.Files[1].Violations)
}

func TestFileResult_Status(t *testing.T) {
	tests := []struct {
		name string
		f    FileResult
		want string
	}{
		{"ok", FileResult{}, "ok"},
		{"empty", FileResult{Empty: true}, "empty"},
		{"failed", FileResult{Error: "boom"}, "failed"},
		{"invalid", FileResult{Violations: []core.Violation{{Severity: core.SeverityError}}}, "invalid"},
		{"warnings", FileResult{Violations: []core.Violation{{Severity: core.SeverityInfo}}}, "warnings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.Status())
		})
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleReport()))

	want := "检查结果 - 2024-05-06 07:08:09\n\n" +
		"\n======== 检查文件：data/a.csv ========\n" +
		"识别到有效表头行：第2行\n" +
		"❌ 发现异常值：\n" +
		"   行4 列3：手机号：长度需为11位（当前10位）\n" +
		"   行5 列2：特殊字符：——\n" +
		"\n======== 检查文件：data/b.csv ========\n" +
		"识别到有效表头行：第1行\n" +
		"✅ 未发现异常值\n" +
		"\n======== 跳过文件：data/c.csv ========\n" +
		"原因：文件为空或无法解析\n" +
		"\n======== 读取失败：data/d.csv ========\n" +
		"错误原因：permission denied\n" +
		"\n======== 未检查的文件 ========\n" +
		"   data/e.xlsx（spreadsheet files are not supported; export to CSV）\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON_ReadJSON(t *testing.T) {
	var buf bytes.Buffer
	r := sampleReport()
	require.NoError(t, WriteJSON(&buf, r))

	out := buf.String()
	assert.Contains(t, out, `"severity": "error"`)
	assert.Contains(t, out, `"rule_id": "FT02"`)
	assert.Contains(t, out, "手机号")

	back, err := ReadJSON(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, r.Summary, back.Summary)
	require.Len(t, back.Files, 4)
	assert.Equal(t, r.Files[0].Violations, back.Files[0].Violations)
}

func TestReadJSON_Invalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{"))
	require.Error(t, err)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	r := sampleReport()
	r.Files[0].Violations[0].Message = "a|b"
	require.NoError(t, WriteMarkdown(&buf, r))

	out := buf.String()
	assert.Contains(t, out, "# 检查结果")
	assert.Contains(t, out, "- Files: 4 (clean 1, with issues 1, failed 2)")
	assert.Contains(t, out, "## data/a.csv")
	assert.Contains(t, out, `| 4 | 3 | FT02 | error | a\|b |`)
	assert.Contains(t, out, "读取失败：permission denied")
	assert.Contains(t, out, "- `data/e.xlsx`:")
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, sampleReport())

	out := buf.String()
	for _, s := range []string{"data/a.csv", "invalid", "empty", "failed", "ok", "Total", "4 files"} {
		assert.Contains(t, out, s)
	}
	assert.NotContains(t, out, "4 FILES")
}

func TestDefaultFileName(t *testing.T) {
	assert.Equal(t, "20240506检查结果.txt", DefaultFileName(at))
}
