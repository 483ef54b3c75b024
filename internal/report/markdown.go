package report

import (
	"fmt"
	"io"
	"strings"
)

// WriteMarkdown writes the report as Markdown, one section per file.
func WriteMarkdown(w io.Writer, r *Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# 检查结果\n\n")
	fmt.Fprintf(&b, "- Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	if r.Root != "" {
		fmt.Fprintf(&b, "- Root: `%s`\n", r.Root)
	}
	fmt.Fprintf(&b, "- Files: %d (clean %d, with issues %d, failed %d)\n", r.Summary.Files, r.Summary.Clean, r.Summary.WithIssues, r.Summary.Failed)
	fmt.Fprintf(&b, "- Violations: %d\n", r.Summary.Violations)

	for _, f := range r.Files {
		fmt.Fprintf(&b, "\n## %s\n\n", f.Path)
		switch {
		case f.Error != "":
			fmt.Fprintf(&b, "读取失败：%s\n", f.Error)
			continue
		case f.Empty:
			b.WriteString("文件为空或无法解析\n")
			continue
		}
		fmt.Fprintf(&b, "Header row: %d\n\n", f.HeaderRow)
		if len(f.Violations) == 0 {
			b.WriteString("✅ 未发现异常值\n")
			continue
		}
		b.WriteString("| Row | Col | Rule | Severity | Message |\n")
		b.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, v := range f.Violations {
			fmt.Fprintf(&b, "| %d | %d | %s | %s | %s |\n", v.Row, v.Col, v.RuleID, v.Severity, escapeCell(v.Message))
		}
	}

	if len(r.Skipped) > 0 {
		b.WriteString("\n## Skipped\n\n")
		for _, s := range r.Skipped {
			fmt.Fprintf(&b, "- `%s`: %s\n", s.Path, s.Reason)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
