package report

import (
	"fmt"
	"io"
	"strings"
)

// WriteText writes the report in the plain-text layout users archive
// alongside the checked files.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "检查结果 - %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	for _, f := range r.Files {
		switch {
		case f.Error != "":
			fmt.Fprintf(&b, "\n======== 读取失败：%s ========\n", f.Path)
			fmt.Fprintf(&b, "错误原因：%s\n", f.Error)
		case f.Empty:
			fmt.Fprintf(&b, "\n======== 跳过文件：%s ========\n", f.Path)
			b.WriteString("原因：文件为空或无法解析\n")
		default:
			fmt.Fprintf(&b, "\n======== 检查文件：%s ========\n", f.Path)
			fmt.Fprintf(&b, "识别到有效表头行：第%d行\n", f.HeaderRow)
			if len(f.Violations) == 0 {
				b.WriteString("✅ 未发现异常值\n")
				continue
			}
			b.WriteString("❌ 发现异常值：\n")
			for _, v := range f.Violations {
				fmt.Fprintf(&b, "   %s\n", v.String())
			}
		}
	}

	if len(r.Skipped) > 0 {
		b.WriteString("\n======== 未检查的文件 ========\n")
		for _, s := range r.Skipped {
			fmt.Fprintf(&b, "   %s（%s）\n", s.Path, s.Reason)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
