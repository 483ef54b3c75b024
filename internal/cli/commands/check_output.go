package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/gridlint/internal/cli/config"
	"github.com/leapstack-labs/gridlint/internal/cli/output"
	"github.com/leapstack-labs/gridlint/internal/report"
	"github.com/leapstack-labs/gridlint/pkg/core"
)

// emitReport renders rep in the renderer's mode and writes the report file
// when one is configured.
func emitReport(cmdCtx *CommandContext, cfg *config.Config, rep *report.Report) error {
	r := cmdCtx.Renderer
	var err error
	switch r.EffectiveMode() {
	case output.ModeJSON:
		err = report.WriteJSON(r.Writer(), rep)
	case output.ModeMarkdown:
		err = report.WriteMarkdown(r.Writer(), rep)
	default:
		renderCheckText(r, rep)
	}
	if err != nil {
		return err
	}

	if cfg.Report == "" {
		return nil
	}
	path, err := writeReportFile(cfg.Report, rep)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("report written", "path", path)
	if r.EffectiveMode() != output.ModeJSON {
		_, _ = fmt.Fprintf(r.ErrWriter(), "结果已保存到 %s\n", path)
	}
	return nil
}

// renderCheckText outputs the report in styled text format.
func renderCheckText(r *output.Renderer, rep *report.Report) {
	styles := r.Styles()

	r.Println("")
	r.Header(1, fmt.Sprintf("Checked %d files", rep.Summary.Files))
	r.Println("")

	for _, f := range rep.Files {
		switch f.Status() {
		case "ok":
			r.StatusLine(f.Path, "success", headerDetail(f))
		case "failed":
			r.StatusLine(f.Path, "failed", f.Error)
		case "empty":
			r.StatusLine(f.Path, "skipped", "empty")
		default:
			status := "warning"
			if core.HasErrors(f.Violations) {
				status = "failed"
			}
			r.StatusLine(f.Path, status, fmt.Sprintf("%s, %d violations", headerDetail(f), len(f.Violations)))
			for _, v := range f.Violations {
				r.Printf("    %s  %s\n", styles.Muted.Render(fmt.Sprintf("行%d 列%d", v.Row, v.Col)), severityStyle(styles, v.Severity).Render(v.Message))
			}
		}
	}

	for _, s := range rep.Skipped {
		r.StatusLine(s.Path, "skipped", s.Reason)
	}

	r.Println("")
	report.WriteSummary(r.Writer(), rep)
	r.Println("")

	if rep.HasViolations() {
		r.Println(styles.Error.Render(fmt.Sprintf("❌ %d violations in %d files", rep.Summary.Violations, rep.Summary.WithIssues)))
	} else {
		r.Success("未发现异常值")
	}
	if rep.RunID != "" {
		r.Println(styles.Muted.Render("Run " + rep.RunID))
	}
}

func headerDetail(f report.FileResult) string {
	return fmt.Sprintf("header row %d", f.HeaderRow)
}

// writeReportFile writes rep to path, picking the format from the
// extension. "auto" is the dated text report in the working directory.
func writeReportFile(path string, rep *report.Report) (string, error) {
	if path == "auto" {
		path = report.DefaultFileName(rep.GeneratedAt)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // user-chosen report path
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := writeReport(f, strings.ToLower(filepath.Ext(path)), rep); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, nil
}

func writeReport(w io.Writer, ext string, rep *report.Report) error {
	switch ext {
	case ".json":
		return report.WriteJSON(w, rep)
	case ".md", ".markdown":
		return report.WriteMarkdown(w, rep)
	default:
		return report.WriteText(w, rep)
	}
}
