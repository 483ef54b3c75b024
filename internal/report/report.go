// Package report renders validation results as text, JSON, Markdown and
// summary tables.
package report

import (
	"time"

	"github.com/leapstack-labs/gridlint/internal/loader"
	"github.com/leapstack-labs/gridlint/pkg/core"
)

// FileResult is the outcome of validating one table.
type FileResult struct {
	Path       string           `json:"path"`
	HeaderRow  int              `json:"header_row"` // 1-based, 0 when unknown
	Headers    []string         `json:"headers,omitempty"`
	Violations []core.Violation `json:"violations"`
	Empty      bool             `json:"empty,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// Status is a one-word description of the result.
func (f FileResult) Status() string {
	switch {
	case f.Error != "":
		return "failed"
	case f.Empty:
		return "empty"
	case core.HasErrors(f.Violations):
		return "invalid"
	case len(f.Violations) > 0:
		return "warnings"
	default:
		return "ok"
	}
}

// Summary aggregates a report.
type Summary struct {
	Files      int            `json:"files"`
	Clean      int            `json:"clean"`
	WithIssues int            `json:"with_issues"`
	Failed     int            `json:"failed"`
	Violations int            `json:"violations"`
	BySeverity map[string]int `json:"by_severity,omitempty"`
}

// Report is the outcome of one validation run.
type Report struct {
	RunID       string           `json:"run_id,omitempty"`
	Root        string           `json:"root"`
	GeneratedAt time.Time        `json:"generated_at"`
	Files       []FileResult     `json:"files"`
	Skipped     []loader.Skipped `json:"skipped,omitempty"`
	Summary     Summary          `json:"summary"`
}

// New creates an empty report.
func New(root string, at time.Time) *Report {
	return &Report{Root: root, GeneratedAt: at, Files: []FileResult{}}
}

// Add appends a file result and updates the summary.
func (r *Report) Add(f FileResult) {
	if f.Violations == nil {
		f.Violations = []core.Violation{}
	}
	r.Files = append(r.Files, f)

	s := &r.Summary
	s.Files++
	switch {
	case f.Error != "" || f.Empty:
		s.Failed++
	case len(f.Violations) > 0:
		s.WithIssues++
	default:
		s.Clean++
	}
	s.Violations += len(f.Violations)
	for sev, n := range core.CountBySeverity(f.Violations) {
		if s.BySeverity == nil {
			s.BySeverity = make(map[string]int)
		}
		s.BySeverity[sev.String()] += n
	}
}

// HasErrors reports whether any file has an error-severity violation or
// could not be read.
func (r *Report) HasErrors() bool {
	for _, f := range r.Files {
		if f.Error != "" || core.HasErrors(f.Violations) {
			return true
		}
	}
	return false
}

// HasViolations reports whether any violation was found.
func (r *Report) HasViolations() bool {
	return r.Summary.Violations > 0
}

// DefaultFileName is the report name used for "--report auto".
func DefaultFileName(at time.Time) string {
	return at.Format("20060102") + "检查结果.txt"
}
