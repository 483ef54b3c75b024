package lint

import "github.com/leapstack-labs/gridlint/pkg/core"

// Collector accumulates violations in discovery order and converts 0-based
// grid positions to the 1-based positions users see.
type Collector struct {
	violations []core.Violation
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records one finding at a 0-based (row, col).
func (c *Collector) Add(ruleID string, sev core.Severity, row, col int, message string) {
	c.violations = append(c.violations, core.Violation{
		Row:      row + 1,
		Col:      col + 1,
		RuleID:   ruleID,
		Severity: sev,
		Message:  message,
	})
}

// AddDiagnostics records table rule findings.
func (c *Collector) AddDiagnostics(ruleID string, sev core.Severity, diags []Diagnostic) {
	for _, d := range diags {
		c.Add(ruleID, sev, d.Row, d.Col, d.Message)
	}
}

// Len returns the number of recorded violations.
func (c *Collector) Len() int { return len(c.violations) }

// Violations returns the recorded violations.
func (c *Collector) Violations() []core.Violation {
	out := make([]core.Violation, len(c.violations))
	copy(out, c.violations)
	return out
}
