package core

import "fmt"

// Violation is one rule failure located at a cell of the validated table.
// Row and Col are 1-based, matching what a spreadsheet user sees.
type Violation struct {
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// String renders the violation the way text reports print it.
func (v Violation) String() string {
	return fmt.Sprintf("行%d 列%d：%s", v.Row, v.Col, v.Message)
}

// CountBySeverity tallies violations per severity.
func CountBySeverity(vs []Violation) map[Severity]int {
	counts := make(map[Severity]int)
	for _, v := range vs {
		counts[v.Severity]++
	}
	return counts
}

// HasErrors reports whether any violation has error severity.
func HasErrors(vs []Violation) bool {
	for _, v := range vs {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}
