package lint

import (
	"log/slog"

	"github.com/leapstack-labs/gridlint/pkg/core"
	"github.com/leapstack-labs/gridlint/pkg/grid"
)

// =============================================================================
// Rule Interfaces
// =============================================================================

// Rule is the metadata shared by every validation rule.
type Rule interface {
	ID() string
	Name() string
	Group() string
	Description() string
	DefaultSeverity() core.Severity
	ConfigKeys() []string
	Kind() core.RuleKind
}

// CellRule checks a single cell. It returns true and a message for a violation.
// Rules must treat an empty or unknown field type as "does not apply".
type CellRule interface {
	Rule
	CheckCell(cell Cell, opts map[string]any) (bool, string)
}

// HeaderChecker is implemented by cell rules that also check header cells.
type HeaderChecker interface {
	CheckHeader(text string, opts map[string]any) (bool, string)
}

// TableRule checks a whole table.
type TableRule interface {
	Rule
	CheckTable(t *Table, opts map[string]any) []Diagnostic
}

// OptionsValidator is implemented by rules that can reject their options up
// front. A rule whose options fail validation is not loaded.
type OptionsValidator interface {
	ValidateOptions(opts map[string]any) error
}

// ContentScanner finds banned words in free text.
type ContentScanner interface {
	Scan(text string) []string
}

// =============================================================================
// Units of work
// =============================================================================

// Cell is the input of a cell rule. Row and Col are 0-based grid positions.
type Cell struct {
	Row       int
	Col       int
	Text      string // trimmed cell text
	Header    string // trimmed header text of the column
	FieldType string // "" when the header has no recognized keyword
}

// Diagnostic is a finding produced by a table rule, at 0-based grid positions.
type Diagnostic struct {
	Row     int
	Col     int
	Message string
}

// Table is the input of a table rule.
type Table struct {
	Grid      grid.Accessor
	HeaderRow int
	Headers   *grid.HeaderIndex
	Skipped   map[int]bool
	Scanner   ContentScanner
	Logger    *slog.Logger
}

// NewTable builds a Table for g with the given header row and skipped columns.
func NewTable(g grid.Accessor, headerRow int, skipped map[int]bool) *Table {
	if skipped == nil {
		skipped = map[int]bool{}
	}
	return &Table{
		Grid:      g,
		HeaderRow: headerRow,
		Headers:   grid.NewHeaderIndex(grid.HeaderCells(g, headerRow)),
		Skipped:   skipped,
		Logger:    slog.New(slog.DiscardHandler),
	}
}

// FirstDataRow returns the index of the first row after the header.
func (t *Table) FirstDataRow() int { return t.HeaderRow + 1 }

// Rows returns the number of grid rows.
func (t *Table) Rows() int { return t.Grid.Rows() }

// Cols returns the number of grid columns.
func (t *Table) Cols() int { return t.Grid.Cols() }

// Text returns the trimmed text of a cell.
func (t *Table) Text(row, col int) string { return grid.Text(t.Grid, row, col) }

// IsSkipped reports whether col is excluded from cell-level scanning.
func (t *Table) IsSkipped(col int) bool { return t.Skipped[col] }

// Unresolved logs, at debug level, a configured field that matched no header.
// Unresolved fields are not errors.
func (t *Table) Unresolved(rule, field string) {
	if t.Logger != nil {
		t.Logger.Debug("field not found in header; rule instance skipped", "rule", rule, "field", field)
	}
}
