// Package table contains the whole-table validation rules.
//
// Table rules resolve their own target columns from configuration against the
// header row. A configured field that matches no header makes that rule
// instance a silent no-op. Cells that cannot be parsed for a numeric rule are
// skipped, not reported.
package table
