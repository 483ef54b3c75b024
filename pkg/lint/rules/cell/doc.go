// Package cell contains the per-cell validation rules.
//
// Cell rules see one trimmed cell at a time plus the field type of its column.
// Field-type rules (identity number, phone, postcode) apply only when the
// column was classified with their type; empty cells are left to the null rule.
package cell
