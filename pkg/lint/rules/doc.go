// Package rules assembles the built-in rule set.
//
// Rules are organized by kind:
//   - cell: checks applied to every checked cell (NL, FT, NM)
//   - table: checks over the whole table (DU, VL, SC)
//
// Cell rules are dispatched before table rules. Within each kind the order of
// Builtin is the dispatch order.
package rules
