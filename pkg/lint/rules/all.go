package rules

import (
	"github.com/leapstack-labs/gridlint/pkg/lint"
	"github.com/leapstack-labs/gridlint/pkg/lint/rules/cell"
	"github.com/leapstack-labs/gridlint/pkg/lint/rules/table"
)

// Builtin returns every built-in rule in dispatch order.
func Builtin() []lint.Rule {
	out := cell.All()
	return append(out, table.All()...)
}

// NewRegistry returns a registry holding the built-in rules.
func NewRegistry() *lint.Registry {
	return lint.MustRegistry(Builtin()...)
}
