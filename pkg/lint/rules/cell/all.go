package cell

import "github.com/leapstack-labs/gridlint/pkg/lint"

// All returns the cell rules in dispatch order.
func All() []lint.Rule {
	return []lint.Rule{
		lint.WrapCell(Null),
		lint.WrapCell(IDNumber),
		lint.WrapCell(Phone),
		lint.WrapCell(Postcode),
		lint.WrapCell(Precision),
	}
}
