package table

import "github.com/leapstack-labs/gridlint/pkg/lint"

// All returns the table rules in dispatch order.
func All() []lint.Rule {
	return []lint.Rule{
		lint.WrapTable(HeaderDuplicate),
		lint.WrapTable(RowDuplicate),
		lint.WrapTable(CompositeKey),
		lint.WrapTable(Range),
		lint.WrapTable(Length),
		lint.WrapTable(Enum),
		lint.WrapTable(DateFormat),
		lint.WrapTable(Encrypt),
		lint.WrapTable(SensitiveWord),
	}
}
