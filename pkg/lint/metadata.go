package lint

import "github.com/leapstack-labs/gridlint/pkg/core"

// GetRuleInfo extracts RuleInfo from a rule.
func GetRuleInfo(r Rule) core.RuleInfo {
	info := core.RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		ConfigKeys:      r.ConfigKeys(),
		Kind:            r.Kind(),
	}
	if _, ok := r.(HeaderChecker); ok {
		info.ChecksHeader = true
	}
	if d, ok := r.(documented); ok {
		m := d.meta()
		info.Rationale = m.Rationale
		info.BadExample = m.BadExample
		info.GoodExample = m.GoodExample
	}
	return info
}

type documented interface {
	meta() Meta
}

func (r metaRule) meta() Meta { return r.m }
