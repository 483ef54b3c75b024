package lint

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/gridlint/pkg/core"
)

// Registry errors.
var (
	ErrDuplicateRule = errors.New("duplicate rule")
	ErrInvalidRule   = errors.New("invalid rule")
	ErrUnknownRule   = errors.New("unknown rule")
)

// Registry is a closed, ordered set of rules. Registration order is dispatch
// order. A Registry is read-only after construction.
type Registry struct {
	rules []Rule
	byRef map[string]Rule
}

// NewRegistry builds a registry and verifies every rule: IDs and names must
// be present and unique, and each rule must implement the interface its
// Kind declares.
func NewRegistry(rules ...Rule) (*Registry, error) {
	reg := &Registry{byRef: make(map[string]Rule, len(rules)*2)}

	for _, r := range rules {
		if r == nil {
			return nil, fmt.Errorf("%w: nil rule", ErrInvalidRule)
		}
		if r.ID() == "" || r.Name() == "" {
			return nil, fmt.Errorf("%w: rule %q must have an ID and a name", ErrInvalidRule, r.ID())
		}
		switch r.Kind() {
		case core.RuleKindCell:
			if _, ok := r.(CellRule); !ok {
				return nil, fmt.Errorf("%w: %s declares kind cell but does not implement CellRule", ErrInvalidRule, r.ID())
			}
		case core.RuleKindTable:
			if _, ok := r.(TableRule); !ok {
				return nil, fmt.Errorf("%w: %s declares kind table but does not implement TableRule", ErrInvalidRule, r.ID())
			}
		default:
			return nil, fmt.Errorf("%w: %s has unknown kind %q", ErrInvalidRule, r.ID(), r.Kind())
		}

		for _, ref := range []string{r.ID(), r.Name()} {
			key := refKey(ref)
			if prev, exists := reg.byRef[key]; exists {
				return nil, fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateRule, ref, prev.ID(), r.ID())
			}
			reg.byRef[key] = r
		}
		reg.rules = append(reg.rules, r)
	}

	return reg, nil
}

// MustRegistry is NewRegistry that panics on error. Use for built-in rule sets.
func MustRegistry(rules ...Rule) *Registry {
	reg, err := NewRegistry(rules...)
	if err != nil {
		panic(err)
	}
	return reg
}

// All returns every rule in dispatch order.
func (r *Registry) All() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Count returns the number of rules.
func (r *Registry) Count() int { return len(r.rules) }

// Lookup finds a rule by ID or name, case-insensitively.
func (r *Registry) Lookup(ref string) (Rule, bool) {
	rule, ok := r.byRef[refKey(ref)]
	return rule, ok
}

// Resolve is Lookup returning ErrUnknownRule for a miss.
func (r *Registry) Resolve(ref string) (Rule, error) {
	rule, ok := r.Lookup(ref)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, ref)
	}
	return rule, nil
}

// ByGroup returns the rules of one group in dispatch order.
func (r *Registry) ByGroup(group string) []Rule {
	var out []Rule
	for _, rule := range r.rules {
		if rule.Group() == group {
			out = append(out, rule)
		}
	}
	return out
}

// Groups returns the sorted group names.
func (r *Registry) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, rule := range r.rules {
		if !seen[rule.Group()] {
			seen[rule.Group()] = true
			groups = append(groups, rule.Group())
		}
	}
	sort.Strings(groups)
	return groups
}

// Infos returns metadata for every rule in dispatch order.
func (r *Registry) Infos() []core.RuleInfo {
	infos := make([]core.RuleInfo, 0, len(r.rules))
	for _, rule := range r.rules {
		infos = append(infos, GetRuleInfo(rule))
	}
	return infos
}

func refKey(ref string) string {
	return strings.ToLower(strings.TrimSpace(ref))
}
