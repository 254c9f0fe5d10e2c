package rules

import (
	"sort"

	"github.com/qadapt-io/qadapt/ir"
)

type orderedRule struct {
	rule *Rule
	seq  int
}

// RuleSet is an ordered collection of rules. Rules are consulted in
// descending priority order, with insertion order as a stable tie break,
// and at most one rule fires per instruction per visit.
type RuleSet struct {
	rules []orderedRule
}

// NewRuleSet creates an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{}
}

// Add appends a rule to the set.
func (rs *RuleSet) Add(rule *Rule) {
	rs.rules = append(rs.rules, orderedRule{rule: rule, seq: len(rs.rules)})
	sort.SliceStable(rs.rules, func(i, j int) bool {
		if rs.rules[i].rule.Priority != rs.rules[j].rule.Priority {
			return rs.rules[i].rule.Priority > rs.rules[j].rule.Priority
		}
		return rs.rules[i].seq < rs.rules[j].seq
	})
}

// FirstMatch returns the highest-priority rule whose predicate holds for
// the instruction. Mutually exclusive rules must be ordered most specific
// first, which the Factory's category order establishes by default.
func (rs *RuleSet) FirstMatch(instr *ir.Instruction) (*Rule, bool) {
	for _, or := range rs.rules {
		if or.rule.Match(instr) {
			return or.rule, true
		}
	}
	return nil, false
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Names returns the rule names in consultation order.
func (rs *RuleSet) Names() []string {
	names := make([]string, len(rs.rules))
	for i, or := range rs.rules {
		names[i] = or.rule.Name
	}
	return names
}
