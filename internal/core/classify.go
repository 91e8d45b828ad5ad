package core

import (
	"fmt"
	"strconv"
	"strings"

	api "github.com/seqmark-dev/seqmark/pkg/api"
)

// DefaultBound is the upper limit used when the caller does not supply one.
const DefaultBound = 100

// DefaultRules returns the reference rule set: multiples of 3 are marked
// "Fizz", multiples of 5 "Buzz", multiples of both "FizzBuzz".
func DefaultRules() []api.Rule {
	return []api.Rule{
		{Divisor: 3, Marker: "Fizz"},
		{Divisor: 5, Marker: "Buzz"},
	}
}

// RuleSet is an ordered, validated set of divisor/marker rules.
type RuleSet struct {
	rules []api.Rule
}

// NewRuleSet validates rules and preserves their declared order. An empty
// slice falls back to DefaultRules.
func NewRuleSet(rules []api.Rule) (RuleSet, error) {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	for i, r := range rules {
		if r.Divisor < 1 {
			return RuleSet{}, fmt.Errorf("%w: rule %d: divisor must be >= 1, got %d", ErrInvalidArgument, i, r.Divisor)
		}
		if r.Marker == "" {
			return RuleSet{}, fmt.Errorf("%w: rule %d: marker must not be empty", ErrInvalidArgument, i)
		}
	}
	rs := RuleSet{rules: make([]api.Rule, len(rules))}
	copy(rs.rules, rules)
	return rs, nil
}

// Label returns the label for a single integer: the concatenation of every
// matching rule's marker in rule order, or the decimal form of i when no
// rule matches.
func (rs RuleSet) Label(i int) string {
	var b strings.Builder
	for _, r := range rs.rules {
		if i%r.Divisor == 0 {
			b.WriteString(r.Marker)
		}
	}
	if b.Len() == 0 {
		return strconv.Itoa(i)
	}
	return b.String()
}

// Classify labels the integers 1..bound in increasing order. It is a pure
// function of the rule set and bound: no I/O, no cross-iteration state.
// The result has exactly bound elements, index-aligned so labels[0] is i=1.
func (rs RuleSet) Classify(bound int) ([]string, error) {
	if bound < 1 {
		return nil, fmt.Errorf("%w: bound must be a positive integer, got %d", ErrInvalidArgument, bound)
	}
	labels := make([]string, bound)
	for i := 1; i <= bound; i++ {
		labels[i-1] = rs.Label(i)
	}
	return labels, nil
}

// String renders the rule set as a stable fingerprint, e.g. "3=Fizz,5=Buzz".
func (rs RuleSet) String() string {
	parts := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		parts[i] = fmt.Sprintf("%d=%s", r.Divisor, r.Marker)
	}
	return strings.Join(parts, ",")
}

// Rules returns a copy of the ordered rules.
func (rs RuleSet) Rules() []api.Rule {
	out := make([]api.Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}
