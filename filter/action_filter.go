package filter

import (
	"fmt"
	"regexp"

	"comments-contract/types"
)

// ActionFilter decides whether a replayed transaction is routed to the contract.
type ActionFilter interface {
	ShouldProcess(tx *types.Transaction) bool
}

// RegexActionFilter matches "contract.action" against a pattern. With
// shouldIgnore set, matching transactions are dropped instead of kept.
type RegexActionFilter struct {
	actionRegex  *regexp.Regexp
	shouldIgnore bool
}

func NewRegexActionFilter(pattern string, shouldIgnore bool) (*RegexActionFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid action filter %q: %v", pattern, err)
	}
	return &RegexActionFilter{actionRegex: re, shouldIgnore: shouldIgnore}, nil
}

func (f *RegexActionFilter) ShouldProcess(tx *types.Transaction) bool {
	matched := f.actionRegex.MatchString(tx.Contract + "." + tx.Action)
	if f.shouldIgnore {
		return !matched
	}
	return matched
}

// ContractFilter keeps only the transactions addressed to contract.
func ContractFilter(contract string) ActionFilter {
	f, _ := NewRegexActionFilter("^"+regexp.QuoteMeta(contract)+`\.`, false)
	return f
}
