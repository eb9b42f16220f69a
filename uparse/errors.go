package uparse

import "errors"

// Structural errors abort the whole parse call; alternation never
// recovers from them. Ordinary no-match is not an error at all, it is
// the false result of a matcher.
var (
	// ErrUnhandled marks a rule element with no table entry.
	ErrUnhandled = errors.New("unhandled rule element")
	// ErrBareSeparator marks a comma where an element was expected.
	ErrBareSeparator = errors.New("separator where a rule element was expected")
	// ErrRuleExhausted marks a keyword missing one of its arguments.
	ErrRuleExhausted = errors.New("rule stream exhausted")
	// ErrSetWidth marks a set whose rule consumed more than one element.
	ErrSetWidth = errors.New("set: rule matched more than one element")
	// ErrNotASeries marks into applied to a non-series element.
	ErrNotASeries = errors.New("into: element is not a series")
	// ErrHardFail is raised by the base table's fail keyword.
	ErrHardFail = errors.New("fail: rule aborted")
	// ErrDepth guards against runaway rule recursion.
	ErrDepth = errors.New("rule recursion too deep")
)

// errBreak is the third outcome category: break unwinds to the
// innermost block sequencer, which converts it into immediate success.
// It never escapes a block, so callers of Parse cannot observe it.
var errBreak = errors.New("break outside a block")
