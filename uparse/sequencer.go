package uparse

import (
	"errors"

	"github.com/dhamidi/parse/value"
)

// parseBlock interprets a rule block as |-separated alternatives.
// Alternation is structural rather than a combinator: each step is
// parsified and run one at a time, so mutations done by embedded
// expressions are visible to the later steps of the same alternative,
// and a failed step short-circuits straight to the next bar.
//
// The element slice is snapshotted on entry, so a group expression
// mutating the block it appears in cannot change the rules already
// being interpreted.
func parseBlock(ctx *Ctx, block *value.Block, in value.Position) (value.Position, bool, error) {
	if err := ctx.enter(); err != nil {
		return in, false, err
	}
	defer ctx.leave()

	rules := make([]value.Value, block.Len())
	copy(rules, block.Elems())

	pos := in
	for {
		for len(rules) > 0 && rules[0].Kind() == value.KindComma {
			rules = rules[1:]
		}
		if len(rules) == 0 {
			return pos, true, nil
		}
		if rules[0].Kind() == value.KindBar {
			// Everything before the bar matched; this alternative
			// has already succeeded, even with zero consumption.
			return pos, true, nil
		}

		action, rest, err := parsify(ctx, rules)
		if err != nil {
			return in, false, err
		}
		out, ok, err := action.Run(ctx, pos)
		if err != nil {
			if errors.Is(err, errBreak) {
				return pos, true, nil
			}
			return in, false, err
		}
		if !ok {
			next := nextAlternative(rest)
			if next == nil {
				return in, false, nil
			}
			rules = next
			pos = in
			continue
		}
		pos = out
		rules = rest
	}
}

// nextAlternative scans forward for the next bar and returns the rules
// just past it, or nil when no alternative remains.
func nextAlternative(rules []value.Value) []value.Value {
	for i, e := range rules {
		if e.Kind() == value.KindBar {
			return rules[i+1:]
		}
	}
	return nil
}
