package uparse

import (
	"errors"
	"fmt"

	"github.com/dhamidi/parse/value"
)

// parsify consumes one rule step from rules and returns the bound
// action plus the unconsumed remainder. Dispatch order: keyword by
// spelling, then variable fallback, then the element's own datatype.
func parsify(ctx *Ctx, rules []value.Value) (*Action, []value.Value, error) {
	if len(rules) == 0 {
		return nil, nil, ErrRuleExhausted
	}
	elem := rules[0]
	rest := rules[1:]

	if elem.Kind() == value.KindComma {
		return nil, nil, ErrBareSeparator
	}

	// A get-group runs while the rule stream is being read; its
	// result takes the element's place.
	if gg, ok := elem.(*value.GetGroup); ok {
		v, err := ctx.evalGroup(gg.Elems())
		if err != nil {
			return nil, nil, err
		}
		elem = v
	}

	switch e := elem.(type) {
	case value.Word:
		if def, ok := ctx.Table.Get(KeywordKey(string(e))); ok {
			return combinatorize(ctx, def, rest, nil)
		}
		// Not a keyword: resolve as a variable and dispatch on the
		// held value's type. This is what lets rules live in
		// variables.
		v, ok := ctx.Env.Get(string(e))
		if !ok {
			return nil, nil, fmt.Errorf("%w: word %s", ErrUnhandled, e)
		}
		return dispatchValue(ctx, v, rest)
	case *value.Path:
		v, err := resolvePath(ctx, e)
		if err != nil {
			return nil, nil, err
		}
		return dispatchValue(ctx, v, rest)
	}

	return dispatchValue(ctx, elem, rest)
}

// dispatchValue binds a combinator for a literal by its datatype tag.
func dispatchValue(ctx *Ctx, v value.Value, rest []value.Value) (*Action, []value.Value, error) {
	def, ok := ctx.Table.Get(TypeKey(v.Kind()))
	if !ok {
		return nil, nil, fmt.Errorf("%w: type %s", ErrUnhandled, v.Kind())
	}
	return combinatorize(ctx, def, rest, v)
}

// combinatorize gathers def's parameters from the rule stream, in
// declaration order, and returns the action with only the input
// unbound.
func combinatorize(ctx *Ctx, def *Def, rules []value.Value, val value.Value) (*Action, []value.Value, error) {
	a := &Action{Def: def, Value: val}
	for _, p := range def.Params {
		switch p {
		case ParamQuoted:
			if len(rules) == 0 {
				return nil, nil, fmt.Errorf("%s: %w", def.Name, ErrRuleExhausted)
			}
			arg := rules[0]
			if arg.Kind() == value.KindComma {
				return nil, nil, fmt.Errorf("%s: %w", def.Name, ErrBareSeparator)
			}
			a.Args = append(a.Args, arg)
			rules = rules[1:]
		case ParamSub:
			sub, rest, err := parsify(ctx, rules)
			if err != nil {
				if errors.Is(err, ErrRuleExhausted) {
					err = fmt.Errorf("%s: %w", def.Name, err)
				}
				return nil, nil, err
			}
			a.Subs = append(a.Subs, sub)
			rules = rest
		}
	}
	return a, rules, nil
}

// resolvePath looks up the path head and picks through the remaining
// integer segments (1-based).
func resolvePath(ctx *Ctx, p *value.Path) (value.Value, error) {
	if len(p.Segments) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrUnhandled)
	}
	head, ok := p.Segments[0].(value.Word)
	if !ok {
		return nil, fmt.Errorf("%w: path must start with a word, got %s", ErrUnhandled, p.Segments[0].Kind())
	}
	v, ok := ctx.Env.Get(string(head))
	if !ok {
		return nil, fmt.Errorf("%w: path %s", ErrUnhandled, p)
	}
	for _, seg := range p.Segments[1:] {
		switch s := seg.(type) {
		case value.Integer:
			series, ok := v.(value.Series)
			if !ok {
				return nil, fmt.Errorf("path %s: cannot pick into %s", p, v.Kind())
			}
			if s < 1 || int(s) > series.Len() {
				return nil, fmt.Errorf("path %s: index %d out of range", p, s)
			}
			v = value.At(series, int(s)-1).Element()
		default:
			return nil, fmt.Errorf("path %s: bad segment %s", p, seg.Kind())
		}
	}
	return v, nil
}
