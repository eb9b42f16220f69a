// Package eval is the expression evaluator behind embedded groups. It
// is deliberately small: literals evaluate to themselves, words to
// their bound values, set-words assign, and a handful of natives cover
// the arithmetic, comparison and series operations rules typically
// embed. The engine only depends on the Eval method, so a host with a
// richer evaluator can slot one in instead.
package eval

import (
	"context"
	"fmt"
	"strings"

	"github.com/dhamidi/parse/bind"
	"github.com/dhamidi/parse/value"
)

type Interp struct{}

func New() *Interp { return &Interp{} }

// Eval evaluates elems left to right and returns the last result.
func (in *Interp) Eval(ctx context.Context, env bind.Store, elems []value.Value) (value.Value, error) {
	var result value.Value = value.None{}
	rest := elems
	for len(rest) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		result, rest, err = in.next(ctx, env, rest)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// next evaluates one expression, returning its value and the
// unconsumed remainder.
func (in *Interp) next(ctx context.Context, env bind.Store, elems []value.Value) (value.Value, []value.Value, error) {
	if len(elems) == 0 {
		return nil, nil, fmt.Errorf("expression expected")
	}
	elem := elems[0]
	rest := elems[1:]

	switch e := elem.(type) {
	case value.Word:
		name := strings.ToLower(string(e))
		if nat, ok := natives[name]; ok {
			args := make([]value.Value, 0, nat.arity)
			for i := 0; i < nat.arity; i++ {
				v, r, err := in.next(ctx, env, rest)
				if err != nil {
					return nil, nil, fmt.Errorf("%s: %w", name, err)
				}
				args = append(args, v)
				rest = r
			}
			v, err := nat.apply(in, ctx, env, args)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", name, err)
			}
			return v, rest, nil
		}
		v, ok := env.Get(name)
		if !ok {
			return nil, nil, fmt.Errorf("%s has no value", e)
		}
		return v, rest, nil
	case value.SetWord:
		v, r, err := in.next(ctx, env, rest)
		if err != nil {
			return nil, nil, err
		}
		env.Set(string(e), v)
		return v, r, nil
	case value.GetWord:
		v, ok := env.Get(string(e))
		if !ok {
			return nil, nil, fmt.Errorf("%s has no value", e)
		}
		return v, rest, nil
	case value.LitWord:
		return value.Word(e), rest, nil
	case value.Quoted:
		return e.V, rest, nil
	case *value.Group:
		v, err := in.Eval(ctx, env, e.Elems())
		if err != nil {
			return nil, nil, err
		}
		return v, rest, nil
	}
	return elem, rest, nil
}

type native struct {
	arity int
	apply func(in *Interp, ctx context.Context, env bind.Store, args []value.Value) (value.Value, error)
}

var natives map[string]native

func init() {
	natives = map[string]native{
		"add": {2, func(_ *Interp, _ context.Context, _ bind.Store, args []value.Value) (value.Value, error) {
			a, b, err := twoIntegers(args)
			if err != nil {
				return nil, err
			}
			return a + b, nil
		}},
		"subtract": {2, func(_ *Interp, _ context.Context, _ bind.Store, args []value.Value) (value.Value, error) {
			a, b, err := twoIntegers(args)
			if err != nil {
				return nil, err
			}
			return a - b, nil
		}},
		"multiply": {2, func(_ *Interp, _ context.Context, _ bind.Store, args []value.Value) (value.Value, error) {
			a, b, err := twoIntegers(args)
			if err != nil {
				return nil, err
			}
			return a * b, nil
		}},
		"equal?": {2, func(_ *Interp, _ context.Context, _ bind.Store, args []value.Value) (value.Value, error) {
			return value.Logic(args[0].Equal(args[1], false)), nil
		}},
		"not-equal?": {2, func(_ *Interp, _ context.Context, _ bind.Store, args []value.Value) (value.Value, error) {
			return value.Logic(!args[0].Equal(args[1], false)), nil
		}},
		"lesser?": {2, func(_ *Interp, _ context.Context, _ bind.Store, args []value.Value) (value.Value, error) {
			a, b, err := twoIntegers(args)
			if err != nil {
				return nil, err
			}
			return value.Logic(a < b), nil
		}},
		"greater?": {2, func(_ *Interp, _ context.Context, _ bind.Store, args []value.Value) (value.Value, error) {
			a, b, err := twoIntegers(args)
			if err != nil {
				return nil, err
			}
			return value.Logic(a > b), nil
		}},
		"not": {1, func(_ *Interp, _ context.Context, _ bind.Store, args []value.Value) (value.Value, error) {
			return value.Logic(!Truthy(args[0])), nil
		}},
		"either": {3, func(in *Interp, ctx context.Context, env bind.Store, args []value.Value) (value.Value, error) {
			branch := args[1]
			if !Truthy(args[0]) {
				branch = args[2]
			}
			b, ok := branch.(*value.Block)
			if !ok {
				return nil, fmt.Errorf("branch must be a block, got %s", branch.Kind())
			}
			return in.Eval(ctx, env, b.Elems())
		}},
		"length?": {1, func(_ *Interp, _ context.Context, _ bind.Store, args []value.Value) (value.Value, error) {
			s, ok := args[0].(value.Series)
			if !ok {
				return nil, fmt.Errorf("not a series: %s", args[0].Kind())
			}
			return value.Integer(s.Len()), nil
		}},
		"first": {1, func(_ *Interp, _ context.Context, _ bind.Store, args []value.Value) (value.Value, error) {
			s, ok := args[0].(value.Series)
			if !ok {
				return nil, fmt.Errorf("not a series: %s", args[0].Kind())
			}
			if s.Len() == 0 {
				return value.None{}, nil
			}
			return value.Head(s).Element(), nil
		}},
		"pick": {2, func(_ *Interp, _ context.Context, _ bind.Store, args []value.Value) (value.Value, error) {
			s, ok := args[0].(value.Series)
			if !ok {
				return nil, fmt.Errorf("not a series: %s", args[0].Kind())
			}
			n, ok := args[1].(value.Integer)
			if !ok {
				return nil, fmt.Errorf("index must be an integer")
			}
			if n < 1 || int(n) > s.Len() {
				return value.None{}, nil
			}
			return value.At(s, int(n)-1).Element(), nil
		}},
		"append": {2, func(_ *Interp, _ context.Context, _ bind.Store, args []value.Value) (value.Value, error) {
			b, ok := args[0].(*value.Block)
			if !ok {
				return nil, fmt.Errorf("append target must be a block, got %s", args[0].Kind())
			}
			b.Append(args[1])
			return b, nil
		}},
		"make-bitset": {1, MakeBitset},
	}
}

func twoIntegers(args []value.Value) (value.Integer, value.Integer, error) {
	a, ok := args[0].(value.Integer)
	if !ok {
		return 0, 0, fmt.Errorf("not an integer: %s", args[0])
	}
	b, ok := args[1].(value.Integer)
	if !ok {
		return 0, 0, fmt.Errorf("not an integer: %s", args[1])
	}
	return a, b, nil
}

// Truthy reports dialect truthiness: none and false are false,
// everything else is true.
func Truthy(v value.Value) bool {
	switch t := v.(type) {
	case value.None:
		return false
	case value.Logic:
		return bool(t)
	}
	return true
}

// MakeBitset builds a bitset from a text spec. Plain characters add
// themselves; "a-z" adds a range.
func MakeBitset(_ *Interp, _ context.Context, _ bind.Store, args []value.Value) (value.Value, error) {
	t, ok := args[0].(*value.Text)
	if !ok {
		return nil, fmt.Errorf("spec must be text, got %s", args[0].Kind())
	}
	spec := []rune(t.Text())
	set := value.NewBitset()
	for i := 0; i < len(spec); i++ {
		if i+2 < len(spec) && spec[i+1] == '-' {
			if spec[i] > spec[i+2] {
				return nil, fmt.Errorf("reversed range %c-%c", spec[i], spec[i+2])
			}
			set.AddRange(spec[i], spec[i+2])
			i += 2
			continue
		}
		set.Add(spec[i])
	}
	return set, nil
}
