package uparse

import (
	"fmt"

	"github.com/dhamidi/parse/value"
)

func matchEnd(_ *Ctx, _ *Action, in value.Position) (value.Position, bool, error) {
	if in.AtEnd() {
		return in, true, nil
	}
	return in, false, nil
}

func matchSkip(_ *Ctx, _ *Action, in value.Position) (value.Position, bool, error) {
	if in.AtEnd() {
		return in, false, nil
	}
	return in.Next(), true, nil
}

// matchNot succeeds without consuming when its rule does not match.
func matchNot(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	_, ok, err := a.Subs[0].Run(ctx, in)
	if err != nil {
		return in, false, err
	}
	return in, !ok, nil
}

// matchAhead succeeds without consuming when its rule matches.
func matchAhead(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	_, ok, err := a.Subs[0].Run(ctx, in)
	if err != nil {
		return in, false, err
	}
	return in, ok, nil
}

// matchTo advances one element at a time until its rule matches at the
// current position, and stops just before the match. It fails only by
// running out of input first.
func matchTo(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	pos := in
	for {
		if err := ctx.interrupted(); err != nil {
			return in, false, err
		}
		_, ok, err := a.Subs[0].Run(ctx, pos)
		if err != nil {
			return in, false, err
		}
		if ok {
			return pos, true, nil
		}
		if pos.AtEnd() {
			return in, false, nil
		}
		pos = pos.Next()
	}
}

// matchThru is matchTo, but stops just past the match.
func matchThru(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	pos := in
	for {
		if err := ctx.interrupted(); err != nil {
			return in, false, err
		}
		out, ok, err := a.Subs[0].Run(ctx, pos)
		if err != nil {
			return in, false, err
		}
		if ok {
			return out, true, nil
		}
		if pos.AtEnd() {
			return in, false, nil
		}
		pos = pos.Next()
	}
}

// matchSeek jumps to an absolute 1-based offset or to a position held
// in a variable. A position from another container is a structural
// error, never a quiet re-anchor.
func matchSeek(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	target := a.Args[0]
	if w, ok := target.(value.Word); ok {
		v, bound := ctx.Env.Get(string(w))
		if !bound {
			return in, false, fmt.Errorf("seek: %s has no value", w)
		}
		target = v
	}
	switch t := target.(type) {
	case value.Integer:
		return seekOffset(in, int(t))
	case value.Position:
		if !t.SameSeries(in) {
			return in, false, fmt.Errorf("seek: %w", value.ErrCrossSeries)
		}
		return t, true, nil
	}
	return in, false, fmt.Errorf("seek: cannot seek to %s", target.Kind())
}

func seekOffset(in value.Position, n int) (value.Position, bool, error) {
	if n < 1 || n > in.Series.Len()+1 {
		return in, false, fmt.Errorf("seek: offset %d out of range", n)
	}
	return value.At(in.Series, n-1), true, nil
}

// matchMark is the bare SET-WORD!: capture the current position into
// the variable without moving.
func matchMark(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	w := a.Value.(value.SetWord)
	ctx.Env.Set(string(w), in)
	return in, true, nil
}

// matchResume is the bare GET-WORD!: seek to a previously captured
// position in the same container.
func matchResume(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	w := a.Value.(value.GetWord)
	v, bound := ctx.Env.Get(string(w))
	if !bound {
		return in, false, fmt.Errorf(":%s has no value", string(w))
	}
	pos, ok := v.(value.Position)
	if !ok {
		return in, false, fmt.Errorf(":%s does not hold a position (got %s)", string(w), v.Kind())
	}
	if !pos.SameSeries(in) {
		return in, false, fmt.Errorf(":%s: %w", string(w), value.ErrCrossSeries)
	}
	return pos, true, nil
}

// captureTarget validates a quoted capture argument.
func captureTarget(def *Def, arg value.Value) (string, error) {
	switch w := arg.(type) {
	case value.Word:
		return string(w), nil
	case value.SetWord:
		return string(w), nil
	}
	return "", fmt.Errorf("%s: capture target must be a word, got %s", def.Name, arg.Kind())
}

// matchCopy binds the slice its rule consumed to the target variable.
func matchCopy(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	name, err := captureTarget(a.Def, a.Args[0])
	if err != nil {
		return in, false, err
	}
	out, ok, err := a.Subs[0].Run(ctx, in)
	if err != nil || !ok {
		return in, false, err
	}
	slice, err := value.Slice(in, out)
	if err != nil {
		return in, false, fmt.Errorf("copy: %w", err)
	}
	ctx.Env.Set(name, slice)
	return out, true, nil
}

// matchSet binds at most one consumed element. Consuming more than one
// is a structural error, not a silent truncation; consuming nothing
// binds none.
func matchSet(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	name, err := captureTarget(a.Def, a.Args[0])
	if err != nil {
		return in, false, err
	}
	out, ok, err := a.Subs[0].Run(ctx, in)
	if err != nil || !ok {
		return in, false, err
	}
	switch out.Index - in.Index {
	case 0:
		ctx.Env.Set(name, value.None{})
	case 1:
		ctx.Env.Set(name, in.Element())
	default:
		return in, false, ErrSetWidth
	}
	return out, true, nil
}

// matchInto descends into the element at the current position, which
// must itself be a series, and requires the rule to consume it fully.
// On success the outer input advances by exactly one element.
func matchInto(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	if in.AtEnd() {
		return in, false, fmt.Errorf("into: input already at its end")
	}
	elem := in.Element()
	nested, ok := elem.(value.Series)
	if !ok {
		return in, false, fmt.Errorf("%w (got %s)", ErrNotASeries, elem.Kind())
	}
	if err := ctx.enter(); err != nil {
		return in, false, err
	}
	defer ctx.leave()
	out, ok, err := a.Subs[0].Run(ctx, value.Head(nested))
	if err != nil {
		return in, false, err
	}
	if !ok || !out.AtEnd() {
		return in, false, nil
	}
	return in.Next(), true, nil
}

// matchFail is the base table's FAIL: a deliberate hard stop. The
// compatibility table replaces it with an ordinary no-match.
func matchFail(_ *Ctx, _ *Action, in value.Position) (value.Position, bool, error) {
	return in, false, ErrHardFail
}

// matchBreak unwinds to the innermost enclosing block, which treats it
// as that block's immediate success.
func matchBreak(_ *Ctx, _ *Action, in value.Position) (value.Position, bool, error) {
	return in, false, errBreak
}
