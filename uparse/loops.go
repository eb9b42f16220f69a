package uparse

import "github.com/dhamidi/parse/value"

// matchOpt runs its rule once and succeeds either way. OPT itself can
// never fail.
func matchOpt(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	out, ok, err := a.Subs[0].Run(ctx, in)
	if err != nil {
		return in, false, err
	}
	if !ok {
		return in, true, nil
	}
	return out, true, nil
}

// matchAny repeats its rule until the input reaches its end or the
// rule fails, and succeeds with the last good position. Zero
// iterations is fine.
func matchAny(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	pos := in
	for {
		if err := ctx.interrupted(); err != nil {
			return in, false, err
		}
		if pos.AtEnd() {
			return pos, true, nil
		}
		out, ok, err := a.Subs[0].Run(ctx, pos)
		if err != nil {
			return in, false, err
		}
		if !ok {
			return pos, true, nil
		}
		pos = out
	}
}

// matchSome is matchAny with a mandatory first iteration.
func matchSome(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	out, ok, err := a.Subs[0].Run(ctx, in)
	if err != nil || !ok {
		return in, false, err
	}
	return matchAny(ctx, a, out)
}

// matchWhile repeats until the rule fails. Unlike ANY it does not stop
// at end of input, so a zero-width rule must be paired with an
// explicit end test; the interrupt poll is what keeps such rules
// cancellable.
func matchWhile(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	pos := in
	for {
		if err := ctx.interrupted(); err != nil {
			return in, false, err
		}
		out, ok, err := a.Subs[0].Run(ctx, pos)
		if err != nil {
			return in, false, err
		}
		if !ok {
			return pos, true, nil
		}
		pos = out
	}
}

// matchRepeat is the INTEGER! prefix: run the rule exactly N times;
// any failed iteration fails the whole construct.
func matchRepeat(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	n := int(a.Value.(value.Integer))
	pos := in
	for i := 0; i < n; i++ {
		if err := ctx.interrupted(); err != nil {
			return in, false, err
		}
		out, ok, err := a.Subs[0].Run(ctx, pos)
		if err != nil || !ok {
			return in, false, err
		}
		pos = out
	}
	return pos, true, nil
}
