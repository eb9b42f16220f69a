package uparse

import (
	"fmt"

	"github.com/dhamidi/parse/value"
)

// RedbolTable derives the legacy-compatibility dialect from the base
// table. It is pure configuration: clone, replace a handful of
// entries, delete the newer-only keywords. The dispatch engine is
// untouched.
func RedbolTable() *Table {
	t := DefaultTable()

	sub := []ParamKind{ParamSub}
	quotedSub := []ParamKind{ParamQuoted, ParamSub}

	// The historical infinite-loop guard: ANY and SOME additionally
	// stop the moment an iteration makes no progress, even if the rule
	// nominally matched. WHILE keeps its modern behavior.
	t.Set(KeywordKey("any"), &Def{Name: "any", Params: sub, Match: redbolAny})
	t.Set(KeywordKey("some"), &Def{Name: "some", Params: sub, Match: redbolSome})

	// Classic captures: set stores the first matched element and never
	// errors on width.
	t.Set(KeywordKey("copy"), &Def{Name: "copy", Params: quotedSub, Match: matchCopy})
	t.Set(KeywordKey("set"), &Def{Name: "set", Params: quotedSub, Match: redbolSet})

	// Classic marks: a get-word additionally accepts an integer-valued
	// variable as a 1-based offset.
	t.Set(TypeKey(value.KindSetWord), &Def{Name: "mark", Match: matchMark})
	t.Set(TypeKey(value.KindGetWord), &Def{Name: "resume", Match: redbolResume})

	// Historical arity: into takes a literal block, nothing else.
	t.Set(KeywordKey("into"), &Def{Name: "into", Params: []ParamKind{ParamQuoted}, Match: redbolInto})

	// AND is the old spelling of AHEAD.
	t.Set(KeywordKey("and"), &Def{Name: "and", Params: sub, Match: matchAhead})

	// FAIL forces an ordinary non-match instead of a hard stop.
	t.Set(KeywordKey("fail"), &Def{Name: "fail", Match: redbolFail})

	// Newer-only keywords disappear; using them reports an unhandled
	// keyword.
	t.Delete(KeywordKey("ahead"))
	t.Delete(KeywordKey("seek"))

	return t
}

func redbolAny(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
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
		if !ok || out.Index == pos.Index {
			return pos, true, nil
		}
		pos = out
	}
}

func redbolSome(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	out, ok, err := a.Subs[0].Run(ctx, in)
	if err != nil || !ok {
		return in, false, err
	}
	if out.Index == in.Index {
		return out, true, nil
	}
	return redbolAny(ctx, a, out)
}

func redbolSet(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	name, err := captureTarget(a.Def, a.Args[0])
	if err != nil {
		return in, false, err
	}
	out, ok, err := a.Subs[0].Run(ctx, in)
	if err != nil || !ok {
		return in, false, err
	}
	if out.Index == in.Index {
		ctx.Env.Set(name, value.None{})
	} else {
		ctx.Env.Set(name, in.Element())
	}
	return out, true, nil
}

func redbolResume(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	w := a.Value.(value.GetWord)
	v, bound := ctx.Env.Get(string(w))
	if !bound {
		return in, false, fmt.Errorf(":%s has no value", string(w))
	}
	if n, ok := v.(value.Integer); ok {
		return seekOffset(in, int(n))
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

func redbolInto(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	rules, ok := a.Args[0].(*value.Block)
	if !ok {
		return in, false, fmt.Errorf("into: rule must be a block, got %s", a.Args[0].Kind())
	}
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
	out, matched, err := parseBlock(ctx, rules, value.Head(nested))
	if err != nil {
		return in, false, err
	}
	if !matched || !out.AtEnd() {
		return in, false, nil
	}
	return in.Next(), true, nil
}

func redbolFail(_ *Ctx, _ *Action, in value.Position) (value.Position, bool, error) {
	return in, false, nil
}
