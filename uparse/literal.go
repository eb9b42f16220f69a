package uparse

import (
	"fmt"
	"unicode"

	"github.com/dhamidi/parse/value"
)

// Literal matchers. Each literal's own datatype selects its behavior:
// element equality against block input, prefix or membership matching
// against text and binary input. Binary-vs-text mismatches are hard
// errors, never implicit aliasing.

func matchTextLit(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	lit := a.Value.(*value.Text)
	switch s := in.Series.(type) {
	case *value.Block:
		return matchElement(ctx, a.Value, in)
	case *value.Text:
		n := lit.Len()
		if in.Index+n > s.Len() {
			return in, false, nil
		}
		for i := 0; i < n; i++ {
			if !runeEqual(s.At(in.Index+i), lit.At(i), ctx.Case) {
				return in, false, nil
			}
		}
		return in.Skip(n), true, nil
	case *value.Binary:
		return in, false, fmt.Errorf("cannot match text %s against binary input", lit)
	}
	return in, false, fmt.Errorf("cannot match against %s input", in.Series.Kind())
}

func matchCharLit(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	lit := a.Value.(value.Char)
	switch s := in.Series.(type) {
	case *value.Block:
		return matchElement(ctx, a.Value, in)
	case *value.Text:
		if in.AtEnd() {
			return in, false, nil
		}
		if !runeEqual(s.At(in.Index), rune(lit), ctx.Case) {
			return in, false, nil
		}
		return in.Next(), true, nil
	case *value.Binary:
		return in, false, fmt.Errorf("cannot match char %s against binary input", lit)
	}
	return in, false, fmt.Errorf("cannot match against %s input", in.Series.Kind())
}

func matchBinaryLit(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	lit := a.Value.(*value.Binary)
	switch s := in.Series.(type) {
	case *value.Block:
		return matchElement(ctx, a.Value, in)
	case *value.Binary:
		n := lit.Len()
		if in.Index+n > s.Len() {
			return in, false, nil
		}
		for i := 0; i < n; i++ {
			if s.At(in.Index+i) != lit.At(i) {
				return in, false, nil
			}
		}
		return in.Skip(n), true, nil
	case *value.Text:
		return in, false, fmt.Errorf("cannot match binary %s against text input", lit)
	}
	return in, false, fmt.Errorf("cannot match against %s input", in.Series.Kind())
}

// matchBitset matches one element by set membership: a rune for text
// input, a byte for binary input, a char element for block input.
func matchBitset(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	set := a.Value.(*value.Bitset)
	if in.AtEnd() {
		return in, false, nil
	}
	switch s := in.Series.(type) {
	case *value.Text:
		if !set.Contains(s.At(in.Index)) {
			return in, false, nil
		}
	case *value.Binary:
		if !set.Contains(rune(s.At(in.Index))) {
			return in, false, nil
		}
	case *value.Block:
		c, ok := s.At(in.Index).(value.Char)
		if !ok || !set.Contains(rune(c)) {
			return in, false, nil
		}
	}
	return in.Next(), true, nil
}

// matchElement compares the literal to the current element of block
// input.
func matchElement(ctx *Ctx, lit value.Value, in value.Position) (value.Position, bool, error) {
	if in.AtEnd() {
		return in, false, nil
	}
	if !in.Element().Equal(lit, ctx.Case) {
		return in, false, nil
	}
	return in.Next(), true, nil
}

// matchLitWord compares symbolic identity: the element of block input
// must be the same word spelling.
func matchLitWord(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	lit := a.Value.(value.LitWord)
	if _, ok := in.Series.(*value.Block); !ok {
		return in, false, fmt.Errorf("cannot match %s against %s input", lit, in.Series.Kind())
	}
	return matchElement(ctx, value.Word(lit), in)
}

// matchQuoted compares the de-quoted payload to the current element.
func matchQuoted(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	q := a.Value.(value.Quoted)
	if _, ok := in.Series.(*value.Block); !ok {
		return in, false, fmt.Errorf("cannot match %s against %s input", q, in.Series.Kind())
	}
	return matchElement(ctx, q.V, in)
}

// matchDatatype matches when the current block element has the named
// type.
func matchDatatype(_ *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	d := a.Value.(value.Datatype)
	if _, ok := in.Series.(*value.Block); !ok {
		return in, false, fmt.Errorf("cannot match %s against %s input", d, in.Series.Kind())
	}
	if in.AtEnd() {
		return in, false, nil
	}
	if in.Element().Kind() != value.Kind(d) {
		return in, false, nil
	}
	return in.Next(), true, nil
}

// matchLogic: true passes without consuming, false fails. This is how
// an evaluated expression gates a rule without an IF combinator.
func matchLogic(_ *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	return in, bool(a.Value.(value.Logic)), nil
}

// matchGroup evaluates the group for its side effects and passes
// without consuming. The result is discarded; gate through a
// get-group when the result should act as a rule.
func matchGroup(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	g := a.Value.(*value.Group)
	if _, err := ctx.evalGroup(g.Elems()); err != nil {
		return in, false, err
	}
	return in, true, nil
}

// matchSubBlock runs a nested rule block through the sequencer.
func matchSubBlock(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error) {
	return parseBlock(ctx, a.Value.(*value.Block), in)
}

func runeEqual(a, b rune, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return unicode.ToLower(a) == unicode.ToLower(b)
}
