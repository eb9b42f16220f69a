package uparse

import (
	"testing"

	"github.com/dhamidi/parse/value"
)

func TestTableCloneIsIndependent(t *testing.T) {
	base := DefaultTable()
	clone := base.Clone()
	clone.Delete(KeywordKey("opt"))
	clone.Set(KeywordKey("custom"), &Def{Name: "custom", Match: matchEnd})

	if _, ok := base.Get(KeywordKey("opt")); !ok {
		t.Errorf("deleting from a clone removed the base entry")
	}
	if _, ok := base.Get(KeywordKey("custom")); ok {
		t.Errorf("adding to a clone leaked into the base")
	}
}

func TestCustomCombinator(t *testing.T) {
	// A user-installed keyword participates in dispatch like any
	// shipped one.
	table := DefaultTable()
	table.Set(KeywordKey("vowel"), &Def{
		Name: "vowel",
		Match: func(ctx *Ctx, _ *Action, in value.Position) (value.Position, bool, error) {
			text, ok := in.Series.(*value.Text)
			if !ok || in.AtEnd() {
				return in, false, nil
			}
			switch text.At(in.Index) {
			case 'a', 'e', 'i', 'o', 'u':
				return in.Next(), true, nil
			}
			return in, false, nil
		},
	})

	result, err := Parse(value.NewText("ae"), loadRules(t, `some vowel`), WithTable(table))
	if err != nil || !result.Matched {
		t.Fatalf("matched=%v err=%v", result.Matched, err)
	}
	result, err = Parse(value.NewText("x"), loadRules(t, `vowel`), WithTable(table))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Matched {
		t.Errorf("vowel matched a consonant")
	}
}

func TestTableKeysOrdering(t *testing.T) {
	keys := DefaultTable().Keys()
	if len(keys) == 0 {
		t.Fatalf("empty key listing")
	}
	sawType := false
	for _, k := range keys {
		if k.Word == "" {
			sawType = true
		} else if sawType {
			t.Fatalf("keyword %s listed after datatype keys", k)
		}
	}
	if !sawType {
		t.Errorf("no datatype keys listed")
	}
}
