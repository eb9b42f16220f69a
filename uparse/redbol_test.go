package uparse

import (
	"errors"
	"testing"

	"github.com/dhamidi/parse/bind"
	"github.com/dhamidi/parse/value"
)

func parseRedbol(t *testing.T, input value.Series, rules string, opts ...Option) (Result, error) {
	t.Helper()
	opts = append(opts, WithTable(RedbolTable()))
	return Parse(input, loadRules(t, rules), opts...)
}

func TestRedbolLoopTermination(t *testing.T) {
	// any [opt "a"] makes no progress once the input runs out of a's;
	// the historical guard stops the loop instead of spinning.
	tests := []struct {
		input   string
		rules   string
		matched bool
	}{
		{"", `any [opt "a"]`, true},
		{"aaa", `any [opt "a"]`, true},
		{"aaab", `any [opt "a"] "b"`, true},
		{"b", `some [opt "a"] "b"`, true},
		{"", `some [opt "a"]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.input+" = "+tt.rules, func(t *testing.T) {
			result, err := parseRedbol(t, value.NewText(tt.input), tt.rules)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Matched != tt.matched {
				t.Errorf("got matched=%v, want %v", result.Matched, tt.matched)
			}
		})
	}
}

func TestRedbolSomeStillRequiresFirstMatch(t *testing.T) {
	result, err := parseRedbol(t, value.NewText("b"), `some "a"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Matched {
		t.Errorf("some matched without a first iteration")
	}
}

func TestRedbolSetTakesFirstElement(t *testing.T) {
	env := bind.NewEnv()
	result, err := parseRedbol(t, loadValues(t, `1 2`), `set v [skip skip]`, WithBindings(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Matched {
		t.Fatalf("expected a full match")
	}
	v, _ := env.Get("v")
	if !v.Equal(value.Integer(1), false) {
		t.Errorf("got v = %s, want 1 (first element, no width error)", v)
	}
}

func TestRedbolGetWordAcceptsInteger(t *testing.T) {
	env := bind.NewEnv()
	env.Set("x", value.Integer(2))
	result, err := parseRedbol(t, value.NewText("abc"), `:x "bc"`, WithBindings(env))
	if err != nil || !result.Matched {
		t.Fatalf("matched=%v err=%v", result.Matched, err)
	}
}

func TestRedbolIntoArity(t *testing.T) {
	result, err := parseRedbol(t, loadValues(t, `[1 2]`), `into [skip skip]`)
	if err != nil || !result.Matched {
		t.Fatalf("matched=%v err=%v", result.Matched, err)
	}
	if _, err := parseRedbol(t, loadValues(t, `[1 2]`), `into skip`); err == nil {
		t.Errorf("historical into accepted a non-block rule")
	}
}

func TestRedbolAndIsAhead(t *testing.T) {
	result, err := parseRedbol(t, value.NewText("ab"), `and "a" "ab"`)
	if err != nil || !result.Matched {
		t.Fatalf("matched=%v err=%v", result.Matched, err)
	}
}

func TestRedbolFailIsOrdinaryNoMatch(t *testing.T) {
	result, err := parseRedbol(t, value.NewText("a"), `fail | "a"`)
	if err != nil {
		t.Fatalf("fail should not be structural here: %v", err)
	}
	if !result.Matched {
		t.Errorf("alternation did not recover from fail")
	}
}

func TestRedbolRemovesNewerKeywords(t *testing.T) {
	for _, rules := range []string{`ahead "a"`, `seek 1`} {
		_, err := parseRedbol(t, value.NewText("a"), rules)
		if !errors.Is(err, ErrUnhandled) {
			t.Errorf("%s: got %v, want ErrUnhandled", rules, err)
		}
	}
}

func TestRedbolLeavesWhileAlone(t *testing.T) {
	result, err := parseRedbol(t, value.NewText("aaa"), `while ["a"]`)
	if err != nil || !result.Matched {
		t.Fatalf("matched=%v err=%v", result.Matched, err)
	}
}

func TestRedbolDerivationDoesNotTouchBase(t *testing.T) {
	base := DefaultTable()
	RedbolTable()
	if _, ok := base.Get(KeywordKey("ahead")); !ok {
		t.Errorf("deriving the compatibility table removed ahead from a base table")
	}
	if _, ok := base.Get(KeywordKey("and")); ok {
		t.Errorf("deriving the compatibility table added and to a base table")
	}
}
