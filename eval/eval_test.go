package eval

import (
	"context"
	"testing"

	"github.com/dhamidi/parse/bind"
	"github.com/dhamidi/parse/dialect"
	"github.com/dhamidi/parse/value"
)

func evalString(t *testing.T, env *bind.Env, src string) value.Value {
	t.Helper()
	block, err := dialect.LoadString(src)
	if err != nil {
		t.Fatalf("load %q: %v", src, err)
	}
	v, err := New().Eval(context.Background(), env, block.Elems())
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

func TestEval(t *testing.T) {
	tests := []struct {
		input string
		want  value.Value
	}{
		{`42`, value.Integer(42)},
		{`"hi"`, value.NewText("hi")},
		{`true`, value.Logic(true)},
		{`none`, value.None{}},
		{`add 1 2`, value.Integer(3)},
		{`subtract 5 2`, value.Integer(3)},
		{`multiply 3 4`, value.Integer(12)},
		{`add 1 multiply 2 3`, value.Integer(7)},
		{`equal? 1 1`, value.Logic(true)},
		{`equal? "a" "A"`, value.Logic(true)},
		{`not-equal? 1 2`, value.Logic(true)},
		{`lesser? 1 2`, value.Logic(true)},
		{`greater? 1 2`, value.Logic(false)},
		{`not true`, value.Logic(false)},
		{`not none`, value.Logic(true)},
		{`either true [1] [2]`, value.Integer(1)},
		{`either none [1] [2]`, value.Integer(2)},
		{`length? "abc"`, value.Integer(3)},
		{`length? [1 2]`, value.Integer(2)},
		{`first [7 8]`, value.Integer(7)},
		{`first "xy"`, value.Char('x')},
		{`first []`, value.None{}},
		{`pick [a b c] 2`, value.Word("b")},
		{`pick [a] 9`, value.None{}},
		{`'quoted`, value.Word("quoted")},
		{`(add 1 1)`, value.Integer(2)},
		{`1 2 3`, value.Integer(3)}, // last expression wins
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := evalString(t, bind.NewEnv(), tt.input)
			if !got.Equal(tt.want, true) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEvalAssignment(t *testing.T) {
	env := bind.NewEnv()
	got := evalString(t, env, `x: add 2 3 add x 1`)
	if !got.Equal(value.Integer(6), true) {
		t.Errorf("got %s, want 6", got)
	}
	x, ok := env.Get("x")
	if !ok || !x.Equal(value.Integer(5), true) {
		t.Errorf("x = %v, want 5", x)
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []string{
		`nosuchword`,
		`add 1 "a"`,
		`either true 1 2`,
		`length? 5`,
		`add 1`, // missing argument
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			block, err := dialect.LoadString(input)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if _, err := New().Eval(context.Background(), bind.NewEnv(), block.Elems()); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestMakeBitsetSpec(t *testing.T) {
	env := bind.NewEnv()
	v := evalString(t, env, `make-bitset "a-cZ"`)
	set, ok := v.(*value.Bitset)
	if !ok {
		t.Fatalf("got %s, want a bitset", v.Kind())
	}
	for _, r := range "abcZ" {
		if !set.Contains(r) {
			t.Errorf("missing %c", r)
		}
	}
	if set.Contains('d') || set.Contains('z') {
		t.Errorf("set contains characters outside the spec")
	}
}

func TestTruthy(t *testing.T) {
	if Truthy(value.None{}) || Truthy(value.Logic(false)) {
		t.Errorf("none and false must be falsy")
	}
	if !Truthy(value.Integer(0)) || !Truthy(value.NewText("")) {
		t.Errorf("zero and empty text are still truthy")
	}
}
