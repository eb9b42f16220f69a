package value

import (
	"errors"
	"testing"
)

func TestEqualFoldsCase(t *testing.T) {
	tests := []struct {
		a, b      Value
		folded    bool
		sensitive bool
	}{
		{NewText("abc"), NewText("ABC"), true, false},
		{Char('a'), Char('A'), true, false},
		{Word("foo"), Word("FOO"), true, false},
		{Integer(1), Integer(1), true, true},
		{Integer(1), Integer(2), false, false},
		{Word("foo"), SetWord("foo"), false, false}, // kinds never cross
		{NewBinary([]byte{1, 2}), NewBinary([]byte{1, 2}), true, true},
		{NewBlock(Integer(1), Word("x")), NewBlock(Integer(1), Word("x")), true, true},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b, false); got != tt.folded {
			t.Errorf("%s = %s (folded): got %v, want %v", tt.a, tt.b, got, tt.folded)
		}
		if got := tt.a.Equal(tt.b, true); got != tt.sensitive {
			t.Errorf("%s = %s (sensitive): got %v, want %v", tt.a, tt.b, got, tt.sensitive)
		}
	}
}

func TestPositionBasics(t *testing.T) {
	text := NewText("abc")
	pos := Head(text)
	if pos.AtEnd() {
		t.Fatalf("head of non-empty series is at end")
	}
	if got := pos.Skip(3); !got.AtEnd() {
		t.Errorf("skip(3) not at end")
	}
	if elem := pos.Next().Element(); !elem.Equal(Char('b'), true) {
		t.Errorf("got element %s, want #\"b\"", elem)
	}
	if !pos.SameSeries(pos.Skip(2)) {
		t.Errorf("positions into one container report different series")
	}
	if pos.SameSeries(Head(NewText("abc"))) {
		t.Errorf("identity confused with structural equality")
	}
}

func TestSlice(t *testing.T) {
	text := NewText("hello")
	got, err := Slice(At(text, 1), At(text, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(NewText("ell"), true) {
		t.Errorf("got %s, want \"ell\"", got)
	}

	block := NewBlock(Integer(1), Integer(2), Integer(3))
	got, err = Slice(At(block, 0), At(block, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(NewBlock(Integer(1), Integer(2)), true) {
		t.Errorf("got %s, want [1 2]", got)
	}

	if _, err := Slice(Head(text), Head(NewText("hello"))); !errors.Is(err, ErrCrossSeries) {
		t.Errorf("cross-container slice: got %v, want ErrCrossSeries", err)
	}
	if _, err := Slice(At(text, 3), At(text, 1)); err == nil {
		t.Errorf("reversed slice: expected an error")
	}
}

func TestSliceCopies(t *testing.T) {
	block := NewBlock(Integer(1), Integer(2))
	v, err := Slice(Head(block), At(block, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	copied := v.(*Block)
	copied.Append(Integer(3))
	if block.Len() != 2 {
		t.Errorf("slice aliases its source")
	}
}

func TestBitset(t *testing.T) {
	set := NewBitset()
	set.AddRange('a', 'f')
	set.Add('z')
	set.Add('λ')
	for _, r := range "abcdefzλ" {
		if !set.Contains(r) {
			t.Errorf("missing %c", r)
		}
	}
	for _, r := range "gABC0" {
		if set.Contains(r) {
			t.Errorf("unexpected %c", r)
		}
	}
}

func TestKindByName(t *testing.T) {
	kind, ok := KindByName("integer!")
	if !ok || kind != KindInteger {
		t.Fatalf("got %v %v, want integer!", kind, ok)
	}
	if _, ok := KindByName("nonsense!"); ok {
		t.Errorf("resolved a nonsense type name")
	}
}

func TestMold(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{None{}, "none"},
		{Logic(true), "true"},
		{Integer(-3), "-3"},
		{Word("some"), "some"},
		{SetWord("v"), "v:"},
		{GetWord("v"), ":v"},
		{LitWord("v"), "'v"},
		{NewText("hi"), `"hi"`},
		{NewBinary([]byte{0xDE, 0xAD}), "#{DEAD}"},
		{NewBlock(Word("a"), Bar{}, Integer(1)), "[a | 1]"},
		{NewGroup(SetWord("x"), Integer(1)), "(x: 1)"},
		{NewGetGroup(Word("x")), ":(x)"},
		{Quoted{V: Integer(5)}, "'5"},
		{Datatype(KindText), "text!"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}
