package value

import (
	"errors"
	"fmt"
)

// ErrCrossSeries reports a position used against a series it does not
// belong to.
var ErrCrossSeries = errors.New("position belongs to a different series")

// Position is a cursor into a series: the container identity plus an
// offset. Positions are values themselves so they can be stored in
// variables and sought back to.
type Position struct {
	Series Series
	Index  int
}

func At(s Series, index int) Position {
	return Position{Series: s, Index: index}
}

func Head(s Series) Position { return Position{Series: s, Index: 0} }

func (Position) Kind() Kind { return KindPosition }

func (p Position) String() string {
	return fmt.Sprintf("%s at %d", p.Series.Kind(), p.Index+1)
}

func (p Position) Equal(other Value, _ bool) bool {
	o, ok := other.(Position)
	return ok && o.Series == p.Series && o.Index == p.Index
}

func (p Position) AtEnd() bool { return p.Index >= p.Series.Len() }

func (p Position) Next() Position {
	return Position{Series: p.Series, Index: p.Index + 1}
}

func (p Position) Skip(n int) Position {
	return Position{Series: p.Series, Index: p.Index + n}
}

// SameSeries reports whether q points into the same container as p.
// Container identity is pointer identity, never structural equality.
func (p Position) SameSeries(q Position) bool {
	return p.Series == q.Series
}

// Element returns the value at p. For text input the element is a
// Char, for binary an Integer holding the byte.
func (p Position) Element() Value {
	switch s := p.Series.(type) {
	case *Block:
		return s.At(p.Index)
	case *Text:
		return Char(s.At(p.Index))
	case *Binary:
		return Integer(s.At(p.Index))
	}
	return None{}
}

// Slice copies the span between from and to into a new series of the
// same type. Both positions must point into the same container and
// from must not come after to.
func Slice(from, to Position) (Value, error) {
	if !from.SameSeries(to) {
		return nil, ErrCrossSeries
	}
	if from.Index > to.Index {
		return nil, fmt.Errorf("slice bounds reversed: %d > %d", from.Index, to.Index)
	}
	switch s := from.Series.(type) {
	case *Block:
		elems := make([]Value, to.Index-from.Index)
		copy(elems, s.elems[from.Index:to.Index])
		return NewBlock(elems...), nil
	case *Text:
		return &Text{runes: append([]rune(nil), s.runes[from.Index:to.Index]...)}, nil
	case *Binary:
		return NewBinary(append([]byte(nil), s.bytes[from.Index:to.Index]...)), nil
	}
	return nil, fmt.Errorf("cannot slice %s", from.Series.Kind())
}
