// Package value defines the tagged value model shared by the parse
// engine, the expression evaluator and the dialect loader. Every rule
// element and every capture is a Value; the three series types (Text,
// Binary, Block) double as the containers the engine matches against.
package value

import (
	"fmt"
	"strings"
	"unicode"
)

type Kind int

const (
	KindNone Kind = iota
	KindLogic
	KindInteger
	KindChar
	KindWord
	KindSetWord
	KindGetWord
	KindLitWord
	KindQuoted
	KindDatatype
	KindBitset
	KindText
	KindBinary
	KindBlock
	KindGroup
	KindGetGroup
	KindPath
	KindComma
	KindBar
	KindPosition
)

var kindNames = map[Kind]string{
	KindNone:     "none!",
	KindLogic:    "logic!",
	KindInteger:  "integer!",
	KindChar:     "char!",
	KindWord:     "word!",
	KindSetWord:  "set-word!",
	KindGetWord:  "get-word!",
	KindLitWord:  "lit-word!",
	KindQuoted:   "quoted!",
	KindDatatype: "datatype!",
	KindBitset:   "bitset!",
	KindText:     "text!",
	KindBinary:   "binary!",
	KindBlock:    "block!",
	KindGroup:    "group!",
	KindGetGroup: "get-group!",
	KindPath:     "path!",
	KindComma:    "comma!",
	KindBar:      "bar!",
	KindPosition: "position!",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown!"
}

// KindByName resolves a datatype name like "integer!" to its Kind.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindNone, false
}

// Value is one dialect element or runtime datum.
type Value interface {
	Kind() Kind
	// Equal reports value equality. Comparisons of chars, text and
	// word spellings fold case unless caseSensitive is set.
	Equal(other Value, caseSensitive bool) bool
	String() string
}

// Series is a Value that the engine can position a cursor over.
type Series interface {
	Value
	Len() int
}

type None struct{}

func (None) Kind() Kind { return KindNone }
func (None) String() string { return "none" }
func (None) Equal(other Value, _ bool) bool {
	return other.Kind() == KindNone
}

type Logic bool

func (Logic) Kind() Kind { return KindLogic }
func (l Logic) String() string {
	if l {
		return "true"
	}
	return "false"
}
func (l Logic) Equal(other Value, _ bool) bool {
	o, ok := other.(Logic)
	return ok && o == l
}

type Integer int64

func (Integer) Kind() Kind { return KindInteger }
func (i Integer) String() string { return fmt.Sprintf("%d", int64(i)) }
func (i Integer) Equal(other Value, _ bool) bool {
	o, ok := other.(Integer)
	return ok && o == i
}

type Char rune

func (Char) Kind() Kind { return KindChar }
func (c Char) String() string { return fmt.Sprintf("#%q", string(rune(c))) }
func (c Char) Equal(other Value, caseSensitive bool) bool {
	o, ok := other.(Char)
	if !ok {
		return false
	}
	if caseSensitive {
		return o == c
	}
	return unicode.ToLower(rune(o)) == unicode.ToLower(rune(c))
}

func foldEqual(a, b string, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

type Word string

func (Word) Kind() Kind { return KindWord }
func (w Word) String() string { return string(w) }
func (w Word) Equal(other Value, caseSensitive bool) bool {
	o, ok := other.(Word)
	return ok && foldEqual(string(o), string(w), caseSensitive)
}

type SetWord string

func (SetWord) Kind() Kind { return KindSetWord }
func (w SetWord) String() string { return string(w) + ":" }
func (w SetWord) Equal(other Value, caseSensitive bool) bool {
	o, ok := other.(SetWord)
	return ok && foldEqual(string(o), string(w), caseSensitive)
}

type GetWord string

func (GetWord) Kind() Kind { return KindGetWord }
func (w GetWord) String() string { return ":" + string(w) }
func (w GetWord) Equal(other Value, caseSensitive bool) bool {
	o, ok := other.(GetWord)
	return ok && foldEqual(string(o), string(w), caseSensitive)
}

type LitWord string

func (LitWord) Kind() Kind { return KindLitWord }
func (w LitWord) String() string { return "'" + string(w) }
func (w LitWord) Equal(other Value, caseSensitive bool) bool {
	o, ok := other.(LitWord)
	return ok && foldEqual(string(o), string(w), caseSensitive)
}

// Quoted defers one level of evaluation; the engine matches its
// payload by plain equality.
type Quoted struct {
	V Value
}

func (Quoted) Kind() Kind { return KindQuoted }
func (q Quoted) String() string { return "'" + q.V.String() }
func (q Quoted) Equal(other Value, caseSensitive bool) bool {
	o, ok := other.(Quoted)
	return ok && q.V.Equal(o.V, caseSensitive)
}

type Datatype Kind

func (Datatype) Kind() Kind { return KindDatatype }
func (d Datatype) String() string { return Kind(d).String() }
func (d Datatype) Equal(other Value, _ bool) bool {
	o, ok := other.(Datatype)
	return ok && o == d
}

type Text struct {
	runes []rune
}

func NewText(s string) *Text { return &Text{runes: []rune(s)} }

func (*Text) Kind() Kind { return KindText }
func (t *Text) Len() int { return len(t.runes) }
func (t *Text) At(i int) rune { return t.runes[i] }
func (t *Text) Text() string { return string(t.runes) }
func (t *Text) String() string { return fmt.Sprintf("%q", string(t.runes)) }
func (t *Text) Equal(other Value, caseSensitive bool) bool {
	o, ok := other.(*Text)
	return ok && foldEqual(string(o.runes), string(t.runes), caseSensitive)
}

type Binary struct {
	bytes []byte
}

func NewBinary(b []byte) *Binary { return &Binary{bytes: b} }

func (*Binary) Kind() Kind { return KindBinary }
func (b *Binary) Len() int { return len(b.bytes) }
func (b *Binary) At(i int) byte { return b.bytes[i] }
func (b *Binary) Bytes() []byte { return b.bytes }
func (b *Binary) String() string {
	return fmt.Sprintf("#{%X}", b.bytes)
}
func (b *Binary) Equal(other Value, _ bool) bool {
	o, ok := other.(*Binary)
	if !ok || len(o.bytes) != len(b.bytes) {
		return false
	}
	for i := range b.bytes {
		if o.bytes[i] != b.bytes[i] {
			return false
		}
	}
	return true
}

type Block struct {
	elems []Value
}

func NewBlock(elems ...Value) *Block { return &Block{elems: elems} }

func (*Block) Kind() Kind { return KindBlock }
func (b *Block) Len() int { return len(b.elems) }
func (b *Block) At(i int) Value { return b.elems[i] }
func (b *Block) Elems() []Value { return b.elems }
func (b *Block) Append(v Value) { b.elems = append(b.elems, v) }
func (b *Block) Insert(i int, v Value) {
	b.elems = append(b.elems[:i], append([]Value{v}, b.elems[i:]...)...)
}
func (b *Block) String() string { return "[" + formatElems(b.elems) + "]" }
func (b *Block) Equal(other Value, caseSensitive bool) bool {
	o, ok := other.(*Block)
	if !ok || len(o.elems) != len(b.elems) {
		return false
	}
	for i := range b.elems {
		if !b.elems[i].Equal(o.elems[i], caseSensitive) {
			return false
		}
	}
	return true
}

// Group is an embedded expression evaluated for its side effects
// without advancing the input.
type Group struct {
	elems []Value
}

func NewGroup(elems ...Value) *Group { return &Group{elems: elems} }

func (*Group) Kind() Kind { return KindGroup }
func (g *Group) Elems() []Value { return g.elems }
func (g *Group) String() string { return "(" + formatElems(g.elems) + ")" }
func (g *Group) Equal(other Value, caseSensitive bool) bool {
	o, ok := other.(*Group)
	if !ok || len(o.elems) != len(g.elems) {
		return false
	}
	for i := range g.elems {
		if !g.elems[i].Equal(o.elems[i], caseSensitive) {
			return false
		}
	}
	return true
}

// GetGroup is evaluated while the rule stream is being read, and its
// result is spliced in as the rule element.
type GetGroup struct {
	elems []Value
}

func NewGetGroup(elems ...Value) *GetGroup { return &GetGroup{elems: elems} }

func (*GetGroup) Kind() Kind { return KindGetGroup }
func (g *GetGroup) Elems() []Value { return g.elems }
func (g *GetGroup) String() string { return ":(" + formatElems(g.elems) + ")" }
func (g *GetGroup) Equal(other Value, caseSensitive bool) bool {
	o, ok := other.(*GetGroup)
	if !ok || len(o.elems) != len(g.elems) {
		return false
	}
	for i := range g.elems {
		if !g.elems[i].Equal(o.elems[i], caseSensitive) {
			return false
		}
	}
	return true
}

// Path is a slash-separated chain of words and integers, resolved
// through the variable store before dispatch.
type Path struct {
	Segments []Value
}

func (*Path) Kind() Kind { return KindPath }
func (p *Path) String() string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}
func (p *Path) Equal(other Value, caseSensitive bool) bool {
	o, ok := other.(*Path)
	if !ok || len(o.Segments) != len(p.Segments) {
		return false
	}
	for i := range p.Segments {
		if !p.Segments[i].Equal(o.Segments[i], caseSensitive) {
			return false
		}
	}
	return true
}

// Comma is the cosmetic step separator.
type Comma struct{}

func (Comma) Kind() Kind { return KindComma }
func (Comma) String() string { return "," }
func (Comma) Equal(other Value, _ bool) bool {
	return other.Kind() == KindComma
}

// Bar is the alternation marker.
type Bar struct{}

func (Bar) Kind() Kind { return KindBar }
func (Bar) String() string { return "|" }
func (Bar) Equal(other Value, _ bool) bool {
	return other.Kind() == KindBar
}

func formatElems(elems []Value) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}
