// Package uparse is a usermode-extensible parser-combinator engine
// over text, binary and block input. Rules are blocks of values in a
// PEG-like dialect; every keyword and every literal datatype is
// handled by an entry in a combinator table, and cloning and editing
// that table is how alternate dialects are produced.
package uparse

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/parse/bind"
	"github.com/dhamidi/parse/value"
	"github.com/tliron/commonlog"
)

// ParamKind tags one formal parameter of a combinator, in the order
// the rule stream supplies them.
type ParamKind int

const (
	// ParamQuoted consumes the next rule element verbatim.
	ParamQuoted ParamKind = iota
	// ParamSub recursively parsifies the remaining rule stream.
	ParamSub
)

// MatchFunc is the behavior of one combinator. The bool result is the
// match/no-match outcome; a non-nil error is structural and bypasses
// alternation entirely.
type MatchFunc func(ctx *Ctx, a *Action, in value.Position) (value.Position, bool, error)

// Def declares one combinator: its name, the parameters it takes from
// the rule stream, and its matching behavior.
type Def struct {
	Name   string
	Params []ParamKind
	Match  MatchFunc
}

// Action is a combinator with everything except the input bound: the
// dispatching literal, the verbatim arguments and the sub-parsers. It
// is a plain struct rather than a closure so a trace can show what was
// synthesized for each rule step.
type Action struct {
	Def   *Def
	Value value.Value   // the dispatching literal, nil for keywords
	Args  []value.Value // quoted arguments, in declaration order
	Subs  []*Action     // sub-parsers, in declaration order
}

// Run invokes the action against in. Every successful matcher must
// return a position in the same container it was given; anything else
// is a structural error regardless of which combinator misbehaved.
func (a *Action) Run(ctx *Ctx, in value.Position) (value.Position, bool, error) {
	if ctx.Trace {
		ctx.Log.Debugf("step %s at %d", a.Name(), in.Index+1)
	}
	out, ok, err := a.Def.Match(ctx, a, in)
	if err != nil {
		return in, false, err
	}
	if ok && !out.SameSeries(in) {
		return in, false, fmt.Errorf("%s: %w", a.Name(), value.ErrCrossSeries)
	}
	if ctx.Trace {
		if ok {
			ctx.Log.Debugf("step %s matched through %d", a.Name(), out.Index)
		} else {
			ctx.Log.Debugf("step %s did not match", a.Name())
		}
	}
	return out, ok, err
}

// Name describes the action for traces and errors.
func (a *Action) Name() string {
	if a.Value != nil && a.Def.Name == "" {
		return a.Value.Kind().String()
	}
	return a.Def.Name
}

// Key is a dispatch key: a keyword spelling or a datatype tag.
type Key struct {
	Word string
	Type value.Kind
}

func KeywordKey(word string) Key {
	return Key{Word: strings.ToLower(word)}
}

func TypeKey(k value.Kind) Key {
	return Key{Type: k}
}

func (k Key) String() string {
	if k.Word != "" {
		return k.Word
	}
	return k.Type.String()
}

// Table maps dispatch keys to combinator definitions. It is the whole
// extension API: Clone it, Set and Delete entries, and pass the result
// to Parse via WithTable.
type Table struct {
	defs map[Key]*Def
}

func NewTable() *Table {
	return &Table{defs: make(map[Key]*Def)}
}

func (t *Table) Clone() *Table {
	c := NewTable()
	for k, d := range t.defs {
		c.defs[k] = d
	}
	return c
}

func (t *Table) Set(k Key, d *Def) { t.defs[k] = d }
func (t *Table) Delete(k Key) { delete(t.defs, k) }
func (t *Table) Get(k Key) (*Def, bool) { d, ok := t.defs[k]; return d, ok }

// Keys lists the table's dispatch keys, keywords first, both groups
// sorted.
func (t *Table) Keys() []Key {
	keys := make([]Key, 0, len(t.defs))
	for k := range t.defs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if (keys[i].Word == "") != (keys[j].Word == "") {
			return keys[i].Word != ""
		}
		if keys[i].Word != keys[j].Word {
			return keys[i].Word < keys[j].Word
		}
		return keys[i].Type < keys[j].Type
	})
	return keys
}

// Evaluator executes embedded group expressions. The engine only ever
// calls it with the elements of a group element.
type Evaluator interface {
	Eval(ctx context.Context, env bind.Store, elems []value.Value) (value.Value, error)
}

// Ctx carries everything a combinator invocation needs: the active
// table, flags, collaborators and the cancellation signal. It is fixed
// for the duration of one Parse call.
type Ctx struct {
	Table *Table
	Case  bool
	Trace bool
	Log   commonlog.Logger
	Env   bind.Store
	Eval  Evaluator

	stdctx context.Context
	depth  int
}

const maxDepth = 10000

func (c *Ctx) enter() error {
	c.depth++
	if c.depth > maxDepth {
		return ErrDepth
	}
	return nil
}

func (c *Ctx) leave() { c.depth-- }

// interrupted is polled on every loop iteration so unbounded ANY/SOME/
// WHILE rules stay cancellable from the host.
func (c *Ctx) interrupted() error {
	return c.stdctx.Err()
}

func (c *Ctx) evalGroup(elems []value.Value) (value.Value, error) {
	v, err := c.Eval.Eval(c.stdctx, c.Env, elems)
	if err != nil {
		return nil, fmt.Errorf("group: %w", err)
	}
	return v, nil
}
