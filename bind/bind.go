// Package bind provides the variable-binding store the engine uses for
// captures and rule indirection. Word spellings are case-insensitive,
// matching the dialect's word semantics.
package bind

import (
	"strings"

	"github.com/dhamidi/parse/value"
)

// Store is what the engine needs from a variable environment.
type Store interface {
	Get(name string) (value.Value, bool)
	Set(name string, v value.Value)
}

// Env is a map-backed Store with optional parent scoping. Lookups walk
// up the parent chain; writes go to the scope holding the name, or the
// local scope when the name is unbound anywhere.
type Env struct {
	vars   map[string]value.Value
	parent *Env
}

func NewEnv() *Env {
	return &Env{vars: make(map[string]value.Value)}
}

func (e *Env) Child() *Env {
	return &Env{vars: make(map[string]value.Value), parent: e}
}

func (e *Env) Get(name string) (value.Value, bool) {
	key := strings.ToLower(name)
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Names lists the spellings bound in this scope only.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	return names
}

func (e *Env) Set(name string, v value.Value) {
	key := strings.ToLower(name)
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[key]; ok {
			s.vars[key] = v
			return
		}
	}
	e.vars[key] = v
}
