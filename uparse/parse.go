package uparse

import (
	"context"
	"errors"

	"github.com/dhamidi/parse/bind"
	"github.com/dhamidi/parse/eval"
	"github.com/dhamidi/parse/value"
	"github.com/tliron/commonlog"
)

type config struct {
	table         *Table
	caseSensitive bool
	trace         bool
	env           bind.Store
	evaluator     Evaluator
	stdctx        context.Context
	remainder     *value.Position
}

type Option func(*config)

// WithTable swaps in a different combinator table, typically a clone
// of DefaultTable with edited entries, or RedbolTable.
func WithTable(t *Table) Option {
	return func(c *config) {
		c.table = t
	}
}

// WithCase makes text, char and word comparisons case-sensitive.
func WithCase() Option {
	return func(c *config) {
		c.caseSensitive = true
	}
}

// WithTrace logs every rule step through the engine's logger.
func WithTrace() Option {
	return func(c *config) {
		c.trace = true
	}
}

// WithBindings supplies the variable store captures and rule
// indirection go through. Repeated parses sharing a store see each
// other's captures.
func WithBindings(s bind.Store) Option {
	return func(c *config) {
		c.env = s
	}
}

// WithEvaluator supplies the expression evaluator for groups.
func WithEvaluator(e Evaluator) Option {
	return func(c *config) {
		c.evaluator = e
	}
}

// WithContext makes the parse cancellable: loop combinators poll the
// context every iteration.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		c.stdctx = ctx
	}
}

// WithRemainder reports how far the parse progressed even when the
// whole input did not match.
func WithRemainder(out *value.Position) Option {
	return func(c *config) {
		c.remainder = out
	}
}

// Result is the outcome of one Parse call. Matched means the rules
// consumed the input completely; Remainder is how far matching got.
type Result struct {
	Matched   bool
	Remainder value.Position
}

// Parse matches rules against the whole input series. A block rule
// goes through the alternation sequencer; any other value dispatches
// through the table as a single combinator. The error result carries
// structural errors only; an ordinary failed match is Matched == false
// with a nil error.
func Parse(in value.Series, rules value.Value, opts ...Option) (Result, error) {
	cfg := &config{
		table:  DefaultTable(),
		env:    bind.NewEnv(),
		stdctx: context.Background(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.evaluator == nil {
		cfg.evaluator = eval.New()
	}

	ctx := &Ctx{
		Table:  cfg.table,
		Case:   cfg.caseSensitive,
		Trace:  cfg.trace,
		Log:    commonlog.GetLogger("uparse"),
		Env:    cfg.env,
		Eval:   cfg.evaluator,
		stdctx: cfg.stdctx,
	}

	start := value.Head(in)
	var out value.Position
	var ok bool
	var err error
	if block, isBlock := rules.(*value.Block); isBlock {
		out, ok, err = parseBlock(ctx, block, start)
	} else {
		var action *Action
		action, _, err = parsify(ctx, []value.Value{rules})
		if err == nil {
			out, ok, err = action.Run(ctx, start)
		}
		if errors.Is(err, errBreak) {
			out, ok, err = start, true, nil
		}
	}
	if err != nil {
		return Result{Remainder: start}, err
	}

	res := Result{Remainder: start}
	if ok {
		res.Matched = out.AtEnd()
		res.Remainder = out
	}
	if cfg.remainder != nil {
		*cfg.remainder = res.Remainder
	}
	return res, nil
}
