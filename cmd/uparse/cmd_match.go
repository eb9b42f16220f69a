package main

import (
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/dhamidi/parse/bind"
	"github.com/dhamidi/parse/dialect"
	"github.com/dhamidi/parse/uparse"
	"github.com/dhamidi/parse/value"
	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	var redbol bool
	var caseSensitive bool
	var trace bool
	var asBinary bool
	var asValues bool

	cmd := &cobra.Command{
		Use:   "match <input> <rules>",
		Short: "Match rules against input and report the outcome",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := loadInput(args[0], asBinary, asValues)
			if err != nil {
				return err
			}
			rules, err := dialect.LoadString(args[1])
			if err != nil {
				return fmt.Errorf("load rules: %w", err)
			}

			env := bind.NewEnv()
			opts := []uparse.Option{uparse.WithBindings(env)}
			if redbol {
				opts = append(opts, uparse.WithTable(uparse.RedbolTable()))
			}
			if caseSensitive {
				opts = append(opts, uparse.WithCase())
			}
			if trace {
				opts = append(opts, uparse.WithTrace())
			}

			result, err := uparse.Parse(input, rules, opts...)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			printCaptures(cmd, env)
			if !result.Matched {
				fmt.Fprintf(cmd.OutOrStdout(), "no match (stopped at %d of %d)\n",
					result.Remainder.Index+1, input.Len())
				return fmt.Errorf("input did not match")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "matched")
			return nil
		},
	}

	cmd.Flags().BoolVar(&redbol, "redbol", false, "use the legacy compatibility dialect")
	cmd.Flags().BoolVar(&caseSensitive, "case", false, "match case-sensitively")
	cmd.Flags().BoolVar(&trace, "trace", false, "log every rule step")
	cmd.Flags().BoolVar(&asBinary, "binary", false, "treat input as hex bytes")
	cmd.Flags().BoolVar(&asValues, "values", false, "load input as a block of values")

	return cmd
}

func loadInput(arg string, asBinary, asValues bool) (value.Series, error) {
	switch {
	case asBinary && asValues:
		return nil, fmt.Errorf("--binary and --values are mutually exclusive")
	case asBinary:
		data, err := hex.DecodeString(arg)
		if err != nil {
			return nil, fmt.Errorf("decode input: %w", err)
		}
		return value.NewBinary(data), nil
	case asValues:
		block, err := dialect.LoadString(arg)
		if err != nil {
			return nil, fmt.Errorf("load input: %w", err)
		}
		return block, nil
	}
	return value.NewText(arg), nil
}

func printCaptures(cmd *cobra.Command, env *bind.Env) {
	names := env.Names()
	sort.Strings(names)
	for _, name := range names {
		v, _ := env.Get(name)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, v)
	}
}
