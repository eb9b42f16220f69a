package main

import (
	"fmt"

	"github.com/dhamidi/parse/dialect"
	"github.com/spf13/cobra"
)

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <rules>",
		Short: "Load dialect text and dump the resulting block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := dialect.LoadString(args[0])
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), block)
			return nil
		},
	}
}
