package main

import (
	"fmt"

	"github.com/dhamidi/parse/uparse"
	"github.com/spf13/cobra"
)

func newKeywordsCmd() *cobra.Command {
	var redbol bool

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "List the dispatch keys of the active combinator table",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := uparse.DefaultTable()
			if redbol {
				table = uparse.RedbolTable()
			}
			for _, key := range table.Keys() {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&redbol, "redbol", false, "list the legacy compatibility dialect")

	return cmd
}
