package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "uparse",
		Short: "Match parse-dialect rules against text, binary or block input",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbose", "v", 0, "log verbosity (repeatable)")

	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newKeywordsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
