package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexshd/dispatch"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "s3dispatch",
		Short: "Run class-dispatched statistics generics on a dataset",
		Long: `s3dispatch calls the summary and rss generics on datasets and fitted
models. Each call is resolved by the value's classes, most specific first,
falling back to the generic's default.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(dispatch.NewLogger(os.Stderr, dispatch.VerbosityLevel(verbosity)))
			slog.Debug("command started", "command", cmd.Name())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG)")

	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newRSSCmd())
	rootCmd.AddCommand(newMethodsCmd())

	return rootCmd
}
