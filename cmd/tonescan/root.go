// Package main provides the entry point for the tonescan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for tonescan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tonescan",
		Short: "Per-line sentiment and toxicity scoring for text",
		Long: `tonescan scores each line of a text submission with a set of sentiment
and toxicity engines and renders the results as a table.

Local lexicon engines (vader, polarity, subjectivity) always run.
The remote toxicity engine is opt-in with --remote and requires an API key.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScoreCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
