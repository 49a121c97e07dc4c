// Package cli provides the command-line interface for accessstat.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/accessstat/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()
	commands.ExitCode = 0

	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors prevents Cobra from printing this
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "accessstat",
		Short: "Compute statistics from HTTP access logs",
		Long: `accessstat reads an HTTP access log in combined format and reports:
  - Requests per minute
  - Most requested pages, overall and unsuccessful
  - Most active client addresses with their most requested pages
  - Percentage of successful and unsuccessful requests

Lines that do not match the format are reported on stderr and skipped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewStatisticsCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
