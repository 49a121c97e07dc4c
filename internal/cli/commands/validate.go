package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/accessstat/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate an accessstat configuration file without reading any log.

Checks:
  - YAML syntax
  - Statistic names
  - Top-N limit, output format and log settings`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Statistics:   %s\n", strings.Join(cfg.Statistics, ", "))
	fmt.Fprintf(out, "  Strip query:  %t\n", cfg.StripQueryString)
	fmt.Fprintf(out, "  Top limit:    %d\n", cfg.TopLimit)
	fmt.Fprintf(out, "  Output:       %s\n", cfg.Output)
	fmt.Fprintf(out, "  Log:          %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
	if cfg.MetricsTextfile != "" {
		fmt.Fprintf(out, "  Metrics file: %s\n", cfg.MetricsTextfile)
	}

	return nil
}
