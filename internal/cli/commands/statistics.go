package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/accessstat/pkg/analyzer"
)

// NewStatisticsCommand creates the statistics command.
func NewStatisticsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "statistics",
		Short: "List the available statistics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, stat := range analyzer.ReportOrder {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %s\n", stat, analyzer.Descriptions[stat])
			}
		},
	}
}
