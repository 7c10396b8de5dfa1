package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the server-computed aggregates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := app.orchestrator()
			if err != nil {
				return err
			}
			stats, err := orch.RefreshStats(cmd.Context())
			if err != nil {
				return err
			}

			if app.JSON {
				return printJSON(cmd, stats)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total books:    %d\n", stats.Total)
			fmt.Fprintf(cmd.OutOrStdout(), "Finished:       %d\n", stats.Finished)
			fmt.Fprintf(cmd.OutOrStdout(), "Average rating: %s\n", avgRatingText(stats.AvgRating))
			return nil
		},
	}
}
