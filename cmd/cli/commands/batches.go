package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfranco1/scrub-in/pkg/core/services"
)

// ListBatchesCmd creates the listBatches command
func ListBatchesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listBatches",
		Short: "List saved schedule batches, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			batches, err := services.ListScheduleBatches(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			if len(batches) == 0 {
				fmt.Printf("\nNo saved schedules.\n\n")
				return nil
			}

			fmt.Println()
			for _, batch := range batches {
				unit := ""
				if batch.Unit != nil {
					unit = *batch.Unit
				}
				fmt.Printf("%s  %s to %s  %-10s %4d entries  (created %s)\n",
					batch.ID,
					batch.StartDate,
					batch.EndDate,
					unit,
					batch.EntryCount,
					batch.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			fmt.Println()

			return nil
		},
	}
}

// RevertScheduleCmd creates the revertSchedule command
func RevertScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "revertSchedule <batch_id>",
		Short: "Delete every entry saved by one generateSchedule run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.RevertSchedule(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Reverted batch %s (%s to %s): %d entries deleted\n\n",
				result.Batch.ID,
				result.Batch.StartDate,
				result.Batch.EndDate,
				result.DeletedEntries)

			return nil
		},
	}
}
