package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfranco1/scrub-in/pkg/core/services"
)

// PublishScheduleCmd creates the publishSchedule command
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishSchedule <start_date> <end_date>",
		Short: "Publish the saved schedule for the given dates to the schedule sheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.PublishSchedule(app.Ctx, app.Database, sheets, app.Cfg, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Published %d entries to tab %q\n\n", result.Entries, result.TabTitle)
			return nil
		},
	}
}
