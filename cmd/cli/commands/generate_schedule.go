package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mfranco1/scrub-in/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule <start_date> <end_date>",
		Short: "Generate and save a schedule for the given dates (YYYY-MM-DD, inclusive)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, _ := cmd.Flags().GetString("unit")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			force, _ := cmd.Flags().GetBool("force")

			app.Logger.Debug("generateSchedule command",
				zap.String("start", args[0]),
				zap.String("end", args[1]),
				zap.String("unit", unit))

			result, err := services.GenerateSchedule(app.Ctx, app.Database, app.Cfg, app.Logger, services.GenerateScheduleOptions{
				StartDate: args[0],
				EndDate:   args[1],
				Unit:      unit,
				DryRun:    dryRun,
				Force:     force,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nGenerated %d entries for %s to %s", len(result.Schedules), args[0], args[1])
			if result.Unit != "" {
				fmt.Printf(" (%s)", result.Unit)
			}
			fmt.Printf("\n\n")

			rows := summarizeByStaff(result.Staff, result.ShiftTypes, result.Schedules)
			fmt.Printf("%-28s %5s %5s %5s %5s %5s\n", "Staff", "Day", "Eve", "Night", "Other", "Rest")
			for _, row := range rows {
				line := fmt.Sprintf("%-28s %5d %5d %5d %5d %5d", row.Name, row.Day, row.Evening, row.Night, row.Other, row.Rest)
				if row.shifts() == 0 {
					line = colorDim + line + colorReset
				}
				fmt.Println(line)
			}
			fmt.Println()

			printConflicts(result.Conflicts)

			switch {
			case result.Saved:
				fmt.Printf("✓ Saved as batch %s\n\n", result.BatchID)
			case result.Blocked:
				fmt.Printf("%s✗ Not saved: resolve the errors above or rerun with --force%s\n\n", colorRed, colorReset)
			case dryRun:
				fmt.Printf("Dry run, nothing saved.\n\n")
			default:
				fmt.Printf("Nothing to save.\n\n")
			}

			return nil
		},
	}

	cmd.Flags().String("unit", "", "Unit to schedule for (defaults to defaultUnit in config)")
	cmd.Flags().Bool("dry-run", false, "Generate without saving to the database")
	cmd.Flags().Bool("force", false, "Save even if error conflicts are reported")

	return cmd
}
