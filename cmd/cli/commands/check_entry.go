package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mfranco1/scrub-in/pkg/core/services"
)

// CheckEntryCmd creates the checkEntry command
func CheckEntryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkEntry <staff_id> <date>",
		Short: "Check a proposed assignment for conflicts and suggest replacements",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			staffID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("staff_id must be a number: %w", err)
			}

			opts := services.CheckEntryOptions{
				StaffID: staffID,
				Date:    args[1],
			}
			opts.Unit, _ = cmd.Flags().GetString("unit")
			opts.DutyTypeID, _ = cmd.Flags().GetInt64("duty-type")
			if cmd.Flags().Changed("shift-type") {
				shiftTypeID, _ := cmd.Flags().GetInt64("shift-type")
				opts.ShiftTypeID = &shiftTypeID
			}

			result, err := services.CheckEntry(app.Ctx, app.Database, app.Cfg, app.Logger, opts)
			if err != nil {
				return err
			}

			fmt.Printf("\nChecking %s (%d) on %s\n\n", result.Staff.Name, result.Staff.ID, result.Candidate.Date)
			printConflicts(result.Conflicts)

			if len(result.Suggestions) == 0 {
				fmt.Printf("No alternative staff available.\n\n")
				return nil
			}

			fmt.Printf("Alternatives:\n")
			for i, member := range result.Suggestions {
				specialization := ""
				if member.Specialization != "" {
					specialization = fmt.Sprintf(" [%s]", member.Specialization)
				}
				fmt.Printf("  %2d. %s (%d)%s\n", i+1, member.Name, member.ID, specialization)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int64("shift-type", 0, "Shift type ID of the proposed entry (omit for a rest entry)")
	cmd.Flags().Int64("duty-type", 0, "Duty type ID of the proposed entry")
	cmd.Flags().String("unit", "", "Unit of the proposed entry (defaults to defaultUnit in config)")

	return cmd
}
