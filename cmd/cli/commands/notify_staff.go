package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfranco1/scrub-in/pkg/core/services"
)

// NotifyStaffCmd creates the notifyStaff command
func NotifyStaffCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "notifyStaff <start_date> <end_date>",
		Short: "Email each scheduled staff member their assignments for the given dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gmail, err := app.GmailClient()
			if err != nil {
				return err
			}

			result, err := services.NotifyStaff(app.Ctx, app.Database, gmail, app.Cfg, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Notifications finished\n\n")

			if len(result.Sent) > 0 {
				fmt.Printf("Sent to %d staff:\n", len(result.Sent))
				for _, member := range result.Sent {
					fmt.Printf("  ✓ %s (%s)\n", member.Name, member.Email)
				}
				fmt.Println()
			}

			if len(result.Skipped) > 0 {
				fmt.Printf("Skipped %d staff with no email address:\n", len(result.Skipped))
				for _, member := range result.Skipped {
					fmt.Printf("  - %s (%d)\n", member.Name, member.ID)
				}
				fmt.Println()
			}

			if len(result.Failed) > 0 {
				fmt.Printf("%s⚠️  Failed to send %d emails:%s\n", colorYellow, len(result.Failed), colorReset)
				for _, failure := range result.Failed {
					fmt.Printf("  ✗ %s (%s): %v\n", failure.Staff.Name, failure.Staff.Email, failure.Err)
				}
				fmt.Println()
			}

			if len(result.Sent) == 0 && len(result.Skipped) == 0 && len(result.Failed) == 0 {
				fmt.Println("No scheduled staff in that range.")
			}

			return nil
		},
	}
}
