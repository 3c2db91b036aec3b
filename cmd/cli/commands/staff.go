package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfranco1/scrub-in/pkg/core/services"
)

// ImportStaffCmd creates the importStaff command
func ImportStaffCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importStaff",
		Short: "Sync the staff table from the roster sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.ImportStaff(app.Ctx, app.Database, sheets, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Imported %d staff members\n", result.Imported)
			if len(result.Deactivated) > 0 {
				fmt.Printf("\nMarked inactive (no longer on the roster):\n")
				for _, member := range result.Deactivated {
					fmt.Printf("  - %s (%d)\n", member.Name, member.ID)
				}
			}
			fmt.Println()

			return nil
		},
	}
}

// ListStaffCmd creates the listStaff command
func ListStaffCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listStaff",
		Short: "List staff members in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")

			staff, err := services.ListStaff(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			shown := 0
			fmt.Println()
			for _, member := range staff {
				if !member.Active && !all {
					continue
				}
				shown++

				details := member.Role
				if member.Specialization != "" {
					details += ", " + member.Specialization
				}
				status := ""
				if !member.Active {
					status = " [inactive]"
				}
				fmt.Printf("%4d  %-28s %-24s %s%s\n", member.ID, member.Name, details, member.Email, status)
			}
			fmt.Printf("\n%d staff members\n\n", shown)

			return nil
		},
	}

	cmd.Flags().Bool("all", false, "Include inactive staff")

	return cmd
}
