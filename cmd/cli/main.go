package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mfranco1/scrub-in/cmd/cli/commands"
	"github.com/mfranco1/scrub-in/internal/config"
	"github.com/mfranco1/scrub-in/pkg/postgres"
	"github.com/mfranco1/scrub-in/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scrub-in",
		Short: "scrub-in - Hospital staff shift scheduling",
		Long: `A CLI tool for generating fair hospital shift schedules, checking assignments
for conflicts, and publishing schedules to staff.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (selects scrub_in_config.<env>.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.ImportStaffCmd(app))
	rootCmd.AddCommand(commands.ListStaffCmd(app))
	rootCmd.AddCommand(commands.GenerateScheduleCmd(app))
	rootCmd.AddCommand(commands.CheckEntryCmd(app))
	rootCmd.AddCommand(commands.ListBatchesCmd(app))
	rootCmd.AddCommand(commands.RevertScheduleCmd(app))
	rootCmd.AddCommand(commands.PublishScheduleCmd(app))
	rootCmd.AddCommand(commands.NotifyStaffCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger, config and database. Google clients are created on demand.
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Database = database
	app.Logger.Info("Database connected")

	return nil
}
