package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendlog/server/internal/storage/postgres"
)

var migrateDownSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Apply all pending database migrations to the configured database.

Use --down N to roll back the last N migrations instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}

		if migrateDownSteps > 0 {
			if err := postgres.MigrateDown(cfg.Database.URL, migrateDownSteps); err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", migrateDownSteps)
			return nil
		}

		if err := postgres.MigrateUp(cfg.Database.URL); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

func init() {
	migrateCmd.Flags().IntVar(&migrateDownSteps, "down", 0, "roll back the last N migrations")
}
