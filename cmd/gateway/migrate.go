package main

import (
	"github.com/homeauctiondeals/gateway/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the property schema",
	Long: `migrate applies the embedded SQL migrations to the configured database.
Meant for local and staging databases; the production property table is
loaded by another system.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		if err := database.Migrate(cmd.Context(), &log, cfg); err != nil {
			log.Error().Err(err).Msg("migration failed")
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
