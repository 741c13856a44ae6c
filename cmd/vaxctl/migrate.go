package main

import (
	"github.com/spf13/cobra"

	"vaccination-card/internal/adapters/storage/postgres"
	"vaccination-card/internal/platform/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.Migrate(db); err != nil {
			return err
		}
		log.Info("migrations applied", logger.Fields{})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
