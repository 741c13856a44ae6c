package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vaccination-card/internal/adapters/storage/postgres"
	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/platform/logger"
)

var catalogFile string

var seedCmd = &cobra.Command{
	Use:   "seed-vaccines",
	Short: "Carga el catálogo YAML de vacunas (idempotente)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := catalogFile
		if path == "" {
			path = cfg.SeedCatalog
		}
		if path == "" {
			return fmt.Errorf("--file is required (or SEED_CATALOG)")
		}

		items, err := vaccines.LoadCatalogFile(path)
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		svc := vaccines.NewService(postgres.NewVaccinesRepo(db), vaccines.WithLogger(log))
		res, err := svc.Seed(cmd.Context(), items)
		if err != nil {
			return err
		}

		log.Info("catalog seeded", logger.Fields{"file": path, "created": res.Created, "skipped": res.Skipped})
		fmt.Fprintf(cmd.OutOrStdout(), "created=%d skipped=%d\n", res.Created, res.Skipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&catalogFile, "file", "f", "", "YAML catalog file")
	rootCmd.AddCommand(seedCmd)
}
