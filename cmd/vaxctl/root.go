package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vaccination-card/internal/adapters/storage/postgres"
	"vaccination-card/internal/platform/config"
	"vaccination-card/internal/platform/logger"
)

var (
	verbose bool
	dsnFlag string

	cfg config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vaxctl",
	Short: "Herramientas de operación para la cartilla de vacunación",
	Long: `vaxctl aplica migraciones, siembra el catálogo de vacunas y muestra
la cartilla de una persona directamente contra Postgres.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if dsnFlag != "" {
			cfg.DBDSN = dsnFlag
		}

		level := logger.ParseLevel(cfg.LogLevel)
		if verbose {
			level = logger.Debug
		}
		log = logger.New(logger.Options{
			Level:  level,
			Format: logger.ParseFormat(cfg.LogFormat),
			App:    "vaxctl",
			Output: os.Stderr,
		})
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "Postgres DSN (default: DB_DSN)")
}

func openDB() (*sql.DB, error) {
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required (or --dsn)")
	}
	db, err := postgres.Open(cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}
