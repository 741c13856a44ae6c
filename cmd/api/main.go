package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vaccination-card/internal/adapters/auth/iam"
	"vaccination-card/internal/adapters/storage/postgres"
	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/platform/config"
	"vaccination-card/internal/platform/logger"
	"vaccination-card/internal/ports/auth"
	"vaccination-card/internal/router"
)

// @title Vaccination Card API
// @version 1.0
// @description Cartilla de vacunación: personas, vacunas, registro de dosis y grilla de estado.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{Level: logger.Error}).Error("config error", logger.Fields{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", logger.Fields{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	// sin IAM configurado: modo dev con X-Debug-User-ID
	var verifier auth.AuthVerifier
	if cfg.Auth.Enabled() {
		v, err := iam.NewVerifier(iam.Config{
			BaseURL: cfg.Auth.BaseURL,
			APIKey:  cfg.Auth.APIKey,
			Timeout: cfg.Auth.Timeout,
		})
		if err != nil {
			return err
		}
		verifier = v
	} else {
		log.Warn("auth verifier disabled, using debug header", logger.Fields{})
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			return err
		}
		defer opened.Close()
		db = opened

		if cfg.AutoMigrate {
			if err := postgres.Migrate(db); err != nil {
				return err
			}
			log.Info("migrations applied", logger.Fields{})
		}
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", logger.Fields{})
	}

	var catalog []vaccines.CreateInput
	if cfg.SeedCatalog != "" {
		items, err := vaccines.LoadCatalogFile(cfg.SeedCatalog)
		if err != nil {
			return err
		}
		catalog = items
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Logger:       log,
		Catalog:      catalog,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": cfg.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", logger.Fields{})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
