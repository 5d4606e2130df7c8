package main

import (
	"context"
	"os"

	"gfg-stable-backend/internal/config"
	"gfg-stable-backend/internal/infrastructure/database"
	"gfg-stable-backend/internal/pkg/logger"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// withDB opens the configured database for a one-shot command and closes it afterwards.
func withDB(ctx context.Context, fn func(ctx context.Context, db *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.LogLevel, !cfg.IsProduction())
	db, err := database.Open(cfg.DatabaseURL, database.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		IdleTimeout:  cfg.DBIdleTimeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn().Err(err).Msg("database close")
		}
	}()
	return fn(ctx, db)
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed the fixed roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(_ context.Context, db *gorm.DB) error {
				if err := database.AutoMigrate(db); err != nil {
					return err
				}
				log.Info().Msg("Migrations completed")
				return nil
			})
		},
	}
}

func newSeedCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the initial administrator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			return withDB(cmd.Context(), func(ctx context.Context, db *gorm.DB) error {
				if err := database.SeedRoles(ctx, db); err != nil {
					return err
				}
				_, err := database.SeedAdmin(ctx, db, email, password)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", database.DefaultAdminEmail, "administrator email")
	cmd.Flags().StringVar(&password, "password", "", "administrator password (defaults to $ADMIN_PASSWORD)")
	return cmd
}
