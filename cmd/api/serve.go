package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gfg-stable-backend/internal/config"
	"gfg-stable-backend/internal/infrastructure/database"
	"gfg-stable-backend/internal/infrastructure/tlsconfig"
	"gfg-stable-backend/internal/interfaces/router"
	"gfg-stable-backend/internal/middleware"
	"gfg-stable-backend/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply schema migrations and seed roles before serving")
	return cmd
}

func serve(parent context.Context, migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.LogLevel, !cfg.IsProduction())

	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if rdb != nil {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		}
		if err := database.Close(db); err != nil {
			log.Warn().Err(err).Msg("database close")
		}
	}()

	if migrate {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
	}

	var tlsCfg *tls.Config
	if cfg.TLSWanted() {
		tlsCfg, err = tlsconfig.Load(tlsconfig.Sources{
			KeyPath:  cfg.SSLKeyPath,
			CertPath: cfg.SSLCertPath,
			CAPath:   cfg.SSLCAPath,
			Key:      cfg.SSLKey,
			Cert:     cfg.SSLCert,
			CA:       cfg.SSLCA,
		})
		if err != nil {
			return err
		}
		if tlsCfg == nil && cfg.IsProduction() {
			log.Warn().Msg("SSL not configured - running in HTTP mode")
		}
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	addr := ":" + cfg.Port
	go func() {
		if tlsCfg == nil {
			log.Info().Str("env", cfg.Env).Str("addr", addr).Msg("GFG Stable Backend running")
			errCh <- app.Listen(addr)
			return
		}
		ln, err := tls.Listen("tcp", addr, tlsCfg)
		if err != nil {
			errCh <- err
			return
		}
		log.Info().Str("env", cfg.Env).Str("addr", addr).Msg("GFG Stable Backend (HTTPS) running")
		errCh <- app.Listener(ln)
	}()

	var redirect *fiber.App
	if tlsCfg != nil && cfg.HTTPPort != "" && cfg.HTTPPort != cfg.Port {
		redirect = fiber.New(fiber.Config{DisableStartupMessage: true})
		redirect.Use(middleware.RedirectHandler)
		go func() {
			log.Info().Str("addr", ":"+cfg.HTTPPort).Msg("HTTP redirect server running")
			errCh <- redirect.Listen(":" + cfg.HTTPPort)
		}()
	}

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return err
		}
	}

	if redirect != nil {
		if err := redirect.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Warn().Err(err).Msg("redirect server shutdown")
		}
	}
	return app.ShutdownWithTimeout(shutdownTimeout)
}
