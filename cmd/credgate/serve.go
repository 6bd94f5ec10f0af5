// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/credgate/credgate/internal/auth"
	"github.com/credgate/credgate/internal/config"
	"github.com/credgate/credgate/internal/directory"
	"github.com/credgate/credgate/internal/httpapi"
	"github.com/credgate/credgate/internal/logging"
	"github.com/credgate/credgate/internal/observability"
	"github.com/credgate/credgate/internal/token"
	"github.com/credgate/credgate/internal/xdg"
)

// newServeCmd creates the serve subcommand with all flags configured.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gateway HTTP server",
		Long: `Start the gateway process which accepts login requests, verifies
credentials against the upstream user directory and issues bearer tokens.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd)
		},
	}

	// Flag names mirror config keys so they layer through the flag provider.
	cmd.Flags().String("http.addr", "", "HTTP listen address")
	cmd.Flags().String("metrics.addr", "", "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().String("upstream.base_url", "", "upstream user directory base URL")
	cmd.Flags().String("log.format", "", "log format (json or text)")

	return cmd
}

// runServe starts the gateway process.
func runServe(ctx context.Context, cmd *cobra.Command) error {
	path := configFile
	if path == "" {
		path = xdg.DefaultConfigFile()
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	// Refuse to start on incomplete configuration rather than issue
	// tokens with guessed signing material.
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logging.SetDefault("credgate", version, cfg.Log.Format)
	logger := slog.Default()

	logger.Info("starting gateway process",
		"http_addr", cfg.HTTP.Addr,
		"upstream_base_url", cfg.Upstream.BaseURL,
		"token_algorithm", cfg.Token.Algorithm,
		"token_ttl", cfg.Token.TTL.String(),
		"log_format", cfg.Log.Format,
	)

	dirClient, err := directory.NewHTTPClient(cfg.Upstream)
	if err != nil {
		return fmt.Errorf("failed to create directory client: %w", err)
	}

	issuer, err := token.NewIssuer(cfg.Token)
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}

	svc, err := auth.NewServiceWithLogger(dirClient, auth.NewVerifier(), issuer, logger)
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}

	api, err := httpapi.NewServer(cfg.HTTP, svc, logger)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	apiErrChan, err := api.Start()
	if err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	logger.Info("login endpoint listening", "addr", api.Addr())

	// Start observability server if configured
	var obsServer *observability.Server
	var obsErrChan <-chan error
	if cfg.Metrics.Addr != "" {
		// Ready once the login endpoint is accepting connections.
		obsServer = observability.NewServer(cfg.Metrics.Addr, func() bool {
			return api.Addr() != ""
		})
		auth.RegisterMetrics(obsServer.Registry())
		directory.RegisterMetrics(obsServer.Registry())

		obsErrChan, err = obsServer.Start()
		if err != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer shutdownCancel()
			_ = api.Stop(shutdownCtx)
			return fmt.Errorf("failed to start observability server: %w", err)
		}
		logger.Info("observability server started", "addr", obsServer.Addr())
	}

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	cmd.Println("Gateway process started")
	logger.Info("gateway process ready", "http_addr", api.Addr())

	// Wait for shutdown signal or a server failure
	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	case serveErr := <-apiErrChan:
		if serveErr != nil {
			logger.Error("HTTP server failed", "error", serveErr)
		}
	case obsErr := <-obsErrChan:
		if obsErr != nil {
			logger.Error("observability server failed", "error", obsErr)
		}
	}

	return shutdownServers(logger, cfg.HTTP.ShutdownTimeout, api, obsServer)
}

// shutdownServers stops the HTTP servers within the configured grace period.
func shutdownServers(logger *slog.Logger, timeout time.Duration, api *httpapi.Server, obs *observability.Server) error {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	var firstErr error
	if err := api.Stop(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
		firstErr = err
	}
	if obs != nil {
		if err := obs.Stop(shutdownCtx); err != nil {
			logger.Error("observability server shutdown failed", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	logger.Info("gateway process stopped")
	return firstErr
}
