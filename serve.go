package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"repair_desk/internal/app"
	"repair_desk/internal/repair"
	"repair_desk/internal/server"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report form, task board and JSON endpoints",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := app.SetupEnvironment(configPath)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := app.InitializeStore(ctx, cfg, useMemory)
	notifier := app.InitializeNotificationClient(cfg)
	repairs := repair.NewService(store, notifier)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.New(repairs).Router(),
		ReadHeaderTimeout: 2 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Bool("datastore_available", store.Available()).
			Msg("Listening for HTTP")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("Signalled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("HTTP shutdown incomplete")
	}

	notifier.Wait()
	sent, failed := notifier.GetMetrics()
	log.Info().Int64("notifications_sent", sent).Int64("notifications_failed", failed).Msg("Stopped")
	return nil
}
