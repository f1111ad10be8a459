package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vlcpresence/internal/config"
	"vlcpresence/internal/discord"
	"vlcpresence/internal/history"
	"vlcpresence/internal/player"
	"vlcpresence/internal/poller"
	"vlcpresence/internal/server"
	"vlcpresence/internal/vlc"

	"github.com/spf13/cobra"
)

func newRunCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Poll VLC and keep the Discord presence up to date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), app)
		},
	}
}

func runDaemon(ctx context.Context, app *appContext) error {
	cfg, logger := app.config, app.logger
	logger.Info("Starting Discord RPC and VLC HTTP poller")

	if cfg.VLC.Launch {
		if _, err := vlc.Launch(&cfg.VLC, logger); err != nil {
			logger.WithError(err).Warn("Could not launch VLC, expecting it to be started separately")
		}
	}

	source := vlc.NewClient(&cfg.VLC, logger)
	readyTimeout := time.Duration(cfg.VLC.ReadyTimeoutSeconds) * time.Second
	if !source.WaitUntilReady(ctx, readyTimeout) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("VLC HTTP interface not reachable at %s after %s", source.StatusURL(), readyTimeout)
	}
	logger.WithField("url", source.StatusURL()).Info("VLC HTTP interface reachable")

	sink := discord.NewRPCService(&cfg.Discord, logger)
	if err := sink.Connect(); err != nil {
		logger.WithError(err).Warn("Discord RPC not available yet, will retry on the next update")
	}

	state := player.NewStateManager()
	opts := []poller.Option{poller.WithStateManager(state)}

	var journal *history.Journal
	if cfg.History.Enabled {
		var err error
		journal, err = history.Open(cfg.History.Path, logger)
		if err != nil {
			return fmt.Errorf("error initializing history: %w", err)
		}
		defer journal.Close()
		opts = append(opts, poller.WithRecorder(journal))
	}

	watcher, err := config.NewWatcher(app.configPath, logger)
	if err != nil {
		logger.WithError(err).Warn("Could not watch configuration, changes need a restart")
	} else {
		go watcher.Run(ctx)
		opts = append(opts, poller.WithReloads(watcher.Updates()))
	}

	if cfg.Status.Enabled {
		var reader server.HistoryReader
		if journal != nil {
			reader = journal
		}
		status := server.NewStatusServer(&cfg.Status, state, reader, logger)
		go func() {
			if err := status.Start(); err != nil {
				logger.WithError(err).Error("Status server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			status.Shutdown(shutdownCtx)
		}()
	}

	loop := poller.New(&cfg.Poll, source, sink, logger, opts...)
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("Received shutdown signal")
	return nil
}
