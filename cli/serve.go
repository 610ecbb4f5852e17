// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/garkas/appstate"
	"github.com/danielhkuo/garkas/auth"
	"github.com/danielhkuo/garkas/middleware"
	"github.com/danielhkuo/garkas/refdata"
	"github.com/danielhkuo/garkas/router"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

The server keeps the current events in memory and refreshes them whenever the
store changes. Changes made by other processes sharing the database, such as
garkas import, are picked up by polling the database, or over Redis pub/sub
with --redis-url.

Example:
  garkas serve -p 3318 -d file:garkas.db
  garkas serve -t postgres -d postgres://localhost/garkas --redis-url redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *RootOptions) error {
	cfg := opts.Config

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()
	slog.Info("Database schema ready")

	// Reference data
	gate := auth.NewGate(refdata.LoadAccessCode(ctx, cfg.ConfigSource))
	persons := refdata.LoadPersons(ctx, cfg.PersonsSource)

	// Live state
	state := appstate.New(persons, time.Now().Year())
	go state.Run(ctx, b.store.Subscribe(ctx), nil)

	go func() {
		err := b.notifier.Listen(ctx, func() { b.store.Refresh(ctx) })
		if err != nil && ctx.Err() == nil {
			slog.Error("change listener stopped", "error", err)
		}
	}()

	// Create router
	mux := router.NewRouter(b.store, state, gate)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
		// Request contexts end on shutdown so open streams return
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(ctrlc)
	go func() {
		select {
		case <-ctrlc:
		case <-ctx.Done():
		}
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
		return err
	}
	slog.Info("Server closed")
	return nil
}
