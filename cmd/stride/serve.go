package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stride/internal/auth"
	"github.com/mesh-intelligence/stride/internal/httpapi"
	"github.com/mesh-intelligence/stride/internal/memory"
	"github.com/mesh-intelligence/stride/internal/seed"
	"github.com/mesh-intelligence/stride/internal/sqlite"
	"github.com/mesh-intelligence/stride/pkg/tree"
	"github.com/mesh-intelligence/stride/pkg/types"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var withSeed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long:  "Open the configured storage backend and serve the todo API over HTTP.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(withSeed)
		},
	}
	cmd.Flags().BoolVar(&withSeed, "seed", false, "populate the store with a demo user and sample todos")
	return cmd
}

func runServe(withSeed bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "stride",
	})

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	defer store.Close()

	engine := tree.New(store)
	accounts := auth.NewService()

	if withSeed {
		if err := seed.Run(engine, accounts); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		logger.Info("seeded demo data", "username", seed.DemoUsername)
	}

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: httpapi.NewServer(engine, accounts, logger).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Listen, "backend", cfg.Backend)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

// openStore builds the store named by the config.
func openStore(cfg types.Config) (types.Store, error) {
	switch cfg.Backend {
	case types.BackendMemory:
		return memory.NewStore(), nil
	case types.BackendSQLite:
		return sqlite.Open(cfg.DataDir)
	default:
		return nil, types.ErrBackendUnknown
	}
}
