package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stride/internal/sqlite"
	"github.com/mesh-intelligence/stride/pkg/types"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize stride storage",
		Long:  "Create configuration and data directories, then initialize the storage backend.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The memory backend has nothing on disk to set up.
	if cfg.Backend == types.BackendSQLite {
		store, err := sqlite.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("initialize storage: %w", err)
		}
		if err := store.Close(); err != nil {
			return fmt.Errorf("finalize storage: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Stride initialized successfully")
	return nil
}
