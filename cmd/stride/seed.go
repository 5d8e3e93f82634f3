package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stride/internal/auth"
	"github.com/mesh-intelligence/stride/internal/seed"
	"github.com/mesh-intelligence/stride/pkg/tree"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the configured store with demo data",
		Long: "Write the demo user's sample todos into the configured storage\n" +
			"backend. Accounts live in memory, so the demo account itself is\n" +
			"recreated on every serve; this command only prepares the todos.",
		RunE: runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	defer store.Close()

	if err := seed.Run(tree.New(store), auth.NewService()); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded demo data for user %q\n", seed.DemoUsername)
	return nil
}
