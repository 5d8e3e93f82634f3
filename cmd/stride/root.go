package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	listen    string
}

var flags rootFlags

// NewRootCmd creates the top-level "stride" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stride",
		Short: "A hierarchical todo tracking server",
		Long: "Stride stores todos as a tree: root-level entries are goals and\n" +
			"nested entries are the steps toward them. The serve command exposes\n" +
			"the tree over HTTP.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .stride)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .stride-db)")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend: memory or sqlite (default: from config)")
	root.PersistentFlags().StringVar(&flags.listen, "listen", "", "listen address (default: from config)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newInitCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}
