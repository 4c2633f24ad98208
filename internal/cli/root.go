// Package cli implements the corkboard command-line interface: the root
// command, global flags, configuration loading, and the serve and
// version subcommands.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

// flagConfigDir holds the --config-dir global flag value.
var flagConfigDir string

// NewRootCmd creates the top-level "corkboard" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "corkboard",
		Short: "Corkboard is an in-memory task tracking service",
		Long: "Corkboard serves a uniform CRUD API over an in-memory task store.\n" +
			"Records live for the process lifetime; nothing is persisted.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "",
		"configuration directory (default: .corkboard)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

// resolveConfigDir returns the config directory from flag, env, or
// default.
func resolveConfigDir() string {
	if flagConfigDir != "" {
		return flagConfigDir
	}
	if v := os.Getenv("CORKBOARD_CONFIG_DIR"); v != "" {
		return v
	}
	return ".corkboard"
}
