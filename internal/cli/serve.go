package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/corkboard/internal/httpapi"
	"github.com/mesh-intelligence/corkboard/internal/memstore"
	"github.com/mesh-intelligence/corkboard/pkg/board"
)

func newServeCmd() *cobra.Command {
	var flagAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the corkboard HTTP server",
		Long: "Serve the task CRUD API over HTTP. The store is in-memory and\n" +
			"scoped to the process; stopping the server discards all records.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(resolveConfigDir())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := newLogger(cfg)

			addr := cfg.GetString(cfgKeyAddr)
			if flagAddr != "" {
				addr = flagAddr
			}

			store := memstore.New(board.Schema(), logger)
			server := httpapi.New(store, board.NewValidator(), logger, addr)

			logger.Info("corkboard starting", "version", Version, "addr", addr)
			return server.Start()
		},
	}

	cmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides config)")

	return cmd
}
