// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/tokenmaster/internal/db"
	"github.com/toeirei/tokenmaster/internal/logging"
	"github.com/toeirei/tokenmaster/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the token backend",
		Long: `Serve the token REST API. Tokens are kept in the store configured under
server.store (csv, sqlite, postgres or mysql).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appConfig.Server
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Addr = addr
			}

			start := time.Now()
			store, err := db.New(cfg.Store.Type, cfg.Store.Dsn)
			if err != nil {
				return fmt.Errorf("open %s store: %w", cfg.Store.Type, err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					logging.Warnf("closing store: %v", err)
				}
			}()
			logging.Infof("opened %s store in %s", cfg.Store.Type, elapsed(start))

			srv := server.New(store, server.Options{
				AllowedOrigins: cfg.AllowedOrigins,
				MaxUploadBytes: cfg.MaxUploadBytes,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, cfg.Addr)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	return cmd
}
