package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/duebook/duebook/internal/server"
	"github.com/duebook/duebook/internal/store"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the payment ledger HTTP endpoint",
		Long: `Serve the payment ledger over HTTP, speaking the same protocol the
remote backing expects: GET / lists payments, POST / creates, updates, or
deletes them. By default payments live in memory; pass --persist to back
the endpoint with the local database.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().Bool("persist", false, "Back the endpoint with the local database")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	var backing store.Store
	if persist, _ := cmd.Flags().GetBool("persist"); persist {
		local, err := openLocalStore()
		if err != nil {
			return err
		}
		backing = local
	} else {
		backing = store.NewMemoryStore()
	}
	defer func() { _ = backing.Close() }()

	addr, _ := cmd.Flags().GetString("addr")
	if v := viper.GetString("server.addr"); v != "" && !cmd.Flags().Changed("addr") {
		addr = v
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(backing, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("ledger endpoint listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("ledger endpoint stopped")
	return nil
}
