package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/duebook/duebook/internal/config"
	"github.com/duebook/duebook/internal/ledger"
	"github.com/duebook/duebook/internal/sheets"
	"github.com/duebook/duebook/internal/store"
)

// openLocalStore opens the local database, the backing that always exists.
func openLocalStore() (*store.LocalStore, error) {
	dbPath := viper.GetString("storage.local_path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/duebook/ledger.db"
	}
	dbPath = config.ExpandPath(dbPath)

	passphrase := viper.GetString("storage.passphrase")
	return store.NewLocalStore(dbPath, passphrase)
}

// openStore selects the ledger backing from configuration: the remote
// endpoint or the spreadsheet when configured (each with the local store as
// offline fallback), otherwise the local store alone.
func openStore(ctx context.Context) (store.Store, error) {
	local, err := openLocalStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	if viper.GetBool("storage.local_only") {
		return local, nil
	}

	if url := viper.GetString("remote.url"); url != "" {
		remote, remoteErr := store.NewRemoteStore(url, viper.GetDuration("remote.timeout"))
		if remoteErr != nil {
			_ = local.Close()
			return nil, remoteErr
		}
		return store.NewFallbackStore(remote, local), nil
	}

	sheetsCfg := config.LoadSheetsConfig()
	if sheetsCfg.Configured() {
		sheetStore, sheetErr := sheets.NewStore(ctx, sheetsCfg, slog.Default())
		if sheetErr != nil {
			_ = local.Close()
			return nil, fmt.Errorf("failed to open spreadsheet backing: %w", sheetErr)
		}
		return store.NewFallbackStore(sheetStore, local), nil
	}

	return local, nil
}

// openLedger opens the configured backing and loads the ledger from it.
func openLedger(ctx context.Context) (*ledger.Ledger, error) {
	backing, err := openStore(ctx)
	if err != nil {
		return nil, err
	}

	book := ledger.New(backing)
	if _, err := book.Load(ctx); err != nil {
		_ = book.Close()
		return nil, err
	}
	return book, nil
}

// formatCurrency renders an amount as $1,234.56.
func formatCurrency(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	// Insert thousands separators into the integer part.
	intPart := s[:len(s)-3]
	frac := s[len(s)-3:]
	var out []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}

	result := "$" + string(out) + frac
	if neg {
		result = "-" + result
	}
	return result
}
