package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/duebook/duebook/internal/common"
	"github.com/duebook/duebook/internal/model"
)

// paymentsKey is the single key holding the serialized payment list.
const paymentsKey = "payments"

// LocalStore is the local ledger backing: a SQLite-backed string-to-string
// key/value store in which one key holds the full serialized payment list,
// optionally sealed with a passphrase. It is the offline mirror the fallback
// store degrades to when the remote backing is unreachable.
type LocalStore struct {
	db     *sql.DB
	sealer *Sealer
	dbPath string
}

// NewLocalStore opens (creating if needed) the local store at dbPath. An
// empty passphrase leaves the stored ledger in plaintext.
func NewLocalStore(dbPath, passphrase string) (*LocalStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: local store path", common.ErrMissingConfig)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping local store: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize local store schema: %w", err)
	}

	return &LocalStore{
		db:     db,
		sealer: NewSealer(passphrase),
		dbPath: dbPath,
	}, nil
}

// Close closes the underlying database.
func (l *LocalStore) Close() error {
	return l.db.Close()
}

// LoadAll returns the stored payment list, newest first. A missing key is an
// empty ledger; malformed stored JSON is logged and treated as empty rather
// than failing the load.
func (l *LocalStore) LoadAll(ctx context.Context) ([]model.PaymentRecord, error) {
	raw, err := l.get(ctx, paymentsKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	data, err := l.sealer.Open(raw)
	if err != nil {
		return nil, err
	}

	payments, err := DecodePayments(data)
	if err != nil {
		slog.Warn("local ledger is malformed, treating as empty",
			"path", l.dbPath,
			"error", err)
		return nil, nil
	}

	sortNewestFirst(payments)
	return payments, nil
}

// Create appends a payment to the stored list, assigning an id and timestamp
// when absent.
func (l *LocalStore) Create(ctx context.Context, rec model.PaymentRecord) error {
	if rec.ID == "" {
		rec.ID = model.NewPaymentID()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	payments, err := l.LoadAll(ctx)
	if err != nil {
		return err
	}
	return l.save(ctx, append(payments, rec))
}

// Update applies updates to the payment with the given id.
func (l *LocalStore) Update(ctx context.Context, id string, updates model.PaymentUpdate) error {
	payments, err := l.LoadAll(ctx)
	if err != nil {
		return err
	}

	found := false
	for i, p := range payments {
		if p.ID == id {
			payments[i] = updates.Apply(p)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("payment %s: %w", id, common.ErrNotFound)
	}
	return l.save(ctx, payments)
}

// Delete removes the payment with the given id. Deleting an id that is not
// present is a no-op, mirroring the remote shim's filter semantics.
func (l *LocalStore) Delete(ctx context.Context, id string) error {
	payments, err := l.LoadAll(ctx)
	if err != nil {
		return err
	}

	filtered := payments[:0]
	for _, p := range payments {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	return l.save(ctx, filtered)
}

// ReplaceAll overwrites the stored list wholesale. The fallback store uses
// this to mirror the remote ledger for offline access.
func (l *LocalStore) ReplaceAll(ctx context.Context, payments []model.PaymentRecord) error {
	return l.save(ctx, payments)
}

func (l *LocalStore) save(ctx context.Context, payments []model.PaymentRecord) error {
	sortNewestFirst(payments)

	data, err := EncodePayments(payments)
	if err != nil {
		return fmt.Errorf("encode payments: %w", err)
	}

	value, err := l.sealer.Seal(data)
	if err != nil {
		return err
	}
	return l.set(ctx, paymentsKey, value)
}

func (l *LocalStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := l.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	return value, err
}

func (l *LocalStore) set(ctx context.Context, key, value string) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
