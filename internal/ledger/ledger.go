// Package ledger owns the in-memory payment list. The ledger is the single
// source of truth for derivation; its backing store is just the physical
// mirror. Every mutation persists through the store and then reloads the
// list wholesale, so the cached snapshot can never drift from the backing.
package ledger

import (
	"context"
	"fmt"

	"github.com/duebook/duebook/internal/common"
	"github.com/duebook/duebook/internal/model"
	"github.com/duebook/duebook/internal/store"
)

// Ledger holds the loaded payment list and the store it mirrors to. It is
// not safe for concurrent use; all mutation is driven sequentially by user
// actions.
type Ledger struct {
	store    store.Store
	payments []model.PaymentRecord
}

// New creates a ledger over the given backing store. Call Load before
// reading the snapshot.
func New(s store.Store) *Ledger {
	return &Ledger{store: s}
}

// Load reloads the payment list from the backing store and returns a fresh
// snapshot.
func (l *Ledger) Load(ctx context.Context) ([]model.PaymentRecord, error) {
	payments, err := l.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	l.payments = payments
	return l.Snapshot(), nil
}

// Add validates and persists a new payment, then reloads. Invalid records
// are rejected before any persistence attempt.
func (l *Ledger) Add(ctx context.Context, rec model.PaymentRecord) ([]model.PaymentRecord, error) {
	if err := rec.Validate(); err != nil {
		return nil, common.NewUserError("invalid payment", err)
	}
	if err := l.store.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	return l.Load(ctx)
}

// Remove deletes the payment with the given id, then reloads.
func (l *Ledger) Remove(ctx context.Context, id string) ([]model.PaymentRecord, error) {
	if id == "" {
		return nil, common.NewUserError("missing payment id", common.ErrNotFound)
	}
	if err := l.store.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete payment %s: %w", id, err)
	}
	return l.Load(ctx)
}

// Update applies an explicit update to the payment with the given id, then
// reloads.
func (l *Ledger) Update(ctx context.Context, id string, updates model.PaymentUpdate) ([]model.PaymentRecord, error) {
	if updates.IsEmpty() {
		return nil, common.NewUserError("nothing to update", common.ErrInvalidConfig)
	}
	if err := l.store.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("update payment %s: %w", id, err)
	}
	return l.Load(ctx)
}

// Snapshot returns a copy of the currently loaded payment list. Callers can
// hold and reslice it freely without aliasing the ledger's state.
func (l *Ledger) Snapshot() []model.PaymentRecord {
	out := make([]model.PaymentRecord, len(l.payments))
	copy(out, l.payments)
	return out
}

// Close releases the backing store.
func (l *Ledger) Close() error {
	return l.store.Close()
}
