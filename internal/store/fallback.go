package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/duebook/duebook/internal/common"
	"github.com/duebook/duebook/internal/model"
)

// FallbackStore composes a primary backing (the remote endpoint or the
// spreadsheet itself) with the local store. Every operation tries the
// primary; on failure the same operation runs against the local copy within
// the same call, and the failure is surfaced only as an "offline" log line.
// Successful primary operations are mirrored into the local store so the
// offline copy stays fresh. One fallback step, no queued retries.
type FallbackStore struct {
	primary Store
	local   *LocalStore
}

// NewFallbackStore wraps primary with local as its offline fallback.
func NewFallbackStore(primary Store, local *LocalStore) *FallbackStore {
	return &FallbackStore{primary: primary, local: local}
}

// LoadAll loads from the primary, mirroring the result locally; when the
// primary is unreachable it serves the last mirrored list instead.
func (f *FallbackStore) LoadAll(ctx context.Context) ([]model.PaymentRecord, error) {
	payments, err := f.primary.LoadAll(ctx)
	if err != nil {
		f.logOffline("load", err)
		return f.local.LoadAll(ctx)
	}

	if mirrorErr := f.local.ReplaceAll(ctx, payments); mirrorErr != nil {
		slog.Warn("failed to mirror ledger locally", "error", mirrorErr)
	}
	return payments, nil
}

// Create writes to the primary, mirroring into the local store on success
// and writing locally-only on failure. The id is fixed before the first
// write so both backings agree on it.
func (f *FallbackStore) Create(ctx context.Context, rec model.PaymentRecord) error {
	if rec.ID == "" {
		rec.ID = model.NewPaymentID()
	}

	if err := f.primary.Create(ctx, rec); err != nil {
		f.logOffline("create", err)
		return f.local.Create(ctx, rec)
	}

	if mirrorErr := f.local.Create(ctx, rec); mirrorErr != nil {
		slog.Warn("failed to mirror payment locally", "id", rec.ID, "error", mirrorErr)
	}
	return nil
}

// Update applies the update to the primary, falling back to the local copy
// when the primary is unreachable. A payment the primary genuinely does not
// have is reported, not retried locally.
func (f *FallbackStore) Update(ctx context.Context, id string, updates model.PaymentUpdate) error {
	if err := f.primary.Update(ctx, id, updates); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		f.logOffline("update", err)
		return f.local.Update(ctx, id, updates)
	}

	if mirrorErr := f.local.Update(ctx, id, updates); mirrorErr != nil && !errors.Is(mirrorErr, common.ErrNotFound) {
		slog.Warn("failed to mirror update locally", "id", id, "error", mirrorErr)
	}
	return nil
}

// Delete removes from the primary and always prunes the local mirror, so an
// offline view never resurrects a deleted payment.
func (f *FallbackStore) Delete(ctx context.Context, id string) error {
	if err := f.primary.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		f.logOffline("delete", err)
	}
	return f.local.Delete(ctx, id)
}

// Close closes both backings.
func (f *FallbackStore) Close() error {
	err := f.primary.Close()
	if localErr := f.local.Close(); localErr != nil && err == nil {
		err = localErr
	}
	return err
}

func (f *FallbackStore) logOffline(op string, err error) {
	slog.Warn("remote ledger offline, using local store", "op", op, "error", err)
}
