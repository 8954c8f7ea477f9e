// Package store defines the ledger's backing stores. The remote spreadsheet
// endpoint and the local database are two interchangeable physical backings
// for the same logical ledger; the fallback store composes them so a failed
// remote call degrades to the local copy within the same operation.
package store

import (
	"context"
	"sort"

	"github.com/duebook/duebook/internal/model"
)

// Store is the contract every ledger backing implements. LoadAll returns the
// full payment list; mutations are fire-and-reload, so none of the write
// operations return the stored record.
type Store interface {
	// LoadAll returns every payment in the backing, newest first.
	LoadAll(ctx context.Context) ([]model.PaymentRecord, error)
	// Create persists a new payment. The record's ID may be empty, in which
	// case the backing assigns one.
	Create(ctx context.Context, rec model.PaymentRecord) error
	// Update applies an explicit update to the payment with the given id.
	Update(ctx context.Context, id string, updates model.PaymentUpdate) error
	// Delete removes the payment with the given id.
	Delete(ctx context.Context, id string) error
	// Close releases any resources held by the backing.
	Close() error
}

// sortNewestFirst orders payments by date descending, matching the ledger's
// display order. Ties keep their relative order.
func sortNewestFirst(payments []model.PaymentRecord) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[j].Date.Before(payments[i].Date)
	})
}
