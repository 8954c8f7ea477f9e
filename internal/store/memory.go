package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/duebook/duebook/internal/common"
	"github.com/duebook/duebook/internal/model"
)

// MemoryStore is an in-memory Store. It backs the serve command when no
// spreadsheet is configured and stands in for real backings in tests.
type MemoryStore struct {
	mu       sync.Mutex
	payments []model.PaymentRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadAll returns a copy of the stored payments, newest first.
func (m *MemoryStore) LoadAll(_ context.Context) ([]model.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.PaymentRecord, len(m.payments))
	copy(out, m.payments)
	sortNewestFirst(out)
	return out, nil
}

// Create appends a payment, assigning an id and timestamp when absent.
func (m *MemoryStore) Create(_ context.Context, rec model.PaymentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.ID == "" {
		rec.ID = model.NewPaymentID()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	m.payments = append(m.payments, rec)
	return nil
}

// Update applies updates to the payment with the given id.
func (m *MemoryStore) Update(_ context.Context, id string, updates model.PaymentUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.payments {
		if p.ID == id {
			m.payments[i] = updates.Apply(p)
			return nil
		}
	}
	return fmt.Errorf("payment %s: %w", id, common.ErrNotFound)
}

// Delete removes the payment with the given id.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.payments {
		if p.ID == id {
			m.payments = append(m.payments[:i], m.payments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("payment %s: %w", id, common.ErrNotFound)
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }
