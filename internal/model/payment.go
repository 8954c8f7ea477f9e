package model

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is a single recorded instance of money applied toward an
// expense. Records are append-only: once created they change only through an
// explicit update or delete. Category references an Expense.ID but is not
// enforced as a foreign key; payments against retired expenses remain valid
// history.
type PaymentRecord struct {
	ID        string
	Category  string
	Amount    decimal.Decimal
	Date      Date
	Notes     string
	Timestamp time.Time
}

// NewPaymentID generates a ledger id in the same "pay_<millis>_<random>"
// shape the spreadsheet shim assigns, so ids are interchangeable between
// backings.
func NewPaymentID() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// clock so id generation cannot abort a payment.
		return fmt.Sprintf("pay_%d_%d", time.Now().UnixMilli(), time.Now().UnixNano()%1_000_000_000)
	}
	return fmt.Sprintf("pay_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}

// Validate rejects records that should never reach a backing store.
func (p PaymentRecord) Validate() error {
	if p.Category == "" {
		return fmt.Errorf("payment: missing category")
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("payment: amount must be positive")
	}
	if p.Date.IsZero() {
		return fmt.Errorf("payment: missing date")
	}
	return nil
}

// PaymentUpdate carries the fields of an explicit payment update. Nil fields
// are left unchanged.
type PaymentUpdate struct {
	Category *string
	Amount   *decimal.Decimal
	Date     *Date
	Notes    *string
}

// Apply returns a copy of p with the non-nil updates applied.
func (u PaymentUpdate) Apply(p PaymentRecord) PaymentRecord {
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Amount != nil {
		p.Amount = *u.Amount
	}
	if u.Date != nil {
		p.Date = *u.Date
	}
	if u.Notes != nil {
		p.Notes = *u.Notes
	}
	return p
}

// IsEmpty reports whether the update would change nothing.
func (u PaymentUpdate) IsEmpty() bool {
	return u.Category == nil && u.Amount == nil && u.Date == nil && u.Notes == nil
}
