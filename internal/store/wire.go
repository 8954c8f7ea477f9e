package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/duebook/duebook/internal/model"
)

// PaymentJSON is the wire and storage representation of a PaymentRecord:
// the JSON shape the remote shim speaks and the local store serializes.
// Amounts travel as JSON numbers via json.Number so decimal values survive
// the round trip exactly.
type PaymentJSON struct {
	Date      string      `json:"date"`
	Category  string      `json:"category"`
	Amount    json.Number `json:"amount"`
	Notes     string      `json:"notes"`
	ID        string      `json:"id"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// ToJSON converts a domain record to its wire form.
func ToJSON(p model.PaymentRecord) PaymentJSON {
	out := PaymentJSON{
		Date:     p.Date.String(),
		Category: p.Category,
		Amount:   json.Number(p.Amount.String()),
		Notes:    p.Notes,
		ID:       p.ID,
	}
	if !p.Timestamp.IsZero() {
		out.Timestamp = p.Timestamp.UTC().Format(time.RFC3339)
	}
	return out
}

// Record converts the wire form back to a domain record.
func (r PaymentJSON) Record() (model.PaymentRecord, error) {
	date, err := model.ParseDate(r.Date)
	if err != nil {
		return model.PaymentRecord{}, fmt.Errorf("payment %s: %w", r.ID, err)
	}

	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return model.PaymentRecord{}, fmt.Errorf("payment %s: invalid amount %q: %w", r.ID, r.Amount, err)
	}

	rec := model.PaymentRecord{
		ID:       r.ID,
		Category: r.Category,
		Amount:   amount,
		Date:     date,
		Notes:    r.Notes,
	}
	if r.Timestamp != "" {
		if ts, tsErr := time.Parse(time.RFC3339, r.Timestamp); tsErr == nil {
			rec.Timestamp = ts
		}
	}
	return rec, nil
}

// EncodePayments serializes a payment list to its stored JSON form.
func EncodePayments(payments []model.PaymentRecord) ([]byte, error) {
	rows := make([]PaymentJSON, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, ToJSON(p))
	}
	return json.Marshal(rows)
}

// DecodePayments parses a stored payment list. Rows with unparseable dates
// or amounts are skipped rather than poisoning the whole ledger.
func DecodePayments(data []byte) ([]model.PaymentRecord, error) {
	var rows []PaymentJSON
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}

	payments := make([]model.PaymentRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.Record()
		if err != nil {
			continue
		}
		payments = append(payments, rec)
	}
	return payments, nil
}

// UpdateJSON is the wire form of a PaymentUpdate: present fields change,
// absent fields are left alone.
type UpdateJSON struct {
	Date     *string      `json:"date,omitempty"`
	Category *string      `json:"category,omitempty"`
	Amount   *json.Number `json:"amount,omitempty"`
	Notes    *string      `json:"notes,omitempty"`
}

// UpdateToJSON converts a domain update to its wire form.
func UpdateToJSON(u model.PaymentUpdate) UpdateJSON {
	var out UpdateJSON
	if u.Date != nil {
		s := u.Date.String()
		out.Date = &s
	}
	out.Category = u.Category
	if u.Amount != nil {
		n := json.Number(u.Amount.String())
		out.Amount = &n
	}
	out.Notes = u.Notes
	return out
}

// Update converts the wire form back to a domain update.
func (u UpdateJSON) Update() (model.PaymentUpdate, error) {
	var out model.PaymentUpdate
	if u.Date != nil {
		date, err := model.ParseDate(*u.Date)
		if err != nil {
			return model.PaymentUpdate{}, err
		}
		out.Date = &date
	}
	out.Category = u.Category
	if u.Amount != nil {
		amount, err := decimal.NewFromString(u.Amount.String())
		if err != nil {
			return model.PaymentUpdate{}, fmt.Errorf("invalid amount %q: %w", *u.Amount, err)
		}
		out.Amount = &amount
	}
	out.Notes = u.Notes
	return out, nil
}
