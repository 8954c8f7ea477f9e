package model

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentID(t *testing.T) {
	idPattern := regexp.MustCompile(`^pay_\d+_[0-9a-f]{10}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewPaymentID()
		assert.Regexp(t, idPattern, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestPaymentRecord_Validate(t *testing.T) {
	valid := PaymentRecord{
		Category: "rent",
		Amount:   decimal.RequireFromString("1500"),
		Date:     Date{Year: 2026, Month: time.March, Day: 1},
	}
	require.NoError(t, valid.Validate())

	t.Run("missing category", func(t *testing.T) {
		p := valid
		p.Category = ""
		assert.ErrorContains(t, p.Validate(), "missing category")
	})

	t.Run("zero amount", func(t *testing.T) {
		p := valid
		p.Amount = decimal.Zero
		assert.ErrorContains(t, p.Validate(), "amount must be positive")
	})

	t.Run("negative amount", func(t *testing.T) {
		p := valid
		p.Amount = decimal.RequireFromString("-5")
		assert.ErrorContains(t, p.Validate(), "amount must be positive")
	})

	t.Run("missing date", func(t *testing.T) {
		p := valid
		p.Date = Date{}
		assert.ErrorContains(t, p.Validate(), "missing date")
	})
}

func TestPaymentUpdate_Apply(t *testing.T) {
	base := PaymentRecord{
		ID:       "pay_1_a",
		Category: "rent",
		Amount:   decimal.RequireFromString("1500"),
		Date:     Date{Year: 2026, Month: time.March, Day: 1},
		Notes:    "march",
	}

	t.Run("empty update changes nothing", func(t *testing.T) {
		assert.True(t, PaymentUpdate{}.IsEmpty())
		assert.Equal(t, base, PaymentUpdate{}.Apply(base))
	})

	t.Run("partial update", func(t *testing.T) {
		amount := decimal.RequireFromString("1550")
		got := PaymentUpdate{Amount: &amount}.Apply(base)
		assert.True(t, got.Amount.Equal(amount))
		assert.Equal(t, base.Category, got.Category)
		assert.Equal(t, base.Notes, got.Notes)
	})

	t.Run("clearing notes", func(t *testing.T) {
		empty := ""
		got := PaymentUpdate{Notes: &empty}.Apply(base)
		assert.Empty(t, got.Notes)
	})

	t.Run("full update", func(t *testing.T) {
		category := "phone"
		amount := decimal.RequireFromString("80")
		date := Date{Year: 2026, Month: time.April, Day: 2}
		notes := "april"
		update := PaymentUpdate{Category: &category, Amount: &amount, Date: &date, Notes: &notes}

		assert.False(t, update.IsEmpty())
		got := update.Apply(base)
		assert.Equal(t, "phone", got.Category)
		assert.True(t, got.Amount.Equal(amount))
		assert.True(t, got.Date.Equal(date))
		assert.Equal(t, "april", got.Notes)
		assert.Equal(t, base.ID, got.ID)
	})
}
