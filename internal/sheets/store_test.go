package sheets

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duebook/duebook/internal/model"
)

func TestRowConversion(t *testing.T) {
	rec := model.PaymentRecord{
		ID:       "pay_1_abc",
		Category: "rent",
		Amount:   decimal.RequireFromString("1500.50"),
		Date:     model.Date{Year: 2026, Month: time.March, Day: 1},
		Notes:    "march",
	}

	row := rowFromRecord(rec)
	require.Len(t, row, 5)
	assert.Equal(t, "2026-03-01", row[0])
	assert.Equal(t, "1500.5", row[2])

	back, ok := recordFromRow(row)
	require.True(t, ok)
	assert.Equal(t, rec.ID, back.ID)
	assert.True(t, rec.Amount.Equal(back.Amount))
	assert.True(t, rec.Date.Equal(back.Date))
	assert.Equal(t, rec.Notes, back.Notes)
}

func TestRecordFromRow_Rejects(t *testing.T) {
	tests := []struct {
		name string
		row  []any
	}{
		{name: "too short", row: []any{"2026-03-01", "rent", "1500"}},
		{name: "blank id", row: []any{"2026-03-01", "rent", "1500", "", "  "}},
		{name: "bad date", row: []any{"soon", "rent", "1500", "", "pay_1_a"}},
		{name: "bad amount", row: []any{"2026-03-01", "rent", "lots", "", "pay_1_a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := recordFromRow(tt.row)
			assert.False(t, ok)
		})
	}
}

func TestRecordFromRow_NumericCells(t *testing.T) {
	// The API hands back unformatted cells as float64.
	rec, ok := recordFromRow([]any{"2026-03-01", "phone", 80.5, "", "pay_1_a"})
	require.True(t, ok)
	assert.Equal(t, "80.5", rec.Amount.String())
}
