package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duebook/duebook/internal/model"
)

func mustRecurring(t *testing.T, id string, amount string, dueDay int) model.Expense {
	t.Helper()
	e, err := model.NewRecurring(id, id, "", decimal.RequireFromString(amount), dueDay)
	require.NoError(t, err)
	return e
}

func mustLoan(t *testing.T, id string, amount string, dueDay, totalPayments int) model.Expense {
	t.Helper()
	e, err := model.NewLoan(id, id, "", decimal.RequireFromString(amount), dueDay, totalPayments)
	require.NoError(t, err)
	return e
}

func mustGoal(t *testing.T, id string, amount string, dueDate string) model.Expense {
	t.Helper()
	due, err := model.ParseDate(dueDate)
	require.NoError(t, err)
	e, err := model.NewGoal(id, id, "", decimal.RequireFromString(amount), due)
	require.NoError(t, err)
	return e
}

func payment(t *testing.T, id, category, amount, date string) model.PaymentRecord {
	t.Helper()
	d, err := model.ParseDate(date)
	require.NoError(t, err)
	return model.PaymentRecord{
		ID:       id,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Date:     d,
	}
}

func TestDerive_DayOfMonth(t *testing.T) {
	tests := []struct {
		name       string
		dueDay     int
		currentDay int
		wantStatus Status
		wantLabel  string
	}{
		{name: "past due", dueDay: 5, currentDay: 10, wantStatus: StatusOverdue, wantLabel: "Overdue!"},
		{name: "one day past", dueDay: 14, currentDay: 15, wantStatus: StatusOverdue, wantLabel: "Overdue!"},
		{name: "due today", dueDay: 15, currentDay: 15, wantStatus: StatusDueSoon, wantLabel: "Due in 0 days"},
		{name: "due tomorrow singular", dueDay: 16, currentDay: 15, wantStatus: StatusDueSoon, wantLabel: "Due in 1 day"},
		{name: "window edge", dueDay: 22, currentDay: 15, wantStatus: StatusDueSoon, wantLabel: "Due in 7 days"},
		{name: "past window", dueDay: 23, currentDay: 15, wantStatus: StatusPending, wantLabel: "Due on the 23rd"},
		{name: "far off", dueDay: 31, currentDay: 1, wantStatus: StatusPending, wantLabel: "Due on the 31st"},
		{name: "first of month pending", dueDay: 21, currentDay: 1, wantStatus: StatusPending, wantLabel: "Due on the 21st"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense := mustRecurring(t, "rent", "1500", tt.dueDay)
			now := time.Date(2026, time.March, tt.currentDay, 12, 0, 0, 0, time.Local)

			got := Derive(expense, nil, now)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantLabel, got.Label)
		})
	}
}

// Exhaustive check that every dueDay/currentDay pair lands in exactly the
// band implied by the day difference, regardless of month length.
func TestDerive_DayOfMonthGrid(t *testing.T) {
	for dueDay := 1; dueDay <= 31; dueDay++ {
		for currentDay := 1; currentDay <= 31; currentDay++ {
			expense := mustRecurring(t, "grid", "100", dueDay)
			now := time.Date(2026, time.January, currentDay, 9, 30, 0, 0, time.Local)

			got := Derive(expense, nil, now)
			diff := dueDay - currentDay
			var want Status
			switch {
			case diff < 0:
				want = StatusOverdue
			case diff <= 7:
				want = StatusDueSoon
			default:
				want = StatusPending
			}
			require.Equalf(t, want, got.Status, "dueDay=%d currentDay=%d", dueDay, currentDay)
		}
	}
}

func TestDerive_PaidThisMonth(t *testing.T) {
	expense := mustRecurring(t, "rent", "1500", 1)
	now := time.Date(2026, time.March, 20, 12, 0, 0, 0, time.Local)

	t.Run("payment this month wins over overdue", func(t *testing.T) {
		payments := []model.PaymentRecord{payment(t, "p1", "rent", "1500", "2026-03-02")}
		got := Derive(expense, payments, now)
		assert.Equal(t, StatusPaid, got.Status)
		assert.Equal(t, "Paid this month", got.Label)
	})

	t.Run("payment last month does not count", func(t *testing.T) {
		payments := []model.PaymentRecord{payment(t, "p1", "rent", "1500", "2026-02-02")}
		got := Derive(expense, payments, now)
		assert.Equal(t, StatusOverdue, got.Status)
	})

	t.Run("same month last year does not count", func(t *testing.T) {
		payments := []model.PaymentRecord{payment(t, "p1", "rent", "1500", "2025-03-02")}
		got := Derive(expense, payments, now)
		assert.Equal(t, StatusOverdue, got.Status)
	})

	t.Run("payment for another expense does not count", func(t *testing.T) {
		payments := []model.PaymentRecord{payment(t, "p1", "phone", "80", "2026-03-02")}
		got := Derive(expense, payments, now)
		assert.Equal(t, StatusOverdue, got.Status)
	})
}

func TestDerive_Loan(t *testing.T) {
	loan := mustLoan(t, "car", "450", 10, 84)
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.Local)

	loanPayments := func(n int) []model.PaymentRecord {
		payments := make([]model.PaymentRecord, 0, n)
		for i := 0; i < n; i++ {
			payments = append(payments, payment(t, fmt.Sprintf("p%d", i), "car", "450", "2020-01-15"))
		}
		return payments
	}

	t.Run("all installments paid is terminal", func(t *testing.T) {
		got := Derive(loan, loanPayments(84), now)
		assert.Equal(t, StatusPaid, got.Status)
		assert.Equal(t, "Paid Off!", got.Label)
	})

	t.Run("more than total is still terminal", func(t *testing.T) {
		got := Derive(loan, loanPayments(85), now)
		assert.Equal(t, StatusPaid, got.Status)
		assert.Equal(t, "Paid Off!", got.Label)
	})

	t.Run("one short falls through to monthly check", func(t *testing.T) {
		// 83 historic installments, none this month, due day 10 on June 1.
		got := Derive(loan, loanPayments(83), now)
		assert.Equal(t, StatusPending, got.Status)
		assert.Equal(t, "Due on the 10th", got.Label)
	})

	t.Run("terminal wins even with a payment this month", func(t *testing.T) {
		payments := append(loanPayments(83), payment(t, "final", "car", "450", "2026-06-01"))
		got := Derive(loan, payments, now)
		assert.Equal(t, "Paid Off!", got.Label)
	})
}

func TestDerive_Goal(t *testing.T) {
	goal := mustGoal(t, "cruise", "1371.33", "2026-07-23")

	t.Run("target reached", func(t *testing.T) {
		payments := []model.PaymentRecord{
			payment(t, "p1", "cruise", "1000", "2026-03-01"),
			payment(t, "p2", "cruise", "371.33", "2026-04-01"),
		}
		now := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.Local)
		got := Derive(goal, payments, now)
		assert.Equal(t, StatusPaid, got.Status)
		assert.Equal(t, "Goal Reached!", got.Label)
	})

	t.Run("overshoot counts as reached", func(t *testing.T) {
		payments := []model.PaymentRecord{payment(t, "p1", "cruise", "1400", "2026-03-01")}
		now := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.Local)
		got := Derive(goal, payments, now)
		assert.Equal(t, "Goal Reached!", got.Label)
	})

	t.Run("reached goal never reads overdue", func(t *testing.T) {
		payments := []model.PaymentRecord{payment(t, "p1", "cruise", "1371.33", "2026-03-01")}
		now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)
		got := Derive(goal, payments, now)
		assert.Equal(t, StatusPaid, got.Status)
	})

	t.Run("past due date", func(t *testing.T) {
		now := time.Date(2026, time.July, 24, 12, 0, 0, 0, time.Local)
		got := Derive(goal, nil, now)
		assert.Equal(t, StatusOverdue, got.Status)
		assert.Equal(t, "Past Due", got.Label)
	})

	t.Run("inside thirty day window", func(t *testing.T) {
		now := time.Date(2026, time.July, 1, 12, 0, 0, 0, time.Local)
		got := Derive(goal, nil, now)
		assert.Equal(t, StatusDueSoon, got.Status)
		assert.Equal(t, "22 days left", got.Label)
	})

	t.Run("outside window", func(t *testing.T) {
		now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.Local)
		got := Derive(goal, nil, now)
		assert.Equal(t, StatusPending, got.Status)
	})
}

func TestDaysUntil(t *testing.T) {
	due, err := model.ParseDate("2026-07-23")
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "midday before rounds up", now: time.Date(2026, time.July, 21, 15, 0, 0, 0, time.Local), want: 2},
		{name: "midnight exact", now: time.Date(2026, time.July, 21, 0, 0, 0, 0, time.Local), want: 2},
		{name: "due date midday", now: time.Date(2026, time.July, 23, 15, 0, 0, 0, time.Local), want: 0},
		{name: "day after", now: time.Date(2026, time.July, 24, 0, 0, 0, 0, time.Local), want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(due, tt.now))
		})
	}
}

func TestHasPaymentForMonth_DateGranularity(t *testing.T) {
	// A civil date never shifts with the evaluation timezone.
	payments := []model.PaymentRecord{payment(t, "p1", "rent", "1500", "2026-03-01")}

	zones := []string{"UTC", "America/Los_Angeles", "Asia/Tokyo"}
	for _, zone := range zones {
		t.Run(zone, func(t *testing.T) {
			loc, err := time.LoadLocation(zone)
			require.NoError(t, err)
			now := time.Date(2026, time.March, 15, 0, 30, 0, 0, loc)
			assert.True(t, HasPaymentForMonth(payments, "rent", now.Month(), now.Year()))
			assert.False(t, HasPaymentForMonth(payments, "rent", time.February, 2026))
		})
	}
}

func TestTotalPaidAndCount(t *testing.T) {
	payments := []model.PaymentRecord{
		payment(t, "p1", "cruise", "100.10", "2026-01-01"),
		payment(t, "p2", "cruise", "200.25", "2026-02-01"),
		payment(t, "p3", "rent", "1500", "2026-02-01"),
	}

	assert.True(t, TotalPaid(payments, "cruise").Equal(decimal.RequireFromString("300.35")))
	assert.True(t, TotalPaid(payments, "missing").IsZero())
	assert.Equal(t, 2, PaymentCount(payments, "cruise"))
	assert.Equal(t, 0, PaymentCount(payments, "missing"))
}
