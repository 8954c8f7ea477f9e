package schedule

import (
	"sort"
	"time"

	"github.com/duebook/duebook/internal/model"
)

// SortExpenses returns the catalog ordered for display: unpaid expenses
// first, then ascending days until due (overdue items carry negative counts
// and sort to the top), ties broken by descending amount, then by id so the
// order is total. The input slice is not modified.
func SortExpenses(expenses []model.Expense, payments []model.PaymentRecord, now time.Time) []model.Expense {
	sorted := make([]model.Expense, len(expenses))
	copy(sorted, expenses)

	paid := make(map[string]bool, len(sorted))
	days := make(map[string]int, len(sorted))
	for _, e := range sorted {
		paid[e.ID] = Derive(e, payments, now).Status == StatusPaid
		days[e.ID] = daysUntilDue(e, now)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if paid[a.ID] != paid[b.ID] {
			return !paid[a.ID]
		}
		if days[a.ID] != days[b.ID] {
			return days[a.ID] < days[b.ID]
		}
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.ID < b.ID
	})

	return sorted
}

// daysUntilDue gives the comparator's urgency key: calendar days for goals,
// dueDay minus the current day of month for everything else.
func daysUntilDue(e model.Expense, now time.Time) int {
	if e.Kind == model.KindGoal {
		return DaysUntil(e.DueDate, now)
	}
	return e.DueDay - now.Day()
}
