// Package schedule implements the expense status and scheduling derivation
// engine: pure date and arithmetic computations over the catalog and the
// loaded payment list. Nothing here reads the clock or performs I/O; "now" is
// always passed in by the caller.
package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/duebook/duebook/internal/model"
)

// Status classifies an expense for the current period.
type Status string

const (
	// StatusPaid means the expense is settled for its period (or terminal).
	StatusPaid Status = "paid"
	// StatusOverdue means the due day or due date has passed unpaid.
	StatusOverdue Status = "overdue"
	// StatusDueSoon means the expense is inside its warning window.
	StatusDueSoon Status = "due-soon"
	// StatusPending means the expense is unpaid but not yet close to due.
	StatusPending Status = "pending"
)

// Derived is the ephemeral per-expense status, recomputed on every render
// and never persisted.
type Derived struct {
	Status Status
	Label  string
}

// goalDueSoonWindow is the due-soon threshold for goals, in days.
const goalDueSoonWindow = 30

// monthlyDueSoonWindow is the due-soon threshold for day-of-month expenses.
const monthlyDueSoonWindow = 7

// HasPaymentForMonth reports whether any payment for the expense falls in
// the given calendar month and year. Payment dates are civil dates, so the
// comparison is immune to the caller's timezone offset.
func HasPaymentForMonth(payments []model.PaymentRecord, expenseID string, month time.Month, year int) bool {
	for _, p := range payments {
		if p.Category == expenseID && p.Date.Month == month && p.Date.Year == year {
			return true
		}
	}
	return false
}

// TotalPaid sums the amounts of all payments for the expense. Goals track
// cumulative dollars saved.
func TotalPaid(payments []model.PaymentRecord, expenseID string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Category == expenseID {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// PaymentCount counts the payments for the expense. Loans track the number
// of installments, not the dollar total.
func PaymentCount(payments []model.PaymentRecord, expenseID string) int {
	count := 0
	for _, p := range payments {
		if p.Category == expenseID {
			count++
		}
	}
	return count
}

// Derive computes the status and display label for one expense.
func Derive(expense model.Expense, payments []model.PaymentRecord, now time.Time) Derived {
	if expense.Kind == model.KindGoal {
		return deriveGoal(expense, payments, now)
	}

	if expense.Kind == model.KindLoan {
		if PaymentCount(payments, expense.ID) >= expense.TotalPayments {
			// Terminal: no further payments expected.
			return Derived{Status: StatusPaid, Label: "Paid Off!"}
		}
	}

	if HasPaymentForMonth(payments, expense.ID, now.Month(), now.Year()) {
		return Derived{Status: StatusPaid, Label: "Paid this month"}
	}

	return deriveDayOfMonth(expense.DueDay, now.Day())
}

func deriveGoal(expense model.Expense, payments []model.PaymentRecord, now time.Time) Derived {
	if TotalPaid(payments, expense.ID).GreaterThanOrEqual(expense.Amount) {
		return Derived{Status: StatusPaid, Label: "Goal Reached!"}
	}

	days := DaysUntil(expense.DueDate, now)
	switch {
	case days < 0:
		return Derived{Status: StatusOverdue, Label: "Past Due"}
	case days <= goalDueSoonWindow:
		return Derived{Status: StatusDueSoon, Label: fmt.Sprintf("%d days left", days)}
	default:
		return Derived{Status: StatusPending, Label: fmt.Sprintf("%d days left", days)}
	}
}

// deriveDayOfMonth is the shared check for recurring, variable, and
// still-amortizing loan expenses. dueDay is compared against the current day
// of month without clamping to the month's length, so a dueDay of 31 in a
// 30-day month never reads as overdue within that month. That quirk is
// carried over intentionally; see DESIGN.md.
func deriveDayOfMonth(dueDay, currentDay int) Derived {
	days := dueDay - currentDay
	switch {
	case days < 0:
		return Derived{Status: StatusOverdue, Label: "Overdue!"}
	case days <= monthlyDueSoonWindow:
		plural := "s"
		if days == 1 {
			plural = ""
		}
		return Derived{Status: StatusDueSoon, Label: fmt.Sprintf("Due in %d day%s", days, plural)}
	default:
		return Derived{Status: StatusPending, Label: fmt.Sprintf("Due on the %s", Ordinal(dueDay))}
	}
}

// DaysUntil returns the number of days from now until the due date's local
// midnight, rounding partial days up. A due date earlier today yields 0 when
// now is past midnight of that date minus a day; dates already past yield
// negative values.
func DaysUntil(due model.Date, now time.Time) int {
	delta := due.Time(now.Location()).Sub(now)
	return int(math.Ceil(delta.Hours() / 24))
}
