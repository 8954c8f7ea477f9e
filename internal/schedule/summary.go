package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/duebook/duebook/internal/model"
)

// RemainingThisMonth sums the amounts of monthly expenses still unpaid for
// the current calendar month. Goals are excluded (they are not monthly
// obligations), as are loans that have reached their final installment.
func RemainingThisMonth(expenses []model.Expense, payments []model.PaymentRecord, now time.Time) decimal.Decimal {
	remaining := decimal.Zero
	for _, e := range expenses {
		if owedThisMonth(e, payments, now) {
			remaining = remaining.Add(e.Amount)
		}
	}
	return remaining
}

// NextDue finds the soonest-due unpaid monthly expense. Overdue expenses
// collapse to a single urgency of -1 day so the most urgent item wins
// regardless of how far past due it is. The second return is days until due;
// ok is false when every monthly expense is settled.
func NextDue(expenses []model.Expense, payments []model.PaymentRecord, now time.Time) (next model.Expense, daysUntil int, ok bool) {
	minDays := 0
	for _, e := range expenses {
		if !owedThisMonth(e, payments, now) {
			continue
		}

		days := e.DueDay - now.Day()
		if days < 0 {
			days = -1
		}
		if !ok || days < minDays {
			next, minDays, ok = e, days, true
		}
	}
	return next, minDays, ok
}

func owedThisMonth(e model.Expense, payments []model.PaymentRecord, now time.Time) bool {
	if !e.IsMonthly() {
		return false
	}
	if HasPaymentForMonth(payments, e.ID, now.Month(), now.Year()) {
		return false
	}
	if e.Kind == model.KindLoan && PaymentCount(payments, e.ID) >= e.TotalPayments {
		return false
	}
	return true
}

// MonthlyTotal sums the configured amounts of all recurring and loan
// expenses, the fixed monthly outflow.
func MonthlyTotal(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Kind == model.KindRecurring || e.Kind == model.KindLoan {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// LoanProgress reports installments paid against the loan's total.
func LoanProgress(loan model.Expense, payments []model.PaymentRecord) (paid, total, percent int) {
	paid = PaymentCount(payments, loan.ID)
	total = loan.TotalPayments
	if total > 0 {
		percent = paid * 100 / total
		if percent > 100 {
			percent = 100
		}
	}
	return paid, total, percent
}
