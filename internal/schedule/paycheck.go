package schedule

import (
	"github.com/shopspring/decimal"

	"github.com/duebook/duebook/internal/model"
)

// paycheckIntervalDays is the fixed biweekly paycheck cadence.
const paycheckIntervalDays = 14

// PaychecksRemaining counts the biweekly paychecks between today and the
// goal's due date, inclusive of both endpoints. The cursor starts at the
// configured anchor date and advances in 14-day steps until it is no longer
// before today, then every step landing on or before the due date counts.
// All three inputs are civil dates, so "start of today" and "end of the due
// date" fall out of date-granularity comparison.
func PaychecksRemaining(anchor, today, due model.Date) int {
	cursor := anchor
	for cursor.Before(today) {
		cursor = cursor.AddDays(paycheckIntervalDays)
	}

	count := 0
	for !cursor.After(due) {
		count++
		cursor = cursor.AddDays(paycheckIntervalDays)
	}
	return count
}

// SuggestedContribution splits the remaining balance evenly across the
// remaining paychecks, rounded to cents. With no paychecks left before the
// due date the whole remaining balance is suggested.
//
// Both the status renderer and the payment prefill call this; it is the only
// implementation, so the two surfaces cannot disagree.
func SuggestedContribution(remaining decimal.Decimal, paychecks int) decimal.Decimal {
	if paychecks <= 0 {
		return remaining
	}
	return remaining.DivRound(decimal.NewFromInt(int64(paychecks)), 2)
}

// GoalProgress bundles the derived savings figures for one goal.
type GoalProgress struct {
	Saved        decimal.Decimal
	Remaining    decimal.Decimal
	Paychecks    int
	PerPaycheck  decimal.Decimal
	PercentSaved int
}

// DeriveGoalProgress computes a goal's savings progress and per-paycheck
// suggestion from the ledger.
func DeriveGoalProgress(goal model.Expense, payments []model.PaymentRecord, anchor, today model.Date) GoalProgress {
	saved := TotalPaid(payments, goal.ID)
	remaining := goal.Amount.Sub(saved)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	percent := 0
	if goal.Amount.IsPositive() {
		percent = int(saved.Div(goal.Amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		if percent > 100 {
			percent = 100
		}
	}

	paychecks := PaychecksRemaining(anchor, today, goal.DueDate)
	return GoalProgress{
		Saved:        saved,
		Remaining:    remaining,
		Paychecks:    paychecks,
		PerPaycheck:  SuggestedContribution(remaining, paychecks),
		PercentSaved: percent,
	}
}
