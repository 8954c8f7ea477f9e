package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExpenseKind discriminates the four expense variants.
type ExpenseKind string

const (
	// KindRecurring is a fixed bill due on the same day each month.
	KindRecurring ExpenseKind = "recurring"
	// KindLoan is an amortizing loan paid in a fixed number of installments.
	KindLoan ExpenseKind = "loan"
	// KindGoal is a savings goal with a target amount and a calendar due date.
	KindGoal ExpenseKind = "goal"
	// KindVariable is a monthly bill whose amount varies.
	KindVariable ExpenseKind = "variable"
)

// Expense is a configured obligation from the static catalog. The Kind tag
// determines which scheduling fields are meaningful; use the per-kind
// constructors, which enforce the required fields, rather than building the
// struct directly.
type Expense struct {
	ID            string
	Name          string
	Icon          string
	Description   string
	Amount        decimal.Decimal
	Kind          ExpenseKind
	DueDay        int  // recurring, loan, variable: day of month, 1-31
	TotalPayments int  // loan: number of installments
	DueDate       Date // goal: target calendar date
}

// NewRecurring builds a recurring monthly expense due on dueDay.
func NewRecurring(id, name, icon string, amount decimal.Decimal, dueDay int) (Expense, error) {
	e := Expense{ID: id, Name: name, Icon: icon, Amount: amount, Kind: KindRecurring, DueDay: dueDay}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// NewLoan builds a loan expense paid in totalPayments installments, each due
// on dueDay.
func NewLoan(id, name, icon string, amount decimal.Decimal, dueDay, totalPayments int) (Expense, error) {
	e := Expense{ID: id, Name: name, Icon: icon, Amount: amount, Kind: KindLoan, DueDay: dueDay, TotalPayments: totalPayments}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// NewGoal builds a savings goal targeting amount by dueDate.
func NewGoal(id, name, icon string, amount decimal.Decimal, dueDate Date) (Expense, error) {
	e := Expense{ID: id, Name: name, Icon: icon, Amount: amount, Kind: KindGoal, DueDate: dueDate}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// NewVariable builds a variable-amount monthly expense due on dueDay. The
// amount is treated as an estimate for budgeting.
func NewVariable(id, name, icon string, amount decimal.Decimal, dueDay int) (Expense, error) {
	e := Expense{ID: id, Name: name, Icon: icon, Amount: amount, Kind: KindVariable, DueDay: dueDay}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// Validate checks the per-kind field invariants.
func (e Expense) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("expense: missing id")
	}
	if e.Name == "" {
		return fmt.Errorf("expense %s: missing name", e.ID)
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("expense %s: amount must be positive", e.ID)
	}

	switch e.Kind {
	case KindRecurring, KindVariable:
		if e.DueDay < 1 || e.DueDay > 31 {
			return fmt.Errorf("expense %s: due day %d out of range 1-31", e.ID, e.DueDay)
		}
	case KindLoan:
		if e.DueDay < 1 || e.DueDay > 31 {
			return fmt.Errorf("expense %s: due day %d out of range 1-31", e.ID, e.DueDay)
		}
		if e.TotalPayments <= 0 {
			return fmt.Errorf("expense %s: loan requires a positive total payment count", e.ID)
		}
	case KindGoal:
		if e.DueDate.IsZero() {
			return fmt.Errorf("expense %s: goal requires a due date", e.ID)
		}
	default:
		return fmt.Errorf("expense %s: unknown kind %q", e.ID, e.Kind)
	}

	return nil
}

// IsMonthly reports whether the expense is evaluated against the calendar
// month (everything except goals, which are evaluated against their due
// date).
func (e Expense) IsMonthly() bool {
	return e.Kind != KindGoal
}
