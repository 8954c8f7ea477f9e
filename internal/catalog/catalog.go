// Package catalog loads the static expense catalog: the fixed set of
// recurring bills, loans, savings goals, and variable bills the tracker
// knows about. The catalog is defined in configuration, validated once at
// startup, and immutable afterwards.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/duebook/duebook/internal/common"
	"github.com/duebook/duebook/internal/model"
)

// expenseConfig is the raw shape of one expenses: entry in the config file.
type expenseConfig struct {
	ID            string  `mapstructure:"id"`
	Name          string  `mapstructure:"name"`
	Icon          string  `mapstructure:"icon"`
	Amount        float64 `mapstructure:"amount"`
	Type          string  `mapstructure:"type"`
	DueDay        int     `mapstructure:"due_day"`
	TotalPayments int     `mapstructure:"total_payments"`
	DueDate       string  `mapstructure:"due_date"`
	Description   string  `mapstructure:"description"`
}

// Load reads the expense catalog from Viper configuration. With no expenses
// configured it falls back to the built-in default catalog.
func Load() ([]model.Expense, error) {
	var raw []expenseConfig
	if err := viper.UnmarshalKey("expenses", &raw); err != nil {
		return nil, fmt.Errorf("%w: expenses: %v", common.ErrInvalidConfig, err)
	}
	if len(raw) == 0 {
		return Default(), nil
	}

	expenses := make([]model.Expense, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, rc := range raw {
		expense, err := fromConfig(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
		}
		if seen[expense.ID] {
			return nil, fmt.Errorf("%w: duplicate expense id %q", common.ErrInvalidConfig, expense.ID)
		}
		seen[expense.ID] = true
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

func fromConfig(rc expenseConfig) (model.Expense, error) {
	amount := decimal.NewFromFloat(rc.Amount)

	var (
		expense model.Expense
		err     error
	)
	switch model.ExpenseKind(rc.Type) {
	case model.KindRecurring:
		expense, err = model.NewRecurring(rc.ID, rc.Name, rc.Icon, amount, rc.DueDay)
	case model.KindVariable:
		expense, err = model.NewVariable(rc.ID, rc.Name, rc.Icon, amount, rc.DueDay)
	case model.KindLoan:
		expense, err = model.NewLoan(rc.ID, rc.Name, rc.Icon, amount, rc.DueDay, rc.TotalPayments)
	case model.KindGoal:
		var due model.Date
		due, err = model.ParseDate(rc.DueDate)
		if err != nil {
			return model.Expense{}, fmt.Errorf("expense %s: %w", rc.ID, err)
		}
		expense, err = model.NewGoal(rc.ID, rc.Name, rc.Icon, amount, due)
	default:
		return model.Expense{}, fmt.Errorf("expense %s: unknown type %q", rc.ID, rc.Type)
	}
	if err != nil {
		return model.Expense{}, err
	}

	expense.Description = rc.Description
	return expense, nil
}

// Find returns the expense with the given id.
func Find(expenses []model.Expense, id string) (model.Expense, error) {
	for _, e := range expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Expense{}, fmt.Errorf("expense %q: %w", id, common.ErrNotFound)
}

// PaycheckAnchor returns the configured biweekly paycheck anchor date used
// for savings-goal contribution sizing.
func PaycheckAnchor() (model.Date, error) {
	anchor := viper.GetString("budgeting.paycheck_anchor")
	if anchor == "" {
		anchor = defaultPaycheckAnchor
	}
	date, err := model.ParseDate(anchor)
	if err != nil {
		return model.Date{}, fmt.Errorf("%w: budgeting.paycheck_anchor: %v", common.ErrInvalidConfig, err)
	}
	return date, nil
}
