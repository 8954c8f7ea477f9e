package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/duebook/duebook/internal/model"
)

// defaultPaycheckAnchor is the first payday of the biweekly cycle.
const defaultPaycheckAnchor = "2026-01-22"

// Default returns the built-in expense catalog used when the config file
// defines none.
func Default() []model.Expense {
	rent, _ := model.NewRecurring("rent", "Rent", "🏠", decimal.NewFromInt(300), 1)
	rent.Description = "Monthly rent payment"

	insurance, _ := model.NewRecurring("insurance", "Insurance", "🛡", decimal.NewFromInt(300), 23)
	insurance.Description = "Monthly insurance payment"

	phone, _ := model.NewRecurring("phone", "Phone", "📱", decimal.NewFromInt(50), 1)
	phone.Description = "Monthly phone bill"

	car, _ := model.NewLoan("car", "Car Payment", "🚗", decimal.NewFromInt(300), 1, 84)
	car.Description = "Car loan - $300/month for 84 months"

	cruise, _ := model.NewGoal("cruise", "Cruise", "🛳", decimal.NewFromFloat(1371.33),
		model.Date{Year: 2026, Month: time.July, Day: 23})
	cruise.Description = "Cruise savings goal - $1,371.33 by July 23, 2026"

	return []model.Expense{rent, insurance, phone, car, cruise}
}
