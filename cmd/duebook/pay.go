package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/duebook/duebook/internal/catalog"
	"github.com/duebook/duebook/internal/cli"
	"github.com/duebook/duebook/internal/common"
	"github.com/duebook/duebook/internal/model"
	"github.com/duebook/duebook/internal/schedule"
)

func payCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay <expense-id>",
		Short: "Record a payment against an expense",
		Long: `Record one payment in the ledger. The amount defaults to the expense's
configured amount; for savings goals it defaults to the suggested
per-paycheck contribution.`,
		Args: cobra.ExactArgs(1),
		RunE: runPay,
	}

	cmd.Flags().StringP("amount", "a", "", "Payment amount (default: expense amount, or suggested contribution for goals)")
	cmd.Flags().StringP("date", "d", "", "Payment date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringP("notes", "n", "", "Optional notes")

	return cmd
}

func runPay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	expenses, err := catalog.Load()
	if err != nil {
		return err
	}
	expense, err := catalog.Find(expenses, args[0])
	if err != nil {
		return err
	}

	book, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = book.Close() }()

	date := model.DateOf(time.Now())
	if flagDate, _ := cmd.Flags().GetString("date"); flagDate != "" {
		date, err = model.ParseDate(flagDate)
		if err != nil {
			return common.NewUserError("invalid date", err)
		}
	}

	amount, err := paymentAmount(cmd, expense, book.Snapshot())
	if err != nil {
		return err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return common.NewUserError("please enter a valid amount", common.ErrInvalidAmount)
	}

	notes, _ := cmd.Flags().GetString("notes")
	rec := model.PaymentRecord{
		Category:  expense.ID,
		Amount:    amount,
		Date:      date,
		Notes:     notes,
		Timestamp: time.Now(),
	}

	if _, err := book.Add(ctx, rec); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s payment of %s on %s",
		expense.Name, formatCurrency(amount), date)))
	return nil
}

// paymentAmount resolves the amount to record: the flag when given, the
// suggested per-paycheck contribution for goals, the configured amount
// otherwise.
func paymentAmount(cmd *cobra.Command, expense model.Expense, payments []model.PaymentRecord) (decimal.Decimal, error) {
	if flagAmount, _ := cmd.Flags().GetString("amount"); flagAmount != "" {
		amount, err := decimal.NewFromString(flagAmount)
		if err != nil {
			return decimal.Zero, common.NewUserError("invalid amount", err)
		}
		return amount, nil
	}

	if expense.Kind == model.KindGoal {
		anchor, err := catalog.PaycheckAnchor()
		if err != nil {
			return decimal.Zero, err
		}
		progress := schedule.DeriveGoalProgress(expense, payments, anchor, model.DateOf(time.Now()))
		if progress.Remaining.IsPositive() && progress.Paychecks > 0 {
			return progress.PerPaycheck, nil
		}
		return progress.Remaining, nil
	}

	return expense.Amount, nil
}
