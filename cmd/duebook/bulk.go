package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/duebook/duebook/internal/catalog"
	"github.com/duebook/duebook/internal/cli"
	"github.com/duebook/duebook/internal/common"
	"github.com/duebook/duebook/internal/model"
	"github.com/duebook/duebook/internal/schedule"
)

func bulkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk [expense-id...]",
		Short: "Record several payments at once",
		Long: `Record payments for several expenses in one go, each at its configured
amount. With --all, every unpaid monthly expense is selected; otherwise
name the expense ids to pay. Savings goals are excluded (their amounts
vary), as are loans that are already paid off and anything already paid
this month.`,
		RunE: runBulk,
	}

	cmd.Flags().Bool("all", false, "Pay every unpaid monthly expense")
	cmd.Flags().StringP("date", "d", "", "Payment date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringP("notes", "n", "", "Optional notes applied to every payment")

	return cmd
}

func runBulk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	expenses, err := catalog.Load()
	if err != nil {
		return err
	}

	book, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = book.Close() }()

	payments := book.Snapshot()
	now := time.Now()

	all, _ := cmd.Flags().GetBool("all")
	selected, err := selectBulkExpenses(expenses, payments, args, all, now)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return common.NewUserError("please select at least one expense to pay", common.ErrNoSelection)
	}

	date := model.DateOf(now)
	if flagDate, _ := cmd.Flags().GetString("date"); flagDate != "" {
		date, err = model.ParseDate(flagDate)
		if err != nil {
			return common.NewUserError("invalid date", err)
		}
	}
	notes, _ := cmd.Flags().GetString("notes")

	// Writes are sequential: one in-flight mutation at a time.
	bar := progressbar.Default(int64(len(selected)), "recording payments")
	for _, expense := range selected {
		rec := model.PaymentRecord{
			Category:  expense.ID,
			Amount:    expense.Amount,
			Date:      date,
			Notes:     notes,
			Timestamp: time.Now(),
		}
		if _, err := book.Add(ctx, rec); err != nil {
			return fmt.Errorf("failed to record %s: %w", expense.Name, err)
		}
		_ = bar.Add(1)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %d payments dated %s", len(selected), date)))
	return nil
}

// selectBulkExpenses resolves the bulk selection: either every payable
// monthly expense (--all) or the named ids, rejecting ids that are not
// payable this month.
func selectBulkExpenses(expenses []model.Expense, payments []model.PaymentRecord, ids []string, all bool, now time.Time) ([]model.Expense, error) {
	payable := make([]model.Expense, 0, len(expenses))
	for _, e := range schedule.SortExpenses(expenses, payments, now) {
		if bulkPayable(e, payments, now) {
			payable = append(payable, e)
		}
	}

	if all {
		return payable, nil
	}

	selected := make([]model.Expense, 0, len(ids))
	for _, id := range ids {
		found := false
		for _, e := range payable {
			if e.ID == id {
				selected = append(selected, e)
				found = true
				break
			}
		}
		if !found {
			return nil, common.NewUserError(fmt.Sprintf("expense %q is not payable this month", id), common.ErrNoSelection)
		}
	}
	return selected, nil
}

func bulkPayable(e model.Expense, payments []model.PaymentRecord, now time.Time) bool {
	if e.Kind == model.KindGoal {
		return false
	}
	if schedule.HasPaymentForMonth(payments, e.ID, now.Month(), now.Year()) {
		return false
	}
	if e.Kind == model.KindLoan && schedule.PaymentCount(payments, e.ID) >= e.TotalPayments {
		return false
	}
	return true
}
