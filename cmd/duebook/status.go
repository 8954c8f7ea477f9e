package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/duebook/duebook/internal/catalog"
	"github.com/duebook/duebook/internal/cli"
	"github.com/duebook/duebook/internal/model"
	"github.com/duebook/duebook/internal/schedule"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what is due, overdue, or already paid",
		Long: `Display every expense with its derived status for the current period,
sorted so the most urgent items come first, along with the amount still
owed this month and the next due bill.`,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	expenses, err := catalog.Load()
	if err != nil {
		return err
	}
	anchor, err := catalog.PaycheckAnchor()
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

	printSummary(expenses, payments, now)
	for _, expense := range schedule.SortExpenses(expenses, payments, now) {
		fmt.Println(renderCard(expense, payments, anchor, now))
	}
	return nil
}

func printSummary(expenses []model.Expense, payments []model.PaymentRecord, now time.Time) {
	remaining := schedule.RemainingThisMonth(expenses, payments, now)
	fmt.Println(cli.FormatTitle(fmt.Sprintf("Left to pay this month: %s", formatCurrency(remaining))))

	next, daysUntil, ok := schedule.NextDue(expenses, payments, now)
	switch {
	case !ok:
		fmt.Println(cli.FormatSuccess("All paid!"))
	case daysUntil < 0:
		fmt.Println(cli.FormatError(fmt.Sprintf("Next due: %s (Overdue!)", next.Name)))
	case daysUntil == 0:
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Next due: %s (Today!)", next.Name)))
	default:
		plural := "s"
		if daysUntil == 1 {
			plural = ""
		}
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Next due: %s (in %d day%s)", next.Name, daysUntil, plural)))
	}
	fmt.Println()
}

func renderCard(expense model.Expense, payments []model.PaymentRecord, anchor model.Date, now time.Time) string {
	derived := schedule.Derive(expense, payments, now)

	title := fmt.Sprintf("%s %s", expense.Icon, expense.Name)
	lines := []string{
		fmt.Sprintf("%s  %s", amountLine(expense), statusLabel(derived)),
		cli.SubtleStyle.Render(dueLine(expense)),
	}

	switch expense.Kind {
	case model.KindLoan:
		paid, total, percent := schedule.LoanProgress(expense, payments)
		lines = append(lines, fmt.Sprintf("%s %d%%  %d of %d payments",
			cli.ProgressBar(percent, 20), percent, paid, total))
	case model.KindGoal:
		progress := schedule.DeriveGoalProgress(expense, payments, anchor, model.DateOf(now))
		lines = append(lines, fmt.Sprintf("%s %d%%  %s of %s",
			cli.ProgressBar(progress.PercentSaved, 20), progress.PercentSaved,
			formatCurrency(progress.Saved), formatCurrency(expense.Amount)))
		if progress.Remaining.IsPositive() && progress.Paychecks > 0 {
			lines = append(lines, cli.SubtleStyle.Render(fmt.Sprintf("%d paychecks left · %s/paycheck",
				progress.Paychecks, formatCurrency(progress.PerPaycheck))))
		}
	}

	content := lines[0]
	for _, line := range lines[1:] {
		content += "\n" + line
	}
	return cli.RenderCard(title, content)
}

func amountLine(expense model.Expense) string {
	if expense.Kind == model.KindGoal {
		return fmt.Sprintf("%s total", formatCurrency(expense.Amount))
	}
	return fmt.Sprintf("%s/month", formatCurrency(expense.Amount))
}

func dueLine(expense model.Expense) string {
	if expense.Kind == model.KindGoal {
		return fmt.Sprintf("Due: %s %d, %d", expense.DueDate.Month, expense.DueDate.Day, expense.DueDate.Year)
	}
	return fmt.Sprintf("Due: %s of month", schedule.Ordinal(expense.DueDay))
}

func statusLabel(derived schedule.Derived) string {
	switch derived.Status {
	case schedule.StatusPaid:
		return cli.PaidStyle.Render(derived.Label)
	case schedule.StatusOverdue:
		return cli.OverdueStyle.Render(derived.Label)
	case schedule.StatusDueSoon:
		return cli.DueSoonStyle.Render(derived.Label)
	default:
		return cli.PendingStyle.Render(derived.Label)
	}
}
