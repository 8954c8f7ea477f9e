package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/duebook/duebook/internal/catalog"
	"github.com/duebook/duebook/internal/cli"
	"github.com/duebook/duebook/internal/common"
	"github.com/duebook/duebook/internal/model"
)

func paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Inspect and edit the payment ledger",
	}

	cmd.AddCommand(paymentsListCmd())
	cmd.AddCommand(paymentsDeleteCmd())
	cmd.AddCommand(paymentsUpdateCmd())

	return cmd
}

func paymentsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded payments, newest first",
		RunE:  runPaymentsList,
	}

	cmd.Flags().IntP("limit", "l", 10, "Number of payments to show")
	cmd.Flags().Bool("all", false, "Show the full history")

	return cmd
}

func runPaymentsList(cmd *cobra.Command, _ []string) error {
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
	if len(payments) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No payments recorded yet"))
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if all, _ := cmd.Flags().GetBool("all"); all || limit < 0 || limit > len(payments) {
		limit = len(payments)
	}

	for _, p := range payments[:limit] {
		name := p.Category
		if expense, findErr := catalog.Find(expenses, p.Category); findErr == nil {
			name = fmt.Sprintf("%s %s", expense.Icon, expense.Name)
		}

		line := fmt.Sprintf("%s  %-24s %10s", p.Date, name, formatCurrency(p.Amount))
		if p.Notes != "" {
			line += "  " + cli.SubtleStyle.Render(p.Notes)
		}
		line += "  " + cli.SubtleStyle.Render(p.ID)
		fmt.Println(line)
	}
	return nil
}

func paymentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <payment-id>",
		Short: "Delete a payment from the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			book, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = book.Close() }()

			if _, err := book.Remove(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Deleted payment " + args[0]))
			return nil
		},
	}
}

func paymentsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <payment-id>",
		Short: "Update a payment's fields",
		Args:  cobra.ExactArgs(1),
		RunE:  runPaymentsUpdate,
	}

	cmd.Flags().StringP("amount", "a", "", "New amount")
	cmd.Flags().StringP("date", "d", "", "New date as YYYY-MM-DD")
	cmd.Flags().StringP("notes", "n", "", "New notes")
	cmd.Flags().StringP("category", "c", "", "New expense id")

	return cmd
}

func runPaymentsUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var updates model.PaymentUpdate
	if v, _ := cmd.Flags().GetString("amount"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return common.NewUserError("invalid amount", err)
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			return common.NewUserError("please enter a valid amount", common.ErrInvalidAmount)
		}
		updates.Amount = &amount
	}
	if v, _ := cmd.Flags().GetString("date"); v != "" {
		date, err := model.ParseDate(v)
		if err != nil {
			return common.NewUserError("invalid date", err)
		}
		updates.Date = &date
	}
	if cmd.Flags().Changed("notes") {
		v, _ := cmd.Flags().GetString("notes")
		updates.Notes = &v
	}
	if v, _ := cmd.Flags().GetString("category"); v != "" {
		updates.Category = &v
	}

	if updates.IsEmpty() {
		return common.NewUserError("nothing to update: pass --amount, --date, --notes, or --category", common.ErrInvalidConfig)
	}

	book, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = book.Close() }()

	if _, err := book.Update(ctx, args[0], updates); err != nil {
		return err
	}
	fmt.Println(cli.FormatSuccess("Updated payment " + args[0]))
	return nil
}
