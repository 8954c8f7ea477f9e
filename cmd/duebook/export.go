package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/duebook/duebook/internal/cli"
	"github.com/duebook/duebook/internal/export"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the payment ledger as CSV",
		RunE:  runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	book, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = book.Close() }()

	payments := book.Snapshot()

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		return export.WriteCSV(os.Stdout, payments)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := export.WriteCSV(f, payments); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d payments to %s", len(payments), out)))
	return nil
}
