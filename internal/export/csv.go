// Package export writes the payment ledger to CSV for backup or for
// importing into a spreadsheet.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/duebook/duebook/internal/model"
)

// csvHeader matches the spreadsheet tab's column layout.
var csvHeader = []string{"Date", "Category", "Amount", "Notes", "ID"}

// WriteCSV writes the payment list as CSV with a header row and every field
// quoted, matching the format the spreadsheet importer expects.
func WriteCSV(w io.Writer, payments []model.PaymentRecord) error {
	if err := writeRow(w, csvHeader); err != nil {
		return err
	}
	for _, p := range payments {
		row := []string{
			p.Date.String(),
			p.Category,
			p.Amount.String(),
			p.Notes,
			p.ID,
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	if _, err := fmt.Fprintln(w, strings.Join(quoted, ",")); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	return nil
}
