package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/api/sheets/v4"

	"github.com/duebook/duebook/internal/common"
	"github.com/duebook/duebook/internal/model"
	"github.com/duebook/duebook/internal/store"
)

// idColumn is the zero-based column holding the payment id (column E).
const idColumn = 4

// Store reads and writes payment rows in the configured spreadsheet tab. It
// implements store.Store, so it is interchangeable with the HTTP remote
// client and the local database as a ledger backing.
type Store struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
	sheetID int64
}

var _ store.Store = (*Store)(nil)

// NewStore creates a spreadsheet-backed ledger store.
func NewStore(ctx context.Context, config Config, logger *slog.Logger) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := newSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	s := &Store{
		service: service,
		logger:  logger,
		config:  config,
		sheetID: -1,
	}
	return s, nil
}

// LoadAll reads every payment row below the header. Rows with no id are
// skipped, as are rows whose date or amount does not parse.
func (s *Store) LoadAll(ctx context.Context) ([]model.PaymentRecord, error) {
	readRange := fmt.Sprintf("%s!A2:E", s.config.SheetName)
	resp, err := s.service.Spreadsheets.Values.Get(s.config.SpreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read payment rows: %v", common.ErrRemoteUnavailable, err)
	}

	payments := make([]model.PaymentRecord, 0, len(resp.Values))
	for _, row := range resp.Values {
		rec, ok := recordFromRow(row)
		if !ok {
			continue
		}
		payments = append(payments, rec)
	}
	return payments, nil
}

// Create appends one payment row, assigning an id when absent.
func (s *Store) Create(ctx context.Context, rec model.PaymentRecord) error {
	if rec.ID == "" {
		rec.ID = model.NewPaymentID()
	}

	valueRange := &sheets.ValueRange{
		Values: [][]any{rowFromRecord(rec)},
	}

	err := common.WithRetry(ctx, func() error {
		_, appendErr := s.service.Spreadsheets.Values.
			Append(s.config.SpreadsheetID, s.config.SheetName+"!A:E", valueRange).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		return appendErr
	}, s.retryOptions())
	if err != nil {
		return fmt.Errorf("%w: append payment row: %v", common.ErrRemoteUnavailable, err)
	}

	s.logger.Debug("appended payment row", "id", rec.ID, "category", rec.Category)
	return nil
}

// Update rewrites the row holding the payment with the given id.
func (s *Store) Update(ctx context.Context, id string, updates model.PaymentUpdate) error {
	rowIndex, rec, err := s.findRow(ctx, id)
	if err != nil {
		return err
	}

	updated := updates.Apply(rec)
	// Sheet rows are 1-indexed and row 1 is the header.
	writeRange := fmt.Sprintf("%s!A%d:E%d", s.config.SheetName, rowIndex+2, rowIndex+2)
	valueRange := &sheets.ValueRange{Values: [][]any{rowFromRecord(updated)}}

	err = common.WithRetry(ctx, func() error {
		_, updateErr := s.service.Spreadsheets.Values.
			Update(s.config.SpreadsheetID, writeRange, valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).Do()
		return updateErr
	}, s.retryOptions())
	if err != nil {
		return fmt.Errorf("%w: update payment row: %v", common.ErrRemoteUnavailable, err)
	}
	return nil
}

// Delete removes the row holding the payment with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	rowIndex, _, err := s.findRow(ctx, id)
	if err != nil {
		return err
	}

	sheetID, err := s.resolveSheetID(ctx)
	if err != nil {
		return err
	}

	request := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex + 1), // +1 for the header row
					EndIndex:   int64(rowIndex + 2),
				},
			},
		}},
	}

	err = common.WithRetry(ctx, func() error {
		_, deleteErr := s.service.Spreadsheets.
			BatchUpdate(s.config.SpreadsheetID, request).
			Context(ctx).Do()
		return deleteErr
	}, s.retryOptions())
	if err != nil {
		return fmt.Errorf("%w: delete payment row: %v", common.ErrRemoteUnavailable, err)
	}

	s.logger.Debug("deleted payment row", "id", id)
	return nil
}

// Close is a no-op; the API client holds no resources worth releasing.
func (s *Store) Close() error { return nil }

// findRow locates the payment by id and returns its zero-based data row
// index (excluding the header) along with the parsed record.
func (s *Store) findRow(ctx context.Context, id string) (int, model.PaymentRecord, error) {
	readRange := fmt.Sprintf("%s!A2:E", s.config.SheetName)
	resp, err := s.service.Spreadsheets.Values.Get(s.config.SpreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return 0, model.PaymentRecord{}, fmt.Errorf("%w: read payment rows: %v", common.ErrRemoteUnavailable, err)
	}

	for i, row := range resp.Values {
		if len(row) > idColumn && fmt.Sprint(row[idColumn]) == id {
			rec, _ := recordFromRow(row)
			return i, rec, nil
		}
	}
	return 0, model.PaymentRecord{}, fmt.Errorf("payment %s: %w", id, common.ErrNotFound)
}

// resolveSheetID looks up the numeric sheet id of the configured tab, needed
// for row deletion. The id is cached after the first lookup.
func (s *Store) resolveSheetID(ctx context.Context) (int64, error) {
	if s.sheetID >= 0 {
		return s.sheetID, nil
	}

	spreadsheet, err := s.service.Spreadsheets.Get(s.config.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("%w: inspect spreadsheet: %v", common.ErrRemoteUnavailable, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == s.config.SheetName {
			s.sheetID = sheet.Properties.SheetId
			return s.sheetID, nil
		}
	}
	return 0, fmt.Errorf("sheet %q: %w", s.config.SheetName, common.ErrNotFound)
}

func (s *Store) retryOptions() common.RetryOptions {
	return common.RetryOptions{
		MaxAttempts:  s.config.RetryAttempts,
		InitialDelay: s.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

func rowFromRecord(rec model.PaymentRecord) []any {
	return []any{
		rec.Date.String(),
		rec.Category,
		rec.Amount.String(),
		rec.Notes,
		rec.ID,
	}
}

func recordFromRow(row []any) (model.PaymentRecord, bool) {
	if len(row) <= idColumn {
		return model.PaymentRecord{}, false
	}

	id := strings.TrimSpace(fmt.Sprint(row[idColumn]))
	if id == "" {
		return model.PaymentRecord{}, false
	}

	date, err := model.ParseDate(fmt.Sprint(row[0]))
	if err != nil {
		return model.PaymentRecord{}, false
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(fmt.Sprint(row[2])))
	if err != nil {
		return model.PaymentRecord{}, false
	}

	notes := ""
	if len(row) > 3 {
		notes = fmt.Sprint(row[3])
	}

	return model.PaymentRecord{
		ID:       id,
		Category: fmt.Sprint(row[1]),
		Amount:   amount,
		Date:     date,
		Notes:    notes,
	}, true
}
