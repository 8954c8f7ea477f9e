package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/duebook/duebook/internal/common"
	"github.com/duebook/duebook/internal/model"
)

// RemoteStore is the HTTP client for the spreadsheet-backed ledger endpoint.
// The protocol is a single URL: GET returns {"payments": [...]}, POST takes
// either a bare payment body (create), {"action":"delete","id":...}, or
// {"action":"update","id":...,"updates":{...}}; error responses carry an
// {"error": ...} envelope.
//
// Every call is a single attempt. Retrying is the job of the fallback store's
// local degradation, not of this client.
type RemoteStore struct {
	client *http.Client
	url    string
}

// NewRemoteStore creates a client for the endpoint at url.
func NewRemoteStore(url string, timeout time.Duration) (*RemoteStore, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: remote ledger URL", common.ErrMissingConfig)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RemoteStore{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}, nil
}

type listResponse struct {
	Payments []PaymentJSON `json:"payments"`
	Error    string        `json:"error"`
}

type mutateResponse struct {
	Success bool         `json:"success"`
	Payment *PaymentJSON `json:"payment"`
	Error   string       `json:"error"`
}

// LoadAll fetches the full payment list from the endpoint.
func (r *RemoteStore) LoadAll(ctx context.Context) ([]model.PaymentRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", common.ErrRemoteUnavailable, resp.StatusCode)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", common.ErrRemoteUnavailable, err)
	}
	if body.Error != "" {
		return nil, fmt.Errorf("%w: %s", common.ErrRemoteUnavailable, body.Error)
	}

	payments := make([]model.PaymentRecord, 0, len(body.Payments))
	for _, row := range body.Payments {
		rec, recErr := row.Record()
		if recErr != nil {
			continue
		}
		payments = append(payments, rec)
	}
	sortNewestFirst(payments)
	return payments, nil
}

// Create posts a new payment. The id is assigned client-side when absent so
// the local mirror and the spreadsheet agree on it.
func (r *RemoteStore) Create(ctx context.Context, rec model.PaymentRecord) error {
	if rec.ID == "" {
		rec.ID = model.NewPaymentID()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	return r.post(ctx, ToJSON(rec))
}

// Update posts an explicit update for the payment with the given id.
func (r *RemoteStore) Update(ctx context.Context, id string, updates model.PaymentUpdate) error {
	return r.post(ctx, map[string]any{
		"action":  "update",
		"id":      id,
		"updates": UpdateToJSON(updates),
	})
}

// Delete posts a delete for the payment with the given id.
func (r *RemoteStore) Delete(ctx context.Context, id string) error {
	return r.post(ctx, map[string]any{
		"action": "delete",
		"id":     id,
	})
}

// Close is a no-op; the HTTP client holds no resources worth releasing.
func (r *RemoteStore) Close() error { return nil }

func (r *RemoteStore) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	// text/plain keeps the request compatible with Apps Script deployments,
	// which cannot answer CORS preflights.
	req.Header.Set("Content-Type", "text/plain")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result mutateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: decode response: %v", common.ErrRemoteUnavailable, err)
	}
	if result.Error != "" {
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", result.Error, common.ErrNotFound)
		}
		return fmt.Errorf("%w: %s", common.ErrRemoteUnavailable, result.Error)
	}
	if !result.Success {
		return fmt.Errorf("%w: endpoint reported failure", common.ErrRemoteUnavailable)
	}
	return nil
}
