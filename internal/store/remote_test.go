package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duebook/duebook/internal/common"
	"github.com/duebook/duebook/internal/model"
)

func TestRemoteStore_LoadAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"payments": [
			{"date": "2026-03-01", "category": "rent", "amount": 1500.50, "notes": "", "id": "pay_1_a"},
			{"date": "2026-03-05", "category": "phone", "amount": 80, "notes": "bill", "id": "pay_2_b"},
			{"date": "bogus", "category": "junk", "amount": 1, "notes": "", "id": "pay_3_c"}
		]}`))
	}))
	defer srv.Close()

	remote, err := NewRemoteStore(srv.URL, time.Second)
	require.NoError(t, err)

	payments, err := remote.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, payments, 2)

	// Newest first, bad row skipped.
	assert.Equal(t, "pay_2_b", payments[0].ID)
	assert.Equal(t, "pay_1_a", payments[1].ID)
	assert.Equal(t, "1500.5", payments[1].Amount.String())
}

func TestRemoteStore_LoadAllErrors(t *testing.T) {
	t.Run("endpoint error envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error": "sheet unavailable"}`))
		}))
		defer srv.Close()

		remote, err := NewRemoteStore(srv.URL, time.Second)
		require.NoError(t, err)
		_, err = remote.LoadAll(context.Background())
		assert.ErrorIs(t, err, common.ErrRemoteUnavailable)
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		remote, err := NewRemoteStore(srv.URL, time.Second)
		require.NoError(t, err)
		_, err = remote.LoadAll(context.Background())
		assert.ErrorIs(t, err, common.ErrRemoteUnavailable)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		remote, err := NewRemoteStore("http://127.0.0.1:1/ledger", 200*time.Millisecond)
		require.NoError(t, err)
		_, err = remote.LoadAll(context.Background())
		assert.ErrorIs(t, err, common.ErrRemoteUnavailable)
	})
}

func TestRemoteStore_Create(t *testing.T) {
	var got PaymentJSON
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		// Apps Script deployments need simple requests.
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	remote, err := NewRemoteStore(srv.URL, time.Second)
	require.NoError(t, err)

	rec := testRecord(t, "", "rent", "1500", "2026-03-01")
	require.NoError(t, remote.Create(context.Background(), rec))

	// The client assigns the id before posting.
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "rent", got.Category)
	assert.Equal(t, "2026-03-01", got.Date)
	assert.NotEmpty(t, got.Timestamp)
}

func TestRemoteStore_UpdateAndDelete(t *testing.T) {
	type envelope struct {
		Action  string          `json:"action"`
		ID      string          `json:"id"`
		Updates json.RawMessage `json:"updates"`
	}

	var got envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	remote, err := NewRemoteStore(srv.URL, time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	amount := decimal.RequireFromString("1550")
	require.NoError(t, remote.Update(ctx, "pay_1_a", model.PaymentUpdate{Amount: &amount}))
	assert.Equal(t, "update", got.Action)
	assert.Equal(t, "pay_1_a", got.ID)
	assert.JSONEq(t, `{"amount": 1550}`, string(got.Updates))

	require.NoError(t, remote.Delete(ctx, "pay_1_a"))
	assert.Equal(t, "delete", got.Action)
}

func TestRemoteStore_MutationErrors(t *testing.T) {
	t.Run("not found maps to sentinel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "payment not found"}`))
		}))
		defer srv.Close()

		remote, err := NewRemoteStore(srv.URL, time.Second)
		require.NoError(t, err)
		assert.ErrorIs(t, remote.Delete(context.Background(), "pay_gone"), common.ErrNotFound)
	})

	t.Run("generic error is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "boom"}`))
		}))
		defer srv.Close()

		remote, err := NewRemoteStore(srv.URL, time.Second)
		require.NoError(t, err)
		err = remote.Create(context.Background(), testRecord(t, "", "rent", "1500", "2026-03-01"))
		assert.ErrorIs(t, err, common.ErrRemoteUnavailable)
	})

	t.Run("success false without error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success": false}`))
		}))
		defer srv.Close()

		remote, err := NewRemoteStore(srv.URL, time.Second)
		require.NoError(t, err)
		err = remote.Delete(context.Background(), "pay_1_a")
		assert.ErrorIs(t, err, common.ErrRemoteUnavailable)
	})
}

func TestNewRemoteStore_RequiresURL(t *testing.T) {
	_, err := NewRemoteStore("", time.Second)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
