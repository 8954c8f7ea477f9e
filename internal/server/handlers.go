package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duebook/duebook/internal/common"
	"github.com/duebook/duebook/internal/model"
	"github.com/duebook/duebook/internal/store"
)

type handler struct {
	store  store.Store
	logger *slog.Logger
}

// actionRequest is the mutation envelope: an empty action means create, with
// the payment fields sitting at the top level of the same body.
type actionRequest struct {
	Action  string           `json:"action"`
	ID      string           `json:"id"`
	Updates store.UpdateJSON `json:"updates"`
}

// listPayments handles GET: the full payment list as {"payments": [...]}.
func (h *handler) listPayments(c *gin.Context) {
	payments, err := h.store.LoadAll(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	rows := make([]store.PaymentJSON, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, store.ToJSON(p))
	}
	c.JSON(http.StatusOK, gin.H{"payments": rows})
}

// mutatePayments handles POST: create, update, or delete depending on the
// body's action field. The body is parsed from raw bytes rather than bound
// by content type because Apps Script clients send JSON as text/plain.
func (h *handler) mutatePayments(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		h.fail(c, http.StatusBadRequest, errors.New("no data received"))
		return
	}

	var req actionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.fail(c, http.StatusBadRequest, errors.New("parse error: "+err.Error()))
		return
	}

	switch req.Action {
	case "":
		h.createPayment(c, body)
	case "delete":
		h.deletePayment(c, req.ID)
	case "update":
		h.updatePayment(c, req)
	default:
		h.fail(c, http.StatusBadRequest, errors.New("unknown action: "+req.Action))
	}
}

func (h *handler) createPayment(c *gin.Context, body []byte) {
	var row store.PaymentJSON
	if err := json.Unmarshal(body, &row); err != nil {
		h.fail(c, http.StatusBadRequest, errors.New("parse error: "+err.Error()))
		return
	}

	rec, err := row.Record()
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := rec.Validate(); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	if rec.ID == "" {
		rec.ID = model.NewPaymentID()
	}

	if err := h.store.Create(c.Request.Context(), rec); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": store.ToJSON(rec),
	})
}

func (h *handler) deletePayment(c *gin.Context, id string) {
	if id == "" {
		h.fail(c, http.StatusBadRequest, errors.New("missing payment id"))
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			h.fail(c, http.StatusNotFound, errors.New("payment not found"))
			return
		}
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": id})
}

func (h *handler) updatePayment(c *gin.Context, req actionRequest) {
	if req.ID == "" {
		h.fail(c, http.StatusBadRequest, errors.New("missing payment id"))
		return
	}

	updates, err := req.Updates.Update()
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	if err := h.store.Update(c.Request.Context(), req.ID, updates); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			h.fail(c, http.StatusNotFound, errors.New("payment not found"))
			return
		}
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "updated": req.ID})
}

func (h *handler) fail(c *gin.Context, status int, err error) {
	h.logger.Warn("request failed",
		"status", status,
		"path", c.Request.URL.Path,
		"error", err)
	c.JSON(status, gin.H{"error": err.Error()})
}
