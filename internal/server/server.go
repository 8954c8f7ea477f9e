// Package server exposes the ledger over HTTP with the same wire protocol
// the Google Apps Script shim speaks: GET returns the full payment list,
// POST creates, updates, or deletes a row depending on the body's action
// field. Running this server gives the tracker a self-hosted stand-in for
// the Apps Script deployment.
package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/duebook/duebook/internal/store"
)

// New builds the gin engine serving the shim protocol over the given
// backing store.
func New(backing store.Store, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogging(logger))

	h := &handler{store: backing, logger: logger}
	engine.GET("/", h.listPayments)
	engine.POST("/", h.mutatePayments)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return engine
}

// requestLogging tags each request with a request id and logs it on the way
// out.
func requestLogging(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.New().String()
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		logger.Info("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
