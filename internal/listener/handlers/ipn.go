package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps the notification body read from the request.
const MaxBodyBytes = 1 << 20

// MessageHandler is the engine entry point for one raw notification body.
type MessageHandler interface {
	HandleMessage(ctx context.Context, raw []byte) bool
}

type IPNHandler struct {
	listener MessageHandler
}

func NewIPNHandler(l MessageHandler) *IPNHandler {
	return &IPNHandler{listener: l}
}

// Notify accepts one IPN POST. Verified messages get 200; anything else gets
// 400 so the processor redelivers it later.
func (h *IPNHandler) Notify(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		slog.WarnContext(c.Request.Context(), "Failed to read IPN body", slog.Any("error", err))
		c.Status(http.StatusBadRequest)
		return
	}

	if !h.listener.HandleMessage(c.Request.Context(), raw) {
		c.Status(http.StatusBadRequest)
		return
	}

	c.Status(http.StatusOK)
}
