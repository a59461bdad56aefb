package handlers

import (
	"errors"
	"io"
	"net/http"

	"resq-bknd/internal/models"
	"resq-bknd/internal/services"

	"go.uber.org/zap"
)

// WebhookHandler receives event batches from the tracking provider.
type WebhookHandler struct {
	dispatcher *services.Dispatcher
	logr       *zap.Logger
}

func NewWebhookHandler(dispatcher *services.Dispatcher, logr *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		dispatcher: dispatcher,
		logr:       logr,
	}
}

// HandleEvents handles POST /webhook. The body may be a single event object
// or an {"events": [...]} envelope. Individual malformed or unknown events
// are skipped; only a body with no recognizable event shape is rejected.
func (h *WebhookHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logr.Error("failed to read webhook body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	events, ok := models.ParseWebhookBody(body)
	if !ok {
		h.logr.Warn("webhook body holds no event-shaped record")
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "Invalid payload",
		})
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), events)
	if err != nil {
		if errors.Is(err, services.ErrEmptyBatch) {
			writeJSON(w, http.StatusBadRequest, StatusResponse{
				Success: false,
				Message: "Invalid payload",
			})
			return
		}
		h.logr.Error("event dispatch failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, StatusResponse{
			Success: false,
			Message: "Internal server error",
		})
		return
	}

	h.logr.Info("webhook batch processed",
		zap.Int("processed", result.Processed),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Events processed",
		"processed": result.Processed,
		"skipped":   result.Skipped,
		"failed":    result.Failed,
	})
}
