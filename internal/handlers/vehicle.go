package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"resq-bknd/internal/models"
	"resq-bknd/internal/services"

	"go.uber.org/zap"
)

// VehicleHandler handles both emergency-vehicle location endpoints: the
// persisted upsert and the broadcast-only report.
type VehicleHandler struct {
	service *services.VehicleService
	logr    *zap.Logger
}

func NewVehicleHandler(svc *services.VehicleService, logr *zap.Logger) *VehicleHandler {
	return &VehicleHandler{service: svc, logr: logr}
}

// UpsertLocation handles POST /emergency-vehicle-location.
func (h *VehicleHandler) UpsertLocation(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertVehicleLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logr.Error("failed to decode request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if strings.TrimSpace(req.UserID) == "" || req.Origin == nil {
		h.logr.Warn("validation failed: userId and origin are required")
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "userId and origin are required",
		})
		return
	}

	if err := h.service.UpsertLocation(r.Context(), req.UserID, *req.Origin, req.IsTracking); err != nil {
		h.logr.Error("failed to upsert vehicle location", zap.Error(err), zap.String("user_id", req.UserID))
		writeJSON(w, http.StatusInternalServerError, StatusResponse{
			Success: false,
			Message: "Failed to store vehicle location",
		})
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: "Vehicle location stored",
	})
}

// BroadcastLocation handles POST /emergency-vehicle. It only fans the
// position out to connected clients and always acknowledges.
func (h *VehicleHandler) BroadcastLocation(w http.ResponseWriter, r *http.Request) {
	var req models.VehicleBroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logr.Error("failed to decode request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Location != nil {
		h.service.Broadcast(req.UserID, req.Location.Latitude, req.Location.Longitude)
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: "Vehicle location broadcast",
	})
}
