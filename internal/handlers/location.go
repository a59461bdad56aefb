package handlers

import (
	"encoding/json"
	"net/http"

	"resq-bknd/internal/models"
	"resq-bknd/internal/services"

	"go.uber.org/zap"
)

// LocationHandler accepts client-submitted origin/destination updates and
// fires a route replan when state changes.
type LocationHandler struct {
	state   *services.TrackerState
	planner services.Replanner
	logr    *zap.Logger
}

func NewLocationHandler(state *services.TrackerState, planner services.Replanner, logr *zap.Logger) *LocationHandler {
	return &LocationHandler{
		state:   state,
		planner: planner,
		logr:    logr,
	}
}

type currentLocationRequest struct {
	Origin      *models.LatLng `json:"origin"`
	Destination *models.LatLng `json:"destination"`
}

// UpdateCurrentLocation handles POST /current-location. Either field alone
// is accepted; at least one must be present. The replan that follows is
// best-effort and its outcome never changes the response.
func (h *LocationHandler) UpdateCurrentLocation(w http.ResponseWriter, r *http.Request) {
	var req currentLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logr.Error("failed to decode request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Origin == nil && req.Destination == nil {
		h.logr.Warn("validation failed: origin or destination is required")
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "Origin or destination is required",
		})
		return
	}

	if req.Origin != nil {
		h.state.SetCurrent(models.CoordsFromLatLng(*req.Origin))
	}
	if req.Destination != nil {
		h.state.SetDestination(models.CoordsFromLatLng(*req.Destination))
	}

	h.planner.Replan(r.Context())

	writeJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: "Location updated",
	})
}
