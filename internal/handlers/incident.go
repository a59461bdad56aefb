package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"resq-bknd/internal/models"
	"resq-bknd/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// IncidentHandler handles incident report intake and lookup.
type IncidentHandler struct {
	service *services.IncidentService
	logr    *zap.Logger
}

func NewIncidentHandler(svc *services.IncidentService, logr *zap.Logger) *IncidentHandler {
	return &IncidentHandler{service: svc, logr: logr}
}

// ReportIncident handles POST /report-incident.
func (h *IncidentHandler) ReportIncident(w http.ResponseWriter, r *http.Request) {
	var req models.CreateIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logr.Error("failed to decode request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Latitude == nil || req.Longitude == nil {
		h.logr.Warn("validation failed: latitude and longitude are required")
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "Latitude and longitude are required",
		})
		return
	}

	id, err := h.service.ReportIncident(r.Context(), req)
	if err != nil {
		h.logr.Error("failed to report incident", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, StatusResponse{
			Success: false,
			Message: "Failed to report incident",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Incident reported successfully",
		"id":      id,
	})
}

// GetIncidentByID handles GET /incidents/{id}.
func (h *IncidentHandler) GetIncidentByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		writeJSON(w, http.StatusBadRequest, StatusResponse{
			Success: false,
			Message: "Incident id is required",
		})
		return
	}

	report, err := h.service.GetIncident(r.Context(), id)
	if err != nil {
		h.logr.Error("failed to fetch incident", zap.Error(err), zap.String("id", id))
		writeJSON(w, http.StatusInternalServerError, StatusResponse{
			Success: false,
			Message: "Failed to fetch incident",
		})
		return
	}
	if report == nil {
		writeJSON(w, http.StatusNotFound, StatusResponse{
			Success: false,
			Message: "Incident not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    report,
	})
}

// ListIncidents handles GET /incidents.
func (h *IncidentHandler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50 // default
	}

	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0 // default
	}

	reports, err := h.service.ListIncidents(r.Context(), limit, offset)
	if err != nil {
		h.logr.Error("failed to list incidents", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, StatusResponse{
			Success: false,
			Message: "Failed to fetch incidents",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    reports,
		"count":   len(reports),
	})
}
