package services

import (
	"context"
	"fmt"

	"resq-bknd/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GeofenceProvider manages geofences at the tracking provider.
type GeofenceProvider interface {
	CreateGeofence(ctx context.Context, lat, lng float64, description string) (string, error)
	DeleteGeofence(ctx context.Context, geofenceID string) error
}

// IncidentStore persists incident reports.
type IncidentStore interface {
	Insert(ctx context.Context, report *models.IncidentReport) error
	GetByID(ctx context.Context, id string) (*models.IncidentReport, error)
	List(ctx context.Context, limit, offset int) ([]models.IncidentReport, error)
}

// IncidentService handles incident intake: register a geofence with the
// tracking provider first, then persist the report keyed by the returned
// geofence id. Nothing is persisted when geofence creation fails.
type IncidentService struct {
	geofences GeofenceProvider
	store     IncidentStore
	logr      *zap.Logger
}

func NewIncidentService(geofences GeofenceProvider, store IncidentStore, logr *zap.Logger) *IncidentService {
	return &IncidentService{
		geofences: geofences,
		store:     store,
		logr:      logr,
	}
}

// ReportIncident runs the two-step intake and returns the new record id.
// When the insert fails after the geofence was created, a best-effort delete
// of the geofence is attempted so the provider is not left with an orphan;
// if that delete also fails the orphan remains, which is logged.
func (s *IncidentService) ReportIncident(ctx context.Context, req models.CreateIncidentRequest) (string, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return "", fmt.Errorf("latitude and longitude are required")
	}

	geofenceID, err := s.geofences.CreateGeofence(ctx, *req.Latitude, *req.Longitude, req.Details)
	if err != nil {
		return "", fmt.Errorf("geofence creation failed: %w", err)
	}

	report := &models.IncidentReport{
		ID:            uuid.NewString(),
		GeofenceID:    geofenceID,
		ImageURL:      req.ImageURL,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		Address:       req.Address,
		Details:       req.Details,
		ReporterName:  req.ReporterName,
		ReporterEmail: req.ReporterEmail,
		Status:        req.Status,
		ReportedAt:    req.Timestamp,
	}

	if err := s.store.Insert(ctx, report); err != nil {
		if delErr := s.geofences.DeleteGeofence(ctx, geofenceID); delErr != nil {
			s.logr.Error("orphaned geofence left at provider",
				zap.String("geofence_id", geofenceID),
				zap.Error(delErr))
		}
		return "", fmt.Errorf("persist incident report: %w", err)
	}

	s.logr.Info("incident report created",
		zap.String("id", report.ID),
		zap.String("geofence_id", geofenceID))
	return report.ID, nil
}

// GetIncident fetches a single report by record id.
func (s *IncidentService) GetIncident(ctx context.Context, id string) (*models.IncidentReport, error) {
	return s.store.GetByID(ctx, id)
}

// ListIncidents returns reports newest first.
func (s *IncidentService) ListIncidents(ctx context.Context, limit, offset int) ([]models.IncidentReport, error) {
	return s.store.List(ctx, limit, offset)
}
