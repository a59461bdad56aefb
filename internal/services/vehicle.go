package services

import (
	"context"
	"fmt"

	"resq-bknd/internal/models"
	"resq-bknd/internal/realtime"

	"go.uber.org/zap"
)

// VehicleStore persists last-known emergency vehicle locations.
type VehicleStore interface {
	GetByUserID(ctx context.Context, userID string) (*models.EmergencyVehicleLocation, error)
	Create(ctx context.Context, loc *models.EmergencyVehicleLocation) error
	Update(ctx context.Context, loc *models.EmergencyVehicleLocation) error
}

// VehicleService covers the two distinct vehicle-location capabilities:
// a persisted upsert keyed by user id, and a broadcast-only report that goes
// straight to connected clients without touching the database. They stay
// separate on purpose; clients use one or the other.
type VehicleService struct {
	store VehicleStore
	pub   Publisher
	logr  *zap.Logger
}

func NewVehicleService(store VehicleStore, pub Publisher, logr *zap.Logger) *VehicleService {
	return &VehicleService{
		store: store,
		pub:   pub,
		logr:  logr,
	}
}

// UpsertLocation writes the last-known origin for userID. The check-then-act
// against the store is not atomic: two concurrent reports for the same user
// resolve as last write wins, which is acceptable for advisory tracking.
func (s *VehicleService) UpsertLocation(ctx context.Context, userID string, origin models.LatLng, isTracking bool) error {
	existing, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("look up vehicle location: %w", err)
	}

	loc := &models.EmergencyVehicleLocation{
		UserID:     userID,
		Latitude:   origin.Lat,
		Longitude:  origin.Lng,
		IsTracking: isTracking,
	}

	if existing == nil {
		if err := s.store.Create(ctx, loc); err != nil {
			return fmt.Errorf("create vehicle location: %w", err)
		}
		s.logr.Info("vehicle location created", zap.String("user_id", userID))
		return nil
	}

	if err := s.store.Update(ctx, loc); err != nil {
		return fmt.Errorf("update vehicle location: %w", err)
	}
	s.logr.Info("vehicle location updated", zap.String("user_id", userID))
	return nil
}

// Broadcast pushes a vehicle position to all connected clients. No
// persistence, always succeeds from the caller's point of view.
func (s *VehicleService) Broadcast(userID string, lat, lng float64) {
	s.pub.Publish(realtime.TopicVehicleUpdate, VehicleUpdatePayload{
		UserID:      userID,
		Coordinates: models.Coordinates{Lat: lat, Lng: lng},
	})
}

// VehicleUpdatePayload is the body published on the vehicle_update topic.
type VehicleUpdatePayload struct {
	UserID      string             `json:"user_id"`
	Coordinates models.Coordinates `json:"coordinates"`
}
