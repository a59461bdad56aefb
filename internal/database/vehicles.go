package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"resq-bknd/internal/models"

	"github.com/uptrace/bun"
)

// VehicleRepo persists last-known emergency vehicle locations keyed by user id.
type VehicleRepo struct {
	db *bun.DB
}

func NewVehicleRepo(db *bun.DB) *VehicleRepo {
	return &VehicleRepo{db: db}
}

// GetByUserID fetches a vehicle row, or nil when the user has never reported.
func (r *VehicleRepo) GetByUserID(ctx context.Context, userID string) (*models.EmergencyVehicleLocation, error) {
	loc := new(models.EmergencyVehicleLocation)
	err := r.db.NewSelect().
		Model(loc).
		Where("user_id = ?", userID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return loc, nil
}

// Create inserts a fresh vehicle row.
func (r *VehicleRepo) Create(ctx context.Context, loc *models.EmergencyVehicleLocation) error {
	loc.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(loc).Exec(ctx)
	return err
}

// Update overwrites the stored origin and tracking flag (last write wins).
func (r *VehicleRepo) Update(ctx context.Context, loc *models.EmergencyVehicleLocation) error {
	_, err := r.db.NewUpdate().
		Model((*models.EmergencyVehicleLocation)(nil)).
		Set("latitude = ?", loc.Latitude).
		Set("longitude = ?", loc.Longitude).
		Set("is_tracking = ?", loc.IsTracking).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", loc.UserID).
		Exec(ctx)
	return err
}
