package database

import (
	"context"
	"database/sql"
	"errors"

	"resq-bknd/internal/models"

	"github.com/uptrace/bun"
)

// IncidentRepo persists incident reports.
type IncidentRepo struct {
	db *bun.DB
}

func NewIncidentRepo(db *bun.DB) *IncidentRepo {
	return &IncidentRepo{db: db}
}

// Insert stores a new incident report. Reports are write-once.
func (r *IncidentRepo) Insert(ctx context.Context, report *models.IncidentReport) error {
	_, err := r.db.NewInsert().Model(report).Exec(ctx)
	return err
}

// GetByID fetches a single report, or nil when none exists.
func (r *IncidentRepo) GetByID(ctx context.Context, id string) (*models.IncidentReport, error) {
	report := new(models.IncidentReport)
	err := r.db.NewSelect().
		Model(report).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// List returns reports newest first.
func (r *IncidentRepo) List(ctx context.Context, limit, offset int) ([]models.IncidentReport, error) {
	var reports []models.IncidentReport
	err := r.db.NewSelect().
		Model(&reports).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	return reports, err
}
