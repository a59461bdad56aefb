package models

import (
	"time"

	"github.com/uptrace/bun"
)

// IncidentReport is a citizen-reported incident persisted after a geofence
// has been registered with the tracking provider. GeofenceID is the
// provider-assigned identifier and acts as a foreign key into the provider's
// geofence resource. Records are immutable after creation.
type IncidentReport struct {
	bun.BaseModel `bun:"table:incident_reports,alias:ir"`

	ID            string    `bun:"id,pk" json:"id"`
	GeofenceID    string    `bun:"geofence_id,notnull" json:"geofence_id"`
	ImageURL      string    `bun:"image_url" json:"image_url"`
	Latitude      float64   `bun:"latitude,notnull" json:"latitude"`
	Longitude     float64   `bun:"longitude,notnull" json:"longitude"`
	Address       string    `bun:"address" json:"address"`
	Details       string    `bun:"details" json:"details"`
	ReporterName  string    `bun:"reporter_name" json:"reporter_name"`
	ReporterEmail string    `bun:"reporter_email" json:"reporter_email"`
	Status        string    `bun:"status,notnull" json:"status"`
	ReportedAt    string    `bun:"reported_at" json:"timestamp"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// CreateIncidentRequest is the POST /report-incident body. Latitude and
// longitude are pointers so a missing field can be told apart from 0.
type CreateIncidentRequest struct {
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Status        string   `json:"status"`
	Address       string   `json:"address"`
	Details       string   `json:"details"`
	ReporterEmail string   `json:"reporter_email"`
	ReporterName  string   `json:"reporter_name"`
	Timestamp     string   `json:"timestamp"`
	ImageURL      string   `json:"image_url"`
}
