package models

import (
	"time"

	"github.com/uptrace/bun"
)

// EmergencyVehicleLocation is the persisted last-known origin of an
// emergency vehicle, keyed by the driver's user id. Rows are upserted on
// every location report; there is no delete path.
type EmergencyVehicleLocation struct {
	bun.BaseModel `bun:"table:emergency_vehicle_locations,alias:evl"`

	UserID     string    `bun:"user_id,pk" json:"userId"`
	Latitude   float64   `bun:"latitude,notnull" json:"lat"`
	Longitude  float64   `bun:"longitude,notnull" json:"lng"`
	IsTracking bool      `bun:"is_tracking,notnull" json:"is_tracking"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// UpsertVehicleLocationRequest is the POST /emergency-vehicle-location body.
type UpsertVehicleLocationRequest struct {
	UserID     string  `json:"userId"`
	Origin     *LatLng `json:"origin"`
	IsTracking bool    `json:"is_tracking"`
}

// VehicleBroadcastRequest is the POST /emergency-vehicle body. This endpoint
// broadcasts to connected clients only and never touches persistence.
type VehicleBroadcastRequest struct {
	UserID   string `json:"userId"`
	Location *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
}
