package realtime

// Topics published to connected clients.
const (
	TopicLocationUpdate       = "location_update"
	TopicGeofenceUpdate       = "geofence_update"
	TopicMovingGeofenceUpdate = "moving_geofence_update"
	TopicAlternativeRoutes    = "alternative_routes"
	TopicVehicleUpdate        = "vehicle_update"
)
