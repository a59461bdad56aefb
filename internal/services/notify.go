package services

import (
	"fmt"

	"resq-bknd/internal/models"
)

// Push topics. Geofence activity and vehicle tracking go to separate topics
// so mobile clients can subscribe to either independently.
const (
	PushTopicGeofence = "geofence_notifications"
	PushTopicTracking = "tracking_notifications"
)

// composeNotification builds the provider-agnostic push payload for one
// event kind. Data values are strings, matching what messaging providers
// accept for structured payloads.
func composeNotification(event *models.InboundEvent, kind string) models.Notification {
	data := map[string]string{
		"event_type": event.EventType,
		"user_id":    event.UserID,
	}

	switch kind {
	case KindGeofenceEntry:
		data["geofence_id"] = event.GeofenceID
		data["description"] = event.Description
		return models.Notification{
			Title: "Geofence Entry",
			Body:  fmt.Sprintf("User %s entered incident area %s: %s", event.UserID, event.GeofenceID, event.Description),
			Data:  data,
			Topic: PushTopicGeofence,
		}
	case KindGeofenceExit:
		data["geofence_id"] = event.GeofenceID
		return models.Notification{
			Title: "Geofence Exit",
			Body:  fmt.Sprintf("User %s exited incident area %s", event.UserID, event.GeofenceID),
			Data:  data,
			Topic: PushTopicGeofence,
		}
	case KindGeofenceDwell:
		data["geofence_id"] = event.GeofenceID
		return models.Notification{
			Title: "Geofence Dwell",
			Body:  fmt.Sprintf("User %s is dwelling in geofence %s", event.UserID, event.GeofenceID),
			Data:  data,
			Topic: PushTopicGeofence,
		}
	case KindLocationPoint:
		if coords, err := event.Coords(); err == nil {
			data["coordinates"] = coords.String()
		}
		return models.Notification{
			Title: "Location Updated",
			Body:  fmt.Sprintf("User %s location updated", event.UserID),
			Data:  data,
			Topic: PushTopicTracking,
		}
	case KindNearbyGeofence:
		data["nearby_user_id"] = event.NearbyUserID
		return models.Notification{
			Title: "Vehicle Approaching",
			Body:  "An emergency vehicle is approaching your area",
			Data:  data,
			Topic: PushTopicTracking,
		}
	default:
		return models.Notification{
			Title: "Tracking Event",
			Body:  fmt.Sprintf("Event %s for user %s", event.EventType, event.UserID),
			Data:  data,
			Topic: PushTopicTracking,
		}
	}
}
