package models

import "encoding/json"

// InboundEvent is one webhook event from the tracking provider. The
// event_type tag is an open set; unknown tags are skipped by the dispatcher.
// Location.Coordinates uses the provider's longitude-first ordering.
type InboundEvent struct {
	EventType    string        `json:"event_type"`
	UserID       string        `json:"user_id"`
	GeofenceID   string        `json:"geofence_id"`
	LocationID   string        `json:"location_id"`
	NearbyUserID string        `json:"nearby_user_id"`
	Description  string        `json:"description"`
	RecordedAt   string        `json:"recorded_at"`
	Location     EventLocation `json:"location"`
}

// EventLocation is the nested geometry carried by provider events.
type EventLocation struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lng, lat]
}

// Coords returns the event's position as canonical Coordinates.
func (e *InboundEvent) Coords() (Coordinates, error) {
	return CoordsFromLngLat(e.Location.Coordinates)
}

// ParseWebhookBody accepts either a single event object or an
// {"events": [...]} envelope and normalizes both into a slice. It returns
// false when the body holds no event-shaped record at all.
func ParseWebhookBody(body []byte) ([]*InboundEvent, bool) {
	var envelope struct {
		Events []*InboundEvent `json:"events"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Events) > 0 {
		return envelope.Events, true
	}

	var single InboundEvent
	if err := json.Unmarshal(body, &single); err == nil && single.EventType != "" {
		return []*InboundEvent{&single}, true
	}
	return nil, false
}
