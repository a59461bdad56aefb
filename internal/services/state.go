package services

import (
	"sync"

	"resq-bknd/internal/models"
	"resq-bknd/internal/realtime"
)

// TrackerState holds the last-known tracked position and the last-known
// destination. Each field is overwritten in place; no history is kept and
// the state resets on process restart. One mutex guards both fields so a
// snapshot used for route planning is internally consistent.
type TrackerState struct {
	mu          sync.Mutex
	current     *models.Coordinates
	destination *models.Coordinates
}

func NewTrackerState() *TrackerState {
	return &TrackerState{}
}

func (s *TrackerState) SetCurrent(c models.Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &c
}

func (s *TrackerState) SetDestination(c models.Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destination = &c
}

// Snapshot returns copies of both fields; either may be nil when unset.
func (s *TrackerState) Snapshot() (current, destination *models.Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		c := *s.current
		current = &c
	}
	if s.destination != nil {
		d := *s.destination
		destination = &d
	}
	return current, destination
}

// ReplayPayload implements realtime.StateSource: a newly connected client
// gets the last-known position once, and nothing when none has been seen.
func (s *TrackerState) ReplayPayload() (string, any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return "", nil, false
	}
	return realtime.TopicLocationUpdate, LocationUpdatePayload{Coordinates: *s.current}, true
}

// LocationUpdatePayload is the body published on the location_update topic.
type LocationUpdatePayload struct {
	Coordinates models.Coordinates `json:"coordinates"`
}
