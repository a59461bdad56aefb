package services

import (
	"context"
	"sync"

	"resq-bknd/internal/models"
)

// Function-field mocks shared by the service tests.

type mockPublisher struct {
	mu     sync.Mutex
	topics []string
	frames []any
}

func (m *mockPublisher) Publish(topic string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics = append(m.topics, topic)
	m.frames = append(m.frames, payload)
}

func (m *mockPublisher) published(topic string) []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []any
	for i, t := range m.topics {
		if t == topic {
			out = append(out, m.frames[i])
		}
	}
	return out
}

type mockNotifier struct {
	sendFn func(ctx context.Context, n models.Notification) error
	sent   []models.Notification
}

func (m *mockNotifier) Send(ctx context.Context, n models.Notification) error {
	m.sent = append(m.sent, n)
	if m.sendFn != nil {
		return m.sendFn(ctx, n)
	}
	return nil
}

type mockReplanner struct {
	calls int
}

func (m *mockReplanner) Replan(ctx context.Context) {
	m.calls++
}

type mockDirections struct {
	directionsFn func(ctx context.Context, origin, destination models.Coordinates) ([]models.RouteSummary, error)
	calls        int
}

func (m *mockDirections) Directions(ctx context.Context, origin, destination models.Coordinates) ([]models.RouteSummary, error) {
	m.calls++
	if m.directionsFn != nil {
		return m.directionsFn(ctx, origin, destination)
	}
	return nil, nil
}

type mockGeofenceProvider struct {
	createFn    func(ctx context.Context, lat, lng float64, description string) (string, error)
	deleteFn    func(ctx context.Context, geofenceID string) error
	deleteCalls []string
}

func (m *mockGeofenceProvider) CreateGeofence(ctx context.Context, lat, lng float64, description string) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, lat, lng, description)
	}
	return "gf_test", nil
}

func (m *mockGeofenceProvider) DeleteGeofence(ctx context.Context, geofenceID string) error {
	m.deleteCalls = append(m.deleteCalls, geofenceID)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, geofenceID)
	}
	return nil
}

type mockIncidentStore struct {
	insertFn func(ctx context.Context, report *models.IncidentReport) error
	inserted []*models.IncidentReport
}

func (m *mockIncidentStore) Insert(ctx context.Context, report *models.IncidentReport) error {
	if m.insertFn != nil {
		if err := m.insertFn(ctx, report); err != nil {
			return err
		}
	}
	m.inserted = append(m.inserted, report)
	return nil
}

func (m *mockIncidentStore) GetByID(ctx context.Context, id string) (*models.IncidentReport, error) {
	for _, r := range m.inserted {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockIncidentStore) List(ctx context.Context, limit, offset int) ([]models.IncidentReport, error) {
	var out []models.IncidentReport
	for _, r := range m.inserted {
		out = append(out, *r)
	}
	return out, nil
}

type mockVehicleStore struct {
	mu      sync.Mutex
	rows    map[string]*models.EmergencyVehicleLocation
	creates int
	updates int
}

func newMockVehicleStore() *mockVehicleStore {
	return &mockVehicleStore{rows: make(map[string]*models.EmergencyVehicleLocation)}
}

func (m *mockVehicleStore) GetByUserID(ctx context.Context, userID string) (*models.EmergencyVehicleLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[userID]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

func (m *mockVehicleStore) Create(ctx context.Context, loc *models.EmergencyVehicleLocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	copied := *loc
	m.rows[loc.UserID] = &copied
	return nil
}

func (m *mockVehicleStore) Update(ctx context.Context, loc *models.EmergencyVehicleLocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	copied := *loc
	m.rows[loc.UserID] = &copied
	return nil
}
