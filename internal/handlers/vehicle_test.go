package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resq-bknd/internal/realtime"
	"resq-bknd/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUpsertLocation_CreatesRecord(t *testing.T) {
	store := newMockVehicleStore()
	handler := NewVehicleHandler(services.NewVehicleService(store, &mockPublisher{}, zap.NewNop()), zap.NewNop())

	body := `{"userId":"driver-1","origin":{"lat":5.6,"lng":-0.2},"is_tracking":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/emergency-vehicle-location", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.UpsertLocation(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, store.creates)
	require.Contains(t, store.rows, "driver-1")
	assert.True(t, store.rows["driver-1"].IsTracking)
}

func TestUpsertLocation_MissingFieldsIs400(t *testing.T) {
	store := newMockVehicleStore()
	handler := NewVehicleHandler(services.NewVehicleService(store, &mockPublisher{}, zap.NewNop()), zap.NewNop())

	for _, body := range []string{
		`{"origin":{"lat":5.6,"lng":-0.2}}`,
		`{"userId":"driver-1"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/emergency-vehicle-location", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.UpsertLocation(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Equal(t, 0, store.creates)
}

func TestBroadcastLocation_AlwaysAcknowledges(t *testing.T) {
	pub := &mockPublisher{}
	handler := NewVehicleHandler(services.NewVehicleService(newMockVehicleStore(), pub, zap.NewNop()), zap.NewNop())

	body := `{"userId":"driver-1","location":{"latitude":5.6,"longitude":-0.2}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/emergency-vehicle", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.BroadcastLocation(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	frames := pub.published(realtime.TopicVehicleUpdate)
	require.Len(t, frames, 1)
	payload := frames[0].(services.VehicleUpdatePayload)
	assert.Equal(t, "driver-1", payload.UserID)
	assert.Equal(t, 5.6, payload.Coordinates.Lat)
}

func TestBroadcastLocation_MalformedBodyIs400(t *testing.T) {
	pub := &mockPublisher{}
	handler := NewVehicleHandler(services.NewVehicleService(newMockVehicleStore(), pub, zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/emergency-vehicle", strings.NewReader(`{bad json`))
	rec := httptest.NewRecorder()

	handler.BroadcastLocation(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, pub.published(realtime.TopicVehicleUpdate))
}
