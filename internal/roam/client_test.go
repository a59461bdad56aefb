package roam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGeofence_ReturnsProviderID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/geofence/", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("Api-Key"))

		var body createGeofenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// provider order is [lng, lat]
		require.Len(t, body.Coordinates, 2)
		assert.Equal(t, -0.187, body.Coordinates[0])
		assert.Equal(t, 5.6037, body.Coordinates[1])
		assert.Equal(t, "circle", body.GeometryType)
		assert.Equal(t, 500, body.GeometryRadius)
		require.Len(t, body.IsEnabled, 3)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"Success","data":{"geofence_id":"gf_123"}}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "secret", time.Second)
	id, err := client.CreateGeofence(context.Background(), 5.6037, -0.187, "collision")
	require.NoError(t, err)
	assert.Equal(t, "gf_123", id)
}

func TestCreateGeofence_MissingIDIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"Error","msg":"invalid coordinates"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "secret", time.Second)
	_, err := client.CreateGeofence(context.Background(), 0, 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing geofence_id")
}

func TestCreateGeofence_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "bad", time.Second)
	_, err := client.CreateGeofence(context.Background(), 1, 1, "")
	assert.Error(t, err)
}

func TestDeleteGeofence(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "secret", time.Second)
	require.NoError(t, client.DeleteGeofence(context.Background(), "gf_123"))
	assert.Equal(t, "/api/geofence/gf_123", gotPath)
}
