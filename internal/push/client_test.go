package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resq-bknd/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_PostsTopicMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fcm/send", r.URL.Path)
		assert.Equal(t, "key=server-key", r.Header.Get("Authorization"))

		var msg fcmMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		assert.Equal(t, "/topics/geofence_notifications", msg.To)
		assert.Equal(t, "Geofence Entry", msg.Notification.Title)
		assert.Equal(t, "g1", msg.Data["geofence_id"])

		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "server-key", time.Second)
	err := client.Send(context.Background(), models.Notification{
		Title: "Geofence Entry",
		Body:  "User u1 entered incident area g1",
		Data:  map[string]string{"geofence_id": "g1"},
		Topic: "geofence_notifications",
	})
	require.NoError(t, err)
}

func TestSend_ProviderErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "bad-key", time.Second)
	err := client.Send(context.Background(), models.Notification{Topic: "t"})
	assert.Error(t, err)
}
