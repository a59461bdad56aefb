// Package roam wraps the geospatial tracking provider's REST API. Only the
// geofence resource is used here; location and geofence events arrive the
// other way, over the provider's webhook.
package roam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	// Incident geofences are circular, 500 m radius, valid for 24 hours.
	incidentRadiusM   = 500
	incidentValidity  = 24 * time.Hour
	geofenceTimestamp = "2006-01-02T15:04:05"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type createGeofenceRequest struct {
	Coordinates    []float64 `json:"coordinates"` // provider order: [lng, lat]
	GeometryType   string    `json:"geometry_type"`
	GeometryRadius int       `json:"geometry_radius"`
	IsEnabled      []any     `json:"is_enabled"`
	Description    string    `json:"description"`
}

type createGeofenceResponse struct {
	Status string `json:"status"`
	Data   struct {
		GeofenceID string `json:"geofence_id"`
	} `json:"data"`
	Msg string `json:"msg"`
}

// CreateGeofence registers a circular geofence centered at (lat, lng) and
// returns the server-assigned geofence id. Any response without an id is an
// error and nothing may be persisted against it.
func (c *Client) CreateGeofence(ctx context.Context, lat, lng float64, description string) (string, error) {
	now := time.Now().UTC()
	body := createGeofenceRequest{
		Coordinates:    []float64{lng, lat},
		GeometryType:   "circle",
		GeometryRadius: incidentRadiusM,
		IsEnabled: []any{
			true,
			now.Format(geofenceTimestamp),
			now.Add(incidentValidity).Format(geofenceTimestamp),
		},
		Description: description,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal geofence request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/geofence/", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build geofence request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("geofence request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("geofence request: provider returned %d", resp.StatusCode)
	}

	var decoded createGeofenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode geofence response: %w", err)
	}
	if decoded.Data.GeofenceID == "" {
		return "", fmt.Errorf("geofence response missing geofence_id (status %q, msg %q)", decoded.Status, decoded.Msg)
	}
	return decoded.Data.GeofenceID, nil
}

// DeleteGeofence removes a geofence. Used only as best-effort compensation
// when persisting an incident fails after its geofence was created.
func (c *Client) DeleteGeofence(ctx context.Context, geofenceID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/geofence/"+geofenceID, nil)
	if err != nil {
		return fmt.Errorf("build geofence delete: %w", err)
	}
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("geofence delete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("geofence delete: provider returned %d", resp.StatusCode)
	}
	return nil
}
