// Package maps wraps the Directions API used to fetch ranked route
// alternatives between an origin and a destination.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"resq-bknd/internal/models"

	"github.com/twpayne/go-polyline"
)

// ErrNotOK reports a provider response whose status was anything but "OK".
type ErrNotOK struct {
	Status  string
	Message string
}

func (e *ErrNotOK) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("directions status %s: %s", e.Status, e.Message)
	}
	return "directions status " + e.Status
}

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

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Summary string `json:"summary"`
		Legs    []struct {
			Distance     textValue `json:"distance"`
			Duration     textValue `json:"duration"`
			StartAddress string    `json:"start_address"`
			EndAddress   string    `json:"end_address"`
			Steps        []struct {
				HTMLInstructions string    `json:"html_instructions"`
				Distance         textValue `json:"distance"`
				Duration         textValue `json:"duration"`
				Polyline         encoded   `json:"polyline"`
			} `json:"steps"`
		} `json:"legs"`
		OverviewPolyline encoded `json:"overview_polyline"`
	} `json:"routes"`
}

type textValue struct {
	Text string `json:"text"`
}

type encoded struct {
	Points string `json:"points"`
}

// Directions fetches route alternatives from origin to destination, ranked
// by the provider. A non-OK provider status is returned as *ErrNotOK.
func (c *Client) Directions(ctx context.Context, origin, destination models.Coordinates) ([]models.RouteSummary, error) {
	params := url.Values{}
	params.Set("origin", origin.String())
	params.Set("destination", destination.String())
	params.Set("alternatives", "true")
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/maps/api/directions/json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build directions request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}
	if decoded.Status != "OK" {
		return nil, &ErrNotOK{Status: decoded.Status, Message: decoded.ErrorMessage}
	}

	summaries := make([]models.RouteSummary, 0, len(decoded.Routes))
	for _, route := range decoded.Routes {
		summary := models.RouteSummary{
			Summary:          route.Summary,
			OverviewPolyline: route.OverviewPolyline.Points,
			Path:             decodePath(route.OverviewPolyline.Points),
		}
		if len(route.Legs) > 0 {
			leg := route.Legs[0]
			summary.Distance = leg.Distance.Text
			summary.Duration = leg.Duration.Text
			summary.StartAddress = leg.StartAddress
			summary.EndAddress = leg.EndAddress
			for _, step := range leg.Steps {
				summary.Steps = append(summary.Steps, models.RouteStep{
					Instruction: step.HTMLInstructions,
					Distance:    step.Distance.Text,
					Duration:    step.Duration.Text,
					Polyline:    step.Polyline.Points,
				})
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// decodePath expands an encoded overview polyline into coordinates. Decode
// failures yield an empty path; the encoded form is still in the summary.
func decodePath(points string) []models.Coordinates {
	if points == "" {
		return nil
	}
	coords, _, err := polyline.DecodeCoords([]byte(points))
	if err != nil {
		return nil
	}
	path := make([]models.Coordinates, 0, len(coords))
	for _, c := range coords {
		path = append(path, models.Coordinates{Lat: c[0], Lng: c[1]})
	}
	return path
}
