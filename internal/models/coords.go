package models

import (
	"fmt"
	"strconv"
)

// Coordinates is the canonical coordinate pair used everywhere past the
// ingress boundary. The tracking provider sends [lng, lat] arrays while app
// clients send {lat, lng} objects; both must be converted at parse time and
// never flow into internal state in their raw shape.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LatLng is the client-submitted coordinate shape (origin/destination bodies).
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoordsFromLngLat converts a provider coordinate array (longitude first)
// into canonical Coordinates.
func CoordsFromLngLat(pair []float64) (Coordinates, error) {
	if len(pair) != 2 {
		return Coordinates{}, fmt.Errorf("coordinates: expected [lng, lat] pair, got %d values", len(pair))
	}
	return Coordinates{Lat: pair[1], Lng: pair[0]}, nil
}

// CoordsFromLatLng converts a client-submitted {lat, lng} object into
// canonical Coordinates.
func CoordsFromLatLng(p LatLng) Coordinates {
	return Coordinates{Lat: p.Lat, Lng: p.Lng}
}

// String renders "lat,lng", the parameter format the Directions API expects.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}
