package models

// RouteStep is one turn-by-turn instruction within a route alternative.
type RouteStep struct {
	Instruction string `json:"instruction"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
	Polyline    string `json:"polyline"`
}

// RouteSummary is one ranked route alternative returned by the Directions
// API. Path is the overview polyline decoded into canonical coordinates so
// map clients can draw the route without a polyline decoder. Summaries are
// produced fresh on every planning trigger and never cached.
type RouteSummary struct {
	Summary          string        `json:"summary"`
	Distance         string        `json:"distance"`
	Duration         string        `json:"duration"`
	StartAddress     string        `json:"start_address"`
	EndAddress       string        `json:"end_address"`
	Steps            []RouteStep   `json:"steps"`
	OverviewPolyline string        `json:"overview_polyline"`
	Path             []Coordinates `json:"path"`
}

// Notification is the provider-agnostic push payload handed to the
// messaging client.
type Notification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
	Topic string            `json:"topic"`
}
