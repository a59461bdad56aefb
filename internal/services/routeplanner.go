package services

import (
	"context"
	"time"

	"resq-bknd/internal/models"
	"resq-bknd/internal/realtime"

	"go.uber.org/zap"
)

// DirectionsClient fetches ranked route alternatives between two points.
type DirectionsClient interface {
	Directions(ctx context.Context, origin, destination models.Coordinates) ([]models.RouteSummary, error)
}

// Planner recomputes route alternatives whenever the tracked position or
// destination changes. It is a best-effort trigger fired synchronously from
// request handling: failures are logged and never surfaced to the request
// that caused the replan, and there are no retries.
type Planner struct {
	state      *TrackerState
	directions DirectionsClient
	pub        Publisher
	timeout    time.Duration
	logr       *zap.Logger
}

func NewPlanner(state *TrackerState, directions DirectionsClient, pub Publisher, timeout time.Duration, logr *zap.Logger) *Planner {
	return &Planner{
		state:      state,
		directions: directions,
		pub:        pub,
		timeout:    timeout,
		logr:       logr,
	}
}

// Replan snapshots the tracker state and, when both the current position and
// the destination are known, fetches fresh alternatives and publishes them on
// the alternative_routes topic. With either coordinate missing it is a silent
// no-op and no external call is made.
func (p *Planner) Replan(ctx context.Context) {
	origin, destination := p.state.Snapshot()
	if origin == nil || destination == nil {
		p.logr.Debug("replan skipped: missing coordinates",
			zap.Bool("have_origin", origin != nil),
			zap.Bool("have_destination", destination != nil))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	routes, err := p.directions.Directions(ctx, *origin, *destination)
	if err != nil {
		p.logr.Warn("route replan failed", zap.Error(err))
		return
	}

	p.pub.Publish(realtime.TopicAlternativeRoutes, routes)
	p.logr.Info("published route alternatives", zap.Int("count", len(routes)))
}
