package services

import (
	"context"
	"errors"

	"resq-bknd/internal/models"
	"resq-bknd/internal/realtime"

	"go.uber.org/zap"
)

// Publisher fans an event out to all connected real-time clients.
type Publisher interface {
	Publish(topic string, payload any)
}

// Notifier sends one push notification.
type Notifier interface {
	Send(ctx context.Context, n models.Notification) error
}

// Replanner recomputes route alternatives off the current tracker state.
type Replanner interface {
	Replan(ctx context.Context)
}

// EventAction names what the dispatcher does for one event kind, beyond
// sending its notification.
type EventAction int

const (
	// ActionNotifyOnly sends the notification and nothing else.
	ActionNotifyOnly EventAction = iota
	// ActionBroadcast also publishes to connected clients.
	ActionBroadcast
	// ActionBroadcastReplan additionally triggers a route replan.
	ActionBroadcastReplan
	// ActionTrackReplan overwrites the current position, then broadcasts
	// and triggers a replan.
	ActionTrackReplan
)

// EventPolicy is one row of the dispatch table.
type EventPolicy struct {
	Kind   string
	Action EventAction
}

// Event kinds, used for notification composition and publish shaping.
const (
	KindGeofenceEntry  = "geofence_entry"
	KindGeofenceExit   = "geofence_exit"
	KindGeofenceDwell  = "geofence_dwell"
	KindLocationPoint  = "location_point"
	KindNearbyGeofence = "nearby_geofence"
)

// DefaultPolicies returns the dispatch table for the tracking provider's
// tag set. Tags are matched case-sensitively. The provider has been seen
// emitting both "geospark:geofence:exit" and "geospark:geofence:Exit"; both
// spellings are kept rather than guessing which one is canonical.
func DefaultPolicies() map[string]EventPolicy {
	return map[string]EventPolicy{
		"geospark:geofence:entry":  {Kind: KindGeofenceEntry, Action: ActionBroadcastReplan},
		"geospark:geofence:exit":   {Kind: KindGeofenceExit, Action: ActionNotifyOnly},
		"geospark:geofence:Exit":   {Kind: KindGeofenceExit, Action: ActionNotifyOnly},
		"geospark:geofence:dwell":  {Kind: KindGeofenceDwell, Action: ActionNotifyOnly},
		"geospark:location:point":  {Kind: KindLocationPoint, Action: ActionTrackReplan},
		"geospark:nearby:geofence": {Kind: KindNearbyGeofence, Action: ActionBroadcast},
	}
}

// DispatchResult summarizes one batch: how many events ran their full policy,
// how many were skipped (absent, untagged, or unknown tag) and how many had
// their notification fail.
type DispatchResult struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// ErrEmptyBatch is returned when Dispatch receives no events at all.
var ErrEmptyBatch = errors.New("empty event batch")

// Dispatcher maps inbound provider events to their side effects: state
// mutation, real-time publish, route replan trigger and push notification,
// in that fixed order.
type Dispatcher struct {
	policies map[string]EventPolicy
	state    *TrackerState
	pub      Publisher
	notifier Notifier
	planner  Replanner
	logr     *zap.Logger
}

// NewDispatcher builds a dispatcher. A nil policies map selects
// DefaultPolicies; passing a custom map lets the tag table be treated as
// configuration rather than code.
func NewDispatcher(policies map[string]EventPolicy, state *TrackerState, pub Publisher, notifier Notifier, planner Replanner, logr *zap.Logger) *Dispatcher {
	if policies == nil {
		policies = DefaultPolicies()
	}
	return &Dispatcher{
		policies: policies,
		state:    state,
		pub:      pub,
		notifier: notifier,
		planner:  planner,
		logr:     logr,
	}
}

// Dispatch processes events in order. Individual events that are absent,
// untagged or carry an unknown tag are skipped and the batch continues.
// Notification failures are isolated per event: the failure is logged and
// counted, and the remaining events still run. Only an empty batch is an
// error to the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, events []*models.InboundEvent) (DispatchResult, error) {
	if len(events) == 0 {
		return DispatchResult{}, ErrEmptyBatch
	}

	var result DispatchResult
	for _, event := range events {
		if event == nil || event.EventType == "" {
			result.Skipped++
			continue
		}

		policy, ok := d.policies[event.EventType]
		if !ok {
			d.logr.Info("skipping unrecognized event", zap.String("event_type", event.EventType))
			result.Skipped++
			continue
		}

		skipped, err := d.handle(ctx, event, policy)
		if err != nil {
			d.logr.Error("notification send failed",
				zap.String("event_type", event.EventType),
				zap.Error(err))
			result.Failed++
			continue
		}
		if skipped {
			result.Skipped++
			continue
		}
		result.Processed++
	}
	return result, nil
}

func (d *Dispatcher) handle(ctx context.Context, event *models.InboundEvent, policy EventPolicy) (skipped bool, err error) {
	// (a) state mutation
	if policy.Action == ActionTrackReplan {
		coords, coordsErr := event.Coords()
		if coordsErr != nil {
			// A point event without usable coordinates cannot update state;
			// treat it like any other malformed entry.
			d.logr.Warn("location point with bad coordinates", zap.Error(coordsErr))
			return true, nil
		}
		d.state.SetCurrent(coords)
	}

	// (b) real-time publish
	if topic, payload, ok := d.broadcastPayload(event, policy); ok {
		d.pub.Publish(topic, payload)
	}

	// (c) replan trigger, only after state and publish are done
	if policy.Action == ActionBroadcastReplan || policy.Action == ActionTrackReplan {
		d.planner.Replan(ctx)
	}

	// (d) notification
	return false, d.notifier.Send(ctx, composeNotification(event, policy.Kind))
}

func (d *Dispatcher) broadcastPayload(event *models.InboundEvent, policy EventPolicy) (string, any, bool) {
	switch policy.Kind {
	case KindGeofenceEntry:
		return realtime.TopicGeofenceUpdate, GeofenceUpdatePayload{
			LocationID: event.LocationID,
			GeofenceID: event.GeofenceID,
			RecordedAt: event.RecordedAt,
			Location:   event.Location,
		}, true
	case KindLocationPoint:
		coords, err := event.Coords()
		if err != nil {
			return "", nil, false
		}
		return realtime.TopicLocationUpdate, LocationUpdatePayload{Coordinates: coords}, true
	case KindNearbyGeofence:
		return realtime.TopicMovingGeofenceUpdate, MovingGeofencePayload{
			LocationID:   event.LocationID,
			NearbyUserID: event.NearbyUserID,
			RecordedAt:   event.RecordedAt,
			Location:     event.Location,
		}, true
	default:
		return "", nil, false
	}
}

// GeofenceUpdatePayload is the body published on the geofence_update topic.
type GeofenceUpdatePayload struct {
	LocationID string               `json:"location_id"`
	GeofenceID string               `json:"geofence_id"`
	RecordedAt string               `json:"recorded_at"`
	Location   models.EventLocation `json:"location"`
}

// MovingGeofencePayload is the body published on moving_geofence_update.
type MovingGeofencePayload struct {
	LocationID   string               `json:"location_id"`
	NearbyUserID string               `json:"nearby_user_id"`
	RecordedAt   string               `json:"recorded_at"`
	Location     models.EventLocation `json:"location"`
}
