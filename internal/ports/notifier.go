package ports

import (
	"context"
	"time"
)

// Event types fanned out to subscribers.
const (
	EventBinAlert        = "BIN_ALERT"
	EventRouteUpdate     = "ROUTE_UPDATE"
	EventComplaintUpdate = "COMPLAINT_UPDATE"
	EventAchievement     = "ACHIEVEMENT"
)

// Event is a pre-built payload destined for a broadcast topic. The core
// builds events; delivery and transport belong to the notifier
// implementation.
type Event struct {
	Type      string
	Topic     string
	Payload   map[string]any
	Timestamp time.Time
}

// Port: fan-out of finished events. Callers do not depend on delivery
// succeeding; publish failures are logged, never propagated.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}
