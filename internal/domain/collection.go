package domain

import "time"

type CollectionStatus string

const (
	CollectionCollected CollectionStatus = "COLLECTED"
	CollectionSkipped   CollectionStatus = "SKIPPED"
	CollectionPartial   CollectionStatus = "PARTIAL"
)

// CollectionRecord captures the outcome of visiting one waypoint.
// Records are append-only: a waypoint's history is the full set of its
// records, and a record is never updated after creation.
type CollectionRecord struct {
	ID          int64
	RouteID     int64
	WaypointID  int64
	EmployeeID  *int64
	Status      CollectionStatus
	CollectedAt time.Time
	// CollectionDate is the calendar day used by "today's work"
	// queries, distinct from the CollectedAt instant. Nil on per-stop
	// updates, set by route completion sweeps.
	CollectionDate *time.Time
	PhotoURL       string
	Location       Coordinates
	Remark         string
}
