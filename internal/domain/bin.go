package domain

import "time"

type BinStatus string

const (
	BinNormal      BinStatus = "NORMAL"
	BinFull        BinStatus = "FULL"
	BinMaintenance BinStatus = "MAINTENANCE"
)

// Fill level (percent) at which a bin is considered full and a
// BIN_ALERT is raised.
const BinFullThreshold = 80.0

// SmartBin is a physical bin with a fill-level sensor. Waypoints may
// reference a bin by its external BinID.
type SmartBin struct {
	ID               int64
	BinID            string
	Location         Coordinates
	CapacityLiters   int
	CurrentFillLevel float64
	Status           BinStatus
	LastUpdated      time.Time
}
