package dto

import "time"

type ReportFillLevelRequest struct {
	BinID     string  `json:"bin_id"`
	FillLevel float64 `json:"fill_level"`
}

type BinResponse struct {
	BinID            string    `json:"bin_id"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	CapacityLiters   int       `json:"capacity_liters"`
	CurrentFillLevel float64   `json:"current_fill_level"`
	Status           string    `json:"status"`
	LastUpdated      time.Time `json:"last_updated"`
}

type ListBinsResponse struct {
	Bins []BinResponse `json:"bins"`
}
