package handlers

import (
	"net/http"
	"strings"

	"waste-ops-service/internal/api/dto"
	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/services"
)

// BinHandler exposes smart-bin fill reporting and listing.
type BinHandler struct {
	Service *services.BinService
}

// ReportFill records a fill-level reading from a bin sensor.
func (h *BinHandler) ReportFill(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ReportFillLevelRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.BinID) == "" {
		writeError(w, r, http.StatusBadRequest, "bin_id is required")
		return
	}
	if req.FillLevel < 0 || req.FillLevel > 100 {
		writeError(w, r, http.StatusBadRequest, "fill_level must be between 0 and 100")
		return
	}

	bin, err := h.Service.ReportFillLevel(r.Context(), req.BinID, req.FillLevel)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toBinResponse(bin))
}

// List returns all known bins.
func (h *BinHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	bins, err := h.Service.ListBins(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListBinsResponse{
		Bins: make([]dto.BinResponse, 0, len(bins)),
	}
	for _, bin := range bins {
		res.Bins = append(res.Bins, toBinResponse(bin))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func toBinResponse(bin *domain.SmartBin) dto.BinResponse {
	return dto.BinResponse{
		BinID:            bin.BinID,
		Latitude:         bin.Location.Lat,
		Longitude:        bin.Location.Lng,
		CapacityLiters:   bin.CapacityLiters,
		CurrentFillLevel: bin.CurrentFillLevel,
		Status:           string(bin.Status),
		LastUpdated:      bin.LastUpdated,
	}
}
