package handlers

import (
	"log"
	"net/http"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/ports"
)

type HealthHandler struct {
	Repo ports.StationRepository
}

// Health reports service liveness plus the state of the station catalog.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Repo.Counts(r.Context())
	if err != nil {
		log.Printf("health check failed: %v", err)
		writeError(w, r, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	res := dto.HealthResponse{
		Status: "healthy",
		Database: dto.DatabaseHealth{
			TotalStations:    counts.Total,
			GeocodedStations: counts.Geocoded,
			PendingGeocoding: counts.Total - counts.Geocoded,
		},
	}

	writeJSON(w, r, http.StatusOK, res)
}
