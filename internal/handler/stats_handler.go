package handlers

import (
	"log"
	"net/http"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, stats, http.StatusOK)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		writeSuccess(w, HealthResponse{Status: "ok", Database: "unknown"}, http.StatusOK)
		return
	}

	if err := h.DB.HealthCheck(); err != nil {
		log.Printf("Vérification de santé échouée : %v", err)
		writeSuccess(w, HealthResponse{Status: "degraded", Database: "down"}, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", Database: "up"}, http.StatusOK)
}
