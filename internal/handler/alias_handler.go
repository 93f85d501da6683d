package handlers

import (
	"net/http"
	"strings"
)

type CreateAliasRequest struct {
	Alias           *string `json:"alias"`
	RotationEnabled bool    `json:"rotationEnabled"`
}

type AvailabilityResponse struct {
	Alias     string `json:"alias"`
	Available bool   `json:"available"`
}

func (h *Handlers) ListAliases(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	aliases, err := h.AliasService.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, aliases, http.StatusOK)
}

// CreateAlias adds a secondary alias. Without a name one is generated.
func (h *Handlers) CreateAlias(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateAliasRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if req.Alias != nil && strings.TrimSpace(*req.Alias) == "" {
		req.Alias = nil
	}

	created, err := h.AliasService.CreateSecondary(r.Context(), userID, req.Alias, req.RotationEnabled)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, created, http.StatusCreated)
}

func (h *Handlers) CheckAliasAvailability(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeFieldError(w, "Paramètre name obligatoire", "name", http.StatusBadRequest)
		return
	}

	available, err := h.AliasService.IsAvailable(r.Context(), name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, AvailabilityResponse{Alias: name, Available: available}, http.StatusOK)
}
