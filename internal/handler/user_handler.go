package handlers

import (
	"anonforum/internal/models"
	"net/http"
	"time"
)

// UserResponse is only ever sent to the account owner.
type UserResponse struct {
	UserID          string    `json:"userId"`
	Email           string    `json:"email"`
	DisplayUsername *string   `json:"displayUsername"`
	CreatedAt       time.Time `json:"createdAt"`
}

type MeResponse struct {
	User    UserResponse   `json:"user"`
	Primary *models.Alias  `json:"primaryAlias"`
	Aliases []models.Alias `json:"aliases"`
}

type UpdateMeRequest struct {
	DisplayUsername *string `json:"displayUsername"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		UserID:          user.UserID,
		Email:           user.Email,
		DisplayUsername: user.DisplayUsername,
		CreatedAt:       user.CreatedAt,
	}
}

func (h *Handlers) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	aliases, err := h.AliasService.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := MeResponse{User: newUserResponse(user), Aliases: aliases}
	for i := range aliases {
		if aliases[i].IsPrimary {
			resp.Primary = &aliases[i]
			break
		}
	}

	writeSuccess(w, resp, http.StatusOK)
}

func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.UserService.UpdateDisplayUsername(r.Context(), userID, req.DisplayUsername); err != nil {
		writeServiceError(w, err)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, newUserResponse(user), http.StatusOK)
}

func (h *Handlers) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
