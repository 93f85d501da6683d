package handlers

import (
	"anonforum/internal/service"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const (
	supportMessage  = "Une erreur est survenue avec votre compte, veuillez contacter le support"
	internalMessage = "Erreur interne du serveur"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

func writeFieldError(w http.ResponseWriter, message, field string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message, Field: field}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps service errors to HTTP. Storage and allocation
// details never reach the client.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	var takenErr *service.NameTakenError

	switch {
	case errors.As(err, &validationErr):
		writeFieldError(w, validationErr.Message, validationErr.Field, http.StatusBadRequest)
	case errors.As(err, &takenErr):
		writeFieldError(w, takenErr.Error(), "alias", http.StatusConflict)
	case errors.Is(err, service.ErrAliasExhausted), errors.Is(err, service.ErrNoPrimaryAlias):
		log.Printf("Erreur de provisionnement d'alias : %v", err)
		WriteError(w, supportMessage, http.StatusInternalServerError)
	case errors.Is(err, service.ErrAliasNotOwned):
		WriteError(w, "Accès refusé", http.StatusForbidden)
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, "Ressource introuvable", http.StatusNotFound)
	case errors.Is(err, service.ErrEmailTaken):
		writeFieldError(w, "Un compte existe déjà avec cet email", "email", http.StatusConflict)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, "Email ou mot de passe incorrect", http.StatusUnauthorized)
	default:
		log.Printf("Erreur interne : %v", err)
		WriteError(w, internalMessage, http.StatusInternalServerError)
	}
}

// decodeAndValidate reads a JSON body into dst and runs struct validation,
// answering 400 itself when either fails.
func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, "Format de requête invalide", http.StatusBadRequest)
		return false
	}

	if err := h.Validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			writeFieldError(w, validationMessage(fe), fe.Field(), http.StatusBadRequest)
			return false
		}
		WriteError(w, "Données invalides", http.StatusBadRequest)
		return false
	}

	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Ce champ est obligatoire"
	case "email":
		return "Format d'email invalide"
	case "min":
		return "Valeur trop courte (minimum " + fe.Param() + ")"
	case "max":
		return "Valeur trop longue (maximum " + fe.Param() + ")"
	default:
		return "Valeur invalide"
	}
}
