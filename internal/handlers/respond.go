package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/messagely/messagely-backend/internal/apperrors"
)

// ErrorResponse is the JSON body sent for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// respondAppError maps a service error to its HTTP status. Internal
// details never cross the boundary; unknown errors get logged and
// surface as a generic 500.
func respondAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, apperrors.ErrMessageNotFound):
		respondError(w, http.StatusNotFound, "Message not found")
	case errors.Is(err, apperrors.ErrUsernameTaken):
		respondError(w, http.StatusConflict, "Username is already taken")
	case errors.Is(err, apperrors.ErrForbidden):
		respondError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired):
		respondError(w, http.StatusUnauthorized, "Invalid or expired token")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
