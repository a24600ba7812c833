package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/messagely/messagely-backend/internal/middleware"
	"github.com/messagely/messagely-backend/internal/services"
	"github.com/messagely/messagely-backend/pkg/utils"
)

// UserHandler serves the user directory and per-user mailbox listings.
type UserHandler struct {
	users    *services.UserService
	messages *services.MessageService
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(users *services.UserService, messages *services.MessageService) *UserHandler {
	return &UserHandler{users: users, messages: messages}
}

// List handles GET /api/users: public projections of all users, ordered
// by last name then first name.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   users,
	})
}

// Get handles GET /api/users/{username}. Only the user themself may fetch
// the full record.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	username := utils.NormalizeUsername(chi.URLParam(r, "username"))

	if err := services.CanListMailbox(principal, username); err != nil {
		respondAppError(w, err)
		return
	}

	user, err := h.users.Get(r.Context(), username)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// MessagesTo handles GET /api/users/{username}/messages/to: messages
// received by the user, sender projections attached. Mailbox-owner only.
func (h *UserHandler) MessagesTo(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	username := utils.NormalizeUsername(chi.URLParam(r, "username"))

	if err := services.CanListMailbox(principal, username); err != nil {
		respondAppError(w, err)
		return
	}

	messages, err := h.messages.ListTo(r.Context(), username)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": messages,
	})
}

// MessagesFrom handles GET /api/users/{username}/messages/from: messages
// sent by the user, recipient projections attached. Mailbox-owner only.
func (h *UserHandler) MessagesFrom(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())
	username := utils.NormalizeUsername(chi.URLParam(r, "username"))

	if err := services.CanListMailbox(principal, username); err != nil {
		respondAppError(w, err)
		return
	}

	messages, err := h.messages.ListFrom(r.Context(), username)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": messages,
	})
}
