package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/messagely/messagely-backend/internal/middleware"
	"github.com/messagely/messagely-backend/internal/services"
)

// SendMessageRequest is the payload for posting a new message. The sender
// is always the authenticated principal.
type SendMessageRequest struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

// MarkReadResponse is returned after marking a message read.
type MarkReadResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
	ReadAt  time.Time `json:"read_at"`
}

// MessageHandler serves message creation, detail reads and read receipts.
type MessageHandler struct {
	messages *services.MessageService
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// List handles GET /api/messages: the caller's own mailbox, sent and
// received. There is deliberately no unscoped listing.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.Principal(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	mailbox, err := h.messages.ListFor(r.Context(), principal)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"sent":     mailbox.Sent,
		"received": mailbox.Received,
	})
}

// Create handles POST /api/messages.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.Principal(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ToUsername == "" || req.Body == "" {
		respondError(w, http.StatusBadRequest, "to_username and body are required")
		return
	}

	msg, err := h.messages.Create(r.Context(), principal, req.ToUsername, req.Body)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": msg,
	})
}

// Get handles GET /api/messages/{id}. Only the sender or the recipient
// may read the detail.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.Principal(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid message id")
		return
	}

	msg, err := h.messages.Get(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if err := services.CanReadMessage(principal, msg); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": msg,
	})
}

// MarkRead handles POST /api/messages/{id}/read. Recipient only; a
// repeated call is a no-op that returns the original timestamp.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.Principal(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid message id")
		return
	}

	msg, err := h.messages.Get(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if err := services.CanMarkRead(principal, msg); err != nil {
		respondAppError(w, err)
		return
	}

	readAt, err := h.messages.MarkRead(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, MarkReadResponse{Success: true, ID: id, ReadAt: readAt})
}
