package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/messagely/messagely-backend/internal/middleware"
	"github.com/messagely/messagely-backend/internal/services"
	"github.com/messagely/messagely-backend/pkg/utils"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// TokenResponse carries a freshly issued session token.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// AuthHandler serves registration and login.
type AuthHandler struct {
	users  *services.UserService
	tokens *services.TokenService
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(users *services.UserService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Login handles POST /api/auth/login. A wrong password and an unknown
// username get the same response, so the endpoint cannot be used to probe
// for accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ok, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid username/password")
		return
	}

	token, err := h.tokens.Issue(utils.NormalizeUsername(req.Username))
	if err != nil {
		respondAppError(w, err)
		return
	}

	h.users.TouchLoginAsync(req.Username)
	respondJSON(w, http.StatusOK, TokenResponse{Success: true, Token: token})
}

// Register handles POST /api/auth/register: creates the user, logs them
// in and returns a token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "Password is required")
		return
	}
	if err := utils.ValidateUsername(req.Username); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Register(r.Context(), services.RegisterParams{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		respondAppError(w, err)
		return
	}

	h.users.TouchLoginAsync(user.Username)
	respondJSON(w, http.StatusCreated, TokenResponse{Success: true, Token: token})
}

// Me handles GET /api/auth/me: returns the authenticated user's record.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.Principal(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	user, err := h.users.Get(r.Context(), principal)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}
