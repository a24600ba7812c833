package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/messagely/messagely-backend/internal/handlers"
	"github.com/messagely/messagely-backend/internal/middleware"
	"github.com/messagely/messagely-backend/internal/services"
)

// SetupRoutes wires all API routes. Everything except registration and
// login sits behind the bearer-token middleware.
func SetupRoutes(r *chi.Mux, auth *handlers.AuthHandler, users *handlers.UserHandler,
	messages *handlers.MessageHandler, tokens *services.TokenService) {

	// Auth routes
	r.Post("/api/auth/register", auth.Register)
	r.Post("/api/auth/login", auth.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))

		r.Get("/api/auth/me", auth.Me)

		// User directory
		r.Get("/api/users", users.List)
		r.Get("/api/users/{username}", users.Get)
		r.Get("/api/users/{username}/messages/to", users.MessagesTo)
		r.Get("/api/users/{username}/messages/from", users.MessagesFrom)

		// Messages
		r.Get("/api/messages", messages.List)
		r.Post("/api/messages", messages.Create)
		r.Get("/api/messages/{id}", messages.Get)
		r.Post("/api/messages/{id}/read", messages.MarkRead)
	})
}
