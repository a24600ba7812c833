package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/messagely/messagely-backend/internal/config"
	"github.com/messagely/messagely-backend/internal/database"
	"github.com/messagely/messagely-backend/internal/handlers"
	"github.com/messagely/messagely-backend/internal/middleware"
	"github.com/messagely/messagely-backend/internal/routes"
	"github.com/messagely/messagely-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.IsProduction() && cfg.JWTSecret == "your-secret-key-change-in-production" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	store, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer store.Close()

	// Services
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	users := services.NewUserService(store)
	messages := services.NewMessageService(store)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.SecurityHeaders)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r,
		handlers.NewAuthHandler(users, tokens),
		handlers.NewUserHandler(users, messages),
		handlers.NewMessageHandler(messages),
		tokens,
	)

	log.Printf("🚀 messagely backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
