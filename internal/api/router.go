package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mpetrie/geohunt/internal/api/handler"
	"github.com/mpetrie/geohunt/internal/api/middleware"
	"github.com/mpetrie/geohunt/internal/services/auth"
	"github.com/mpetrie/geohunt/internal/services/game"
	"github.com/mpetrie/geohunt/internal/streetview"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController game.ControllerInterface
	Provider       streetview.Provider
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Provider)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required for registering/logging in)
	api.HandleFunc("/auth/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", userHandler.Login).Methods(http.MethodPost)

	// Protected account routes
	api.Handle("/auth/logout", authMiddleware(http.HandlerFunc(userHandler.Logout))).Methods(http.MethodPost)
	api.Handle("/users/me", authMiddleware(http.HandlerFunc(userHandler.GetMe))).Methods(http.MethodGet)

	// Game routes: a session without credentials plays in the anonymous group
	games := api.PathPrefix("/games").Subrouter()
	games.Use(optionalAuthMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("", gameHandler.List).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}/submit", gameHandler.Submit).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/quit", gameHandler.Quit).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/image", gameHandler.Image).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
