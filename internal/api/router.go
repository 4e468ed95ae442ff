package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/avicente/recipebook-be/internal/api/handlers"
	"github.com/avicente/recipebook-be/internal/services"
	"github.com/avicente/recipebook-be/internal/session"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(sessions *session.Manager, userService services.UserServiceProvider, recipeService services.RecipeServiceProvider, allowedOrigin string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration; credentials must be allowed for the session cookie
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Resolve the session cookie (if any) for every request
	r.Use(sessions.Authenticate())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, sessions)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Anonymous endpoints
	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)

	// Endpoints requiring an authenticated session
	r.Group(func(r chi.Router) {
		r.Use(session.RequireAuth)
		r.Get("/check_session", authHandler.CheckSession)
		r.Delete("/logout", authHandler.Logout)
		r.Get("/recipes", recipeHandler.Index)
		r.Post("/recipes", recipeHandler.Create)
	})

	return r
}
