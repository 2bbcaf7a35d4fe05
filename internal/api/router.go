package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rp-projects/netball-api/internal/api/handlers"
	"github.com/rp-projects/netball-api/internal/api/middleware"
	"github.com/rp-projects/netball-api/internal/service"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.User)
	skillHandler := handlers.NewSkillHandler(services.Analysis, services.Leaderboard)
	injuryHandler := handlers.NewInjuryHandler(services.Injury)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// User routes
		r.Route("/users", func(r chi.Router) {
			r.Get("/coaches", userHandler.Coaches)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/players", userHandler.Players)
				r.Put("/profile", userHandler.UpdateProfile)
				r.Delete("/profile", userHandler.DeleteProfile)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// One generic set of endpoints per skill domain
			r.Route("/skills/{domain}", func(r chi.Router) {
				r.Post("/upload", skillHandler.Upload)
				r.Post("/analyze/{id}", skillHandler.Analyze)
				r.Get("/records/{userId}", skillHandler.Records)
				r.Get("/matching/{userId}", skillHandler.Matching)
				r.Delete("/records/{id}", skillHandler.Delete)
				r.Post("/top-players", skillHandler.TopPlayers)
				r.Get("/suggestions", skillHandler.Suggestions)
			})

			// Injury triage
			r.Route("/injuries", func(r chi.Router) {
				r.Post("/", injuryHandler.Upload)
				r.Get("/", injuryHandler.List)
				r.Get("/{id}", injuryHandler.Get)
				r.Delete("/{id}", injuryHandler.Delete)
			})
		})
	})

	return r
}
