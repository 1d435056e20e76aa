package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/photodrive/photodrive/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	uploadHandler := handlers.NewUploadHandler(s.config, s.store)
	sessionsHandler := handlers.NewSessionsHandler(s.config, s.store)
	verifyHandler := handlers.NewVerifyHandler(s.faces)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/upload", uploadHandler.Upload)
		r.Get("/sessions", sessionsHandler.List)
		r.Post("/verify", verifyHandler.Verify)
	})

	// Upload form
	s.router.Get("/", handlers.Index(s.config))
}
