// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rumiadrian30/techdivulga/cmd/techdivulga-api/handlers"
	"github.com/rumiadrian30/techdivulga/cmd/techdivulga-api/middleware"
	"github.com/rumiadrian30/techdivulga/internal/app"
	"github.com/rumiadrian30/techdivulga/internal/observability"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, a *app.App) http.Handler {
	cfg := a.Config
	if cfg.Server.MaxBodyBytes > 0 {
		handlers.MaxBodyBytes = cfg.Server.MaxBodyBytes
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))

	var db handlers.Pinger
	if a.DB != nil {
		db = a.DB
	}
	healthHandler := handlers.NewHealthHandler(logger, cfg.Observability.ServiceName, db)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	filesHandler := handlers.NewFilesHandler(logger, a.Files, a.Index)
	chatHandler := handlers.NewChatHandler(logger, a.Chat)
	limiter := middleware.NewRateLimiter(cfg.Chat.RateLimitPerSecond, cfg.Chat.RateLimitBurst, cfg.Chat.SessionTTL)

	if a.Content != nil {
		contentHandler := handlers.NewContentHandler(logger, a.Content)

		// Generic table API used by the site pages
		r.Route("/tables/{resource}", func(r chi.Router) {
			r.Get("/", contentHandler.List)
			r.Post("/", contentHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", contentHandler.Get)
				r.Put("/", contentHandler.Update)
				r.Patch("/", contentHandler.Patch)
				r.Delete("/", contentHandler.Delete)
			})
		})

		r.Route("/api/content", func(r chi.Router) {
			r.Get("/search", contentHandler.Search)
			r.Get("/featured", contentHandler.Featured)
			r.Get("/stats", contentHandler.Stats)
			r.Get("/{resource}/{id}/comments", contentHandler.Comments)
			r.Post("/{resource}/{id}/comments", contentHandler.AddComment)
		})
		r.Post("/api/newsletter", contentHandler.Subscribe)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/files", filesHandler.List)
		r.Post("/process-pdf", filesHandler.ProcessPDF)
		r.Get("/read-text/{filename}", filesHandler.ReadText)
		r.Get("/load-all-documents", filesHandler.LoadAll)
		r.Get("/search-documents", filesHandler.Search)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Post("/classify", chatHandler.Classify)
			r.Route("/chat/sessions", func(r chi.Router) {
				r.Post("/", chatHandler.CreateSession)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", chatHandler.GetSession)
					r.Delete("/", chatHandler.Clear)
					r.Post("/messages", chatHandler.Ask)
					r.Post("/feedback", chatHandler.Feedback)
				})
			})
		})
		r.Get("/chat/analyses", chatHandler.Analyses)
	})

	r.Handle("/data/*", filesHandler.Static())

	return r
}
