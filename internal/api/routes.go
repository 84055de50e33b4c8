package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/health", h.Health)
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(h.tokens))

			r.Get("/auth/me", h.Me)

			r.Post("/assist/parse", h.AssistParse)
			r.Get("/assist/config", h.AssistConfig)

			r.Post("/feedback/record", h.RecordFeedback)
			r.Post("/feedback/submit", h.SubmitFeedback)

			r.Route("/timesheet", func(r chi.Router) {
				r.Get("/entries", h.ListEntries)
				r.Post("/entries", h.CreateEntry)
				r.Post("/entries/batch-submit", h.BatchSubmitEntries)
				r.Get("/entries/{id}", h.GetEntry)
				r.Put("/entries/{id}", h.UpdateEntry)
				r.Delete("/entries/{id}", h.DeleteEntry)
				r.Post("/entries/{id}/submit", h.SubmitEntry)
				r.Get("/stats", h.TimesheetStats)
				r.Get("/team-entries", h.TeamEntries)
			})

			r.Get("/templates", h.ListTemplates)
			r.Get("/templates/{center}", h.TemplateByCenter)
			r.Get("/my-template", h.MyTemplate)

			// Administrator routes
			r.Group(func(r chi.Router) {
				r.Use(AdminOnly)
				r.Get("/feedback/statistics", h.FeedbackStatistics)
				r.Get("/feedback/recent", h.RecentFeedback)
				r.Post("/templates", h.UpsertTemplate)
			})
		})
	})

	return r
}
