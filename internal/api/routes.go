package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ashureev/college-portal/internal/identity"
)

// RegisterRoutes registers the portal's REST routes. The router must already
// run identity.Middleware so handlers can see the caller.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/health", h.Health)

	r.Post("/api/auth/signup", h.Signup)
	r.Post("/api/auth/login", h.Login)
	r.Post("/api/auth/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(identity.RequireAuth)

		r.Get("/api/me", h.Me)
		r.Get("/api/dashboard", h.Dashboard)
		r.Get("/api/attendance", h.Attendance)

		r.Get("/api/study-plans", h.ListStudyPlans)
		r.Post("/api/study-plans", h.CreateStudyPlan)
		r.Patch("/api/study-plans/{id}", h.UpdateStudyPlan)

		r.Get("/api/subjects", h.ListSubjects)
		r.Get("/api/notes", h.ListNotes)
		r.Get("/api/notes/{id}/download", h.DownloadNote)
		r.Get("/api/notices", h.ListNotices)
		r.Get("/api/notices/{id}/download", h.DownloadNotice)
		r.Get("/api/placement/roadmaps", h.ListRoadmaps)
		r.Get("/api/placement/roadmaps/{career_path}", h.GetRoadmap)
	})

	r.Group(func(r chi.Router) {
		r.Use(identity.RequireAdmin)

		r.Get("/api/admin/stats", h.AdminStats)
		r.Post("/api/admin/notes", h.UploadNote)
		r.Post("/api/admin/notices", h.PostNotice)
	})
}
