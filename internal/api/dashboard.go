package api

import (
	"log/slog"
	"net/http"

	"github.com/ashureev/college-portal/internal/domain"
)

const (
	dashboardNotices = 5
	dashboardPlans   = 3
)

// Dashboard handles GET /api/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	profile, err := h.repo.GetStudentProfile(ctx, user.ID)
	if err != nil {
		slog.Error("Failed to load profile", "user_id", user.ID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	notices, err := h.repo.ListNotices(ctx, dashboardNotices)
	if err != nil {
		slog.Error("Failed to load notices", "error", err)
		Error(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	plans, err := h.repo.ListStudyPlansByUser(ctx, user.ID, dashboardPlans)
	if err != nil {
		slog.Error("Failed to load study plans", "user_id", user.ID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	resp := map[string]any{
		"user":             user,
		"profile":          profile,
		"upcoming_notices": nonNil(notices),
		"recent_plans":     nonNil(plans),
		"next_exam":        nil,
		"days_until_exam":  nil,
	}
	if len(plans) > 0 {
		next := plans[0]
		resp["next_exam"] = next
		resp["days_until_exam"] = next.DaysUntilExam(h.planner.Today())
	}
	JSON(w, http.StatusOK, resp)
}

// Attendance handles GET /api/attendance.
func (h *Handler) Attendance(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	profile, err := h.repo.GetStudentProfile(r.Context(), user.ID)
	if err != nil {
		slog.Error("Failed to load profile", "user_id", user.ID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load attendance")
		return
	}
	JSON(w, http.StatusOK, domain.Attendance(profile))
}

// nonNil renders empty listings as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
