package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ashureev/college-portal/internal/identity"
	"github.com/ashureev/college-portal/internal/store"
	"github.com/ashureev/college-portal/internal/studyplan"
	"github.com/ashureev/college-portal/internal/validation"
)

type createPlanRequest struct {
	CourseName  string `json:"course_name" validate:"required,notblank,max=200"`
	ExamDate    string `json:"exam_date" validate:"required,datetime=2006-01-02"`
	HoursPerDay int    `json:"hours_per_day" validate:"omitempty,min=1,max=24"`
}

type updatePlanRequest struct {
	IsCompleted *bool `json:"is_completed" validate:"required"`
}

// CreateStudyPlan handles POST /api/study-plans.
func (h *Handler) CreateStudyPlan(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var req createPlanRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	examDate, err := studyplan.ParseExamDate(req.ExamDate)
	if err != nil {
		ValidationError(w, validation.NewError("exam_date", "exam_date must be a date in YYYY-MM-DD format"))
		return
	}

	plan, err := h.planner.Plan(userID, strings.TrimSpace(req.CourseName), examDate, req.HoursPerDay)
	if errors.Is(err, studyplan.ErrExamNotInFuture) || errors.Is(err, studyplan.ErrInvalidDays) {
		ValidationError(w, validation.NewError("exam_date", "Exam date must be in the future!"))
		return
	}
	if err != nil {
		slog.Error("Failed to build study plan", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to create study plan")
		return
	}

	id, err := h.repo.SaveStudyPlan(r.Context(), plan)
	if err != nil {
		slog.Error("Failed to save study plan", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to create study plan")
		return
	}
	plan.ID = id

	slog.Info("Study plan created", "user_id", userID, "plan_id", id, "days", len(plan.Days))
	JSON(w, http.StatusCreated, map[string]any{
		"message":    "Study plan created successfully!",
		"study_plan": plan,
	})
}

// ListStudyPlans handles GET /api/study-plans.
func (h *Handler) ListStudyPlans(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	plans, err := h.repo.ListStudyPlansByUser(r.Context(), userID, 0)
	if err != nil {
		slog.Error("Failed to list study plans", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to list study plans")
		return
	}
	JSON(w, http.StatusOK, map[string]any{"study_plans": nonNil(plans)})
}

// UpdateStudyPlan handles PATCH /api/study-plans/{id}.
func (h *Handler) UpdateStudyPlan(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updatePlanRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	err := h.repo.SetStudyPlanCompleted(r.Context(), id, userID, *req.IsCompleted)
	if errors.Is(err, store.ErrNotFound) {
		Error(w, http.StatusNotFound, "study plan not found")
		return
	}
	if err != nil {
		slog.Error("Failed to update study plan", "user_id", userID, "plan_id", id, "error", err)
		Error(w, http.StatusInternalServerError, "failed to update study plan")
		return
	}

	plan, err := h.repo.GetStudyPlan(r.Context(), id)
	if err != nil || plan == nil {
		Error(w, http.StatusInternalServerError, "failed to load study plan")
		return
	}
	JSON(w, http.StatusOK, map[string]any{"study_plan": plan})
}

// pathID parses the {id} URL parameter. On failure it writes a 400 response.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		Error(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
