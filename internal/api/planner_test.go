package api

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashureev/college-portal/internal/domain"
)

func TestCreateStudyPlan(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAccount(t, "isha", domain.RoleStudent, 70)

	rr := env.do(t, http.MethodPost, "/api/study-plans", token, map[string]any{
		"course_name":   "DBMS",
		"exam_date":     "2026-03-11",
		"hours_per_day": 3,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	plan := decode(t, rr)["study_plan"].(map[string]any)
	assert.Equal(t, "DBMS", plan["course_name"])
	assert.Equal(t, "2026-03-11", plan["exam_date"])
	days := plan["plan_data"].([]any)
	require.Len(t, days, 10)

	phases := map[string]int{}
	for _, d := range days {
		day := d.(map[string]any)
		phases[day["phase"].(string)]++
		assert.EqualValues(t, 3, day["hours"])
	}
	assert.Equal(t, map[string]int{"Learning": 3, "Practice": 3, "Revision": 4}, phases)
	assert.Equal(t, "2026-03-01", days[0].(map[string]any)["date"])
}

func TestCreateStudyPlanDefaultsAndRejections(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAccount(t, "isha", domain.RoleStudent, 70)

	rr := env.do(t, http.MethodPost, "/api/study-plans", token, map[string]any{
		"course_name": "Operating Systems",
		"exam_date":   "2026-03-02",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	plan := decode(t, rr)["study_plan"].(map[string]any)
	assert.EqualValues(t, 2, plan["hours_per_day"])
	days := plan["plan_data"].([]any)
	require.Len(t, days, 1)
	assert.Equal(t, "Revision", days[0].(map[string]any)["phase"])

	tests := []struct {
		name      string
		body      map[string]any
		wantError string
		wantField string
	}{
		{"today", map[string]any{"course_name": "DBMS", "exam_date": "2026-03-01"}, "Exam date must be in the future!", "exam_date"},
		{"past", map[string]any{"course_name": "DBMS", "exam_date": "2025-12-01"}, "Exam date must be in the future!", "exam_date"},
		{"bad format", map[string]any{"course_name": "DBMS", "exam_date": "11/03/2026"}, "validation failed", "exam_date"},
		{"blank course", map[string]any{"course_name": "  ", "exam_date": "2026-03-11"}, "validation failed", "course_name"},
		{"hours out of range", map[string]any{"course_name": "DBMS", "exam_date": "2026-03-11", "hours_per_day": 30}, "validation failed", "hours_per_day"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/api/study-plans", token, tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			body := decode(t, rr)
			assert.Equal(t, tt.wantError, body["error"])
			assert.Contains(t, body["fields"], tt.wantField)
		})
	}
}

func TestListAndUpdateStudyPlans(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.createAccount(t, "alice", domain.RoleStudent, 70)
	_, bob := env.createAccount(t, "bob", domain.RoleStudent, 70)

	var ids []int64
	for _, course := range []string{"DBMS", "Networks"} {
		rr := env.do(t, http.MethodPost, "/api/study-plans", alice, map[string]any{"course_name": course, "exam_date": "2026-03-20"})
		require.Equal(t, http.StatusCreated, rr.Code)
		ids = append(ids, int64(decode(t, rr)["study_plan"].(map[string]any)["id"].(float64)))
	}

	rr := env.do(t, http.MethodGet, "/api/study-plans", alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	plans := decode(t, rr)["study_plans"].([]any)
	require.Len(t, plans, 2)
	assert.Equal(t, "Networks", plans[0].(map[string]any)["course_name"])

	rr = env.do(t, http.MethodGet, "/api/study-plans", bob, nil)
	assert.Empty(t, decode(t, rr)["study_plans"])

	path := "/api/study-plans/" + strconv.FormatInt(ids[0], 10)
	rr = env.do(t, http.MethodPatch, path, bob, map[string]any{"is_completed": true})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodPatch, path, alice, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPatch, path, alice, map[string]any{"is_completed": true})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decode(t, rr)["study_plan"].(map[string]any)["is_completed"])

	rr = env.do(t, http.MethodPatch, "/api/study-plans/abc", alice, map[string]any{"is_completed": true})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDashboardAndAttendance(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAccount(t, "nina", domain.RoleStudent, 70)

	rr := env.do(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Nil(t, body["next_exam"])
	assert.Nil(t, body["days_until_exam"])
	assert.Equal(t, []any{}, body["recent_plans"])

	rr = env.do(t, http.MethodPost, "/api/study-plans", token, map[string]any{"course_name": "DSA", "exam_date": "2026-03-11"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body = decode(t, rr)
	assert.EqualValues(t, 10, body["days_until_exam"])
	assert.Equal(t, "DSA", body["next_exam"].(map[string]any)["course_name"])

	rr = env.do(t, http.MethodGet, "/api/attendance", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	att := decode(t, rr)
	assert.Equal(t, false, att["is_eligible"])
	assert.EqualValues(t, 70, att["attended_classes"])
	assert.EqualValues(t, 5, att["classes_needed"])
	assert.EqualValues(t, 0, att["can_miss"])
}
