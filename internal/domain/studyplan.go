package domain

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar date format used for exam dates and plan days.
const DateLayout = "2006-01-02"

// Phase is a contiguous stage of a study plan.
type Phase string

const (
	PhaseLearning Phase = "Learning"
	PhasePractice Phase = "Practice"
	PhaseRevision Phase = "Revision"
)

// PlanDay is one day of a generated study plan.
type PlanDay struct {
	Day   int      `json:"day"`
	Date  string   `json:"date"`
	Phase Phase    `json:"phase"`
	Tasks []string `json:"tasks"`
	Hours int      `json:"hours"`
}

// StudyPlan is a generated plan owned by a user. Days are stored verbatim
// and never recomputed.
type StudyPlan struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CourseName  string    `json:"course_name"`
	ExamDate    time.Time `json:"-"`
	HoursPerDay int       `json:"hours_per_day"`
	Days        []PlanDay `json:"plan_data"`
	CreatedAt   time.Time `json:"created_at"`
	IsCompleted bool      `json:"is_completed"`
}

// ExamDateString returns the exam date in DateLayout.
func (p *StudyPlan) ExamDateString() string {
	return p.ExamDate.Format(DateLayout)
}

// MarshalJSON renders the exam date as a calendar date.
func (p StudyPlan) MarshalJSON() ([]byte, error) {
	type plan StudyPlan
	return json.Marshal(struct {
		plan
		ExamDate string `json:"exam_date"`
	}{plan: plan(p), ExamDate: p.ExamDateString()})
}

// DaysUntilExam returns the number of calendar days from today to the exam.
func (p *StudyPlan) DaysUntilExam(today time.Time) int {
	return DaysBetween(today, p.ExamDate)
}

// DaysBetween returns the number of whole calendar days from a to b,
// ignoring the time of day.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
