package studyplan

import (
	"fmt"
	"strings"
	"time"

	"github.com/ashureev/college-portal/internal/domain"
)

// DefaultHoursPerDay is used when a request does not specify daily hours.
const DefaultHoursPerDay = 2

// Planner turns a course and exam date into a StudyPlan using its clock.
type Planner struct {
	now func() time.Time
}

// NewPlanner creates a Planner. A nil clock defaults to time.Now.
func NewPlanner(now func() time.Time) *Planner {
	if now == nil {
		now = time.Now
	}
	return &Planner{now: now}
}

// Today returns the planner's current date.
func (p *Planner) Today() time.Time {
	return p.now()
}

// ParseExamDate parses a YYYY-MM-DD exam date.
func ParseExamDate(s string) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse exam date %q: %w", s, err)
	}
	return d, nil
}

// Plan builds an unsaved StudyPlan for userID. The exam must fall strictly
// after today.
func (p *Planner) Plan(userID int64, course string, examDate time.Time, hoursPerDay int) (*domain.StudyPlan, error) {
	if hoursPerDay <= 0 {
		hoursPerDay = DefaultHoursPerDay
	}

	today := p.now()
	days := domain.DaysBetween(today, examDate)
	if days <= 0 {
		return nil, ErrExamNotInFuture
	}

	entries, err := Generate(course, days, hoursPerDay, today)
	if err != nil {
		return nil, err
	}

	return &domain.StudyPlan{
		UserID:      userID,
		CourseName:  course,
		ExamDate:    examDate,
		HoursPerDay: hoursPerDay,
		Days:        entries,
		CreatedAt:   today,
	}, nil
}
