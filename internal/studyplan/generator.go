// Package studyplan builds phased day-by-day study schedules leading up to an exam.
package studyplan

import (
	"errors"
	"fmt"
	"time"

	"github.com/ashureev/college-portal/internal/domain"
)

// ErrInvalidDays is returned when a plan is requested for a non-positive number of days.
var ErrInvalidDays = errors.New("total days must be positive")

// ErrExamNotInFuture is returned when the exam date is today or earlier.
var ErrExamNotInFuture = errors.New("exam date must be in the future")

var (
	practiceTasks = []string{
		"Solve practice problems",
		"Complete assignments",
		"Take mock tests",
		"Review previous topics",
	}
	revisionTasks = []string{
		"Quick revision of all topics",
		"Review notes and formulas",
		"Solve previous year papers",
		"Final preparation",
	}
)

func learningTasks(course string) []string {
	return []string{
		fmt.Sprintf("Study %s fundamentals", course),
		"Read textbook chapters",
		"Watch video lectures",
		"Take notes on key concepts",
	}
}

// Generate partitions totalDays into Learning, Practice and Revision phases.
// Learning and Practice each get totalDays/3 days; Revision absorbs the
// remainder. Day N is dated today+(N-1).
func Generate(course string, totalDays, hoursPerDay int, today time.Time) ([]domain.PlanDay, error) {
	if totalDays <= 0 {
		return nil, ErrInvalidDays
	}

	learning := totalDays / 3
	practice := totalDays / 3
	revision := totalDays - learning - practice

	phases := []struct {
		phase domain.Phase
		days  int
		tasks []string
	}{
		{domain.PhaseLearning, learning, learningTasks(course)},
		{domain.PhasePractice, practice, practiceTasks},
		{domain.PhaseRevision, revision, revisionTasks},
	}

	plan := make([]domain.PlanDay, 0, totalDays)
	offset := 0
	for _, p := range phases {
		for i := 0; i < p.days; i++ {
			plan = append(plan, domain.PlanDay{
				Day:   offset + 1,
				Date:  today.AddDate(0, 0, offset).Format(domain.DateLayout),
				Phase: p.phase,
				Tasks: append([]string(nil), p.tasks...),
				Hours: hoursPerDay,
			})
			offset++
		}
	}
	return plan, nil
}
