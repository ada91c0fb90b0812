package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ashureev/college-portal/internal/domain"
)

const planColumns = `id, user_id, course_name, exam_date, hours_per_day, plan_data, created_at, is_completed`

func scanPlan(row interface{ Scan(...any) error }) (*domain.StudyPlan, error) {
	var p domain.StudyPlan
	var examDate, planData string
	var createdAt int64

	if err := row.Scan(&p.ID, &p.UserID, &p.CourseName, &examDate, &p.HoursPerDay, &planData, &createdAt, &p.IsCompleted); err != nil {
		return nil, err
	}

	exam, err := time.Parse(domain.DateLayout, examDate)
	if err != nil {
		return nil, fmt.Errorf("parse exam date: %w", err)
	}
	p.ExamDate = exam
	p.CreatedAt = time.Unix(createdAt, 0)

	if err := json.Unmarshal([]byte(planData), &p.Days); err != nil {
		return nil, fmt.Errorf("decode plan data: %w", err)
	}
	return &p, nil
}

// SaveStudyPlan stores a plan and its day entries as a JSON blob.
func (s *SQLiteStore) SaveStudyPlan(ctx context.Context, plan *domain.StudyPlan) (int64, error) {
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}
	data, err := json.Marshal(plan.Days)
	if err != nil {
		return 0, fmt.Errorf("encode plan data: %w", err)
	}

	id, err := s.insert(ctx, "save study plan", `
		INSERT INTO study_plans (user_id, course_name, exam_date, hours_per_day, plan_data, created_at, is_completed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		plan.UserID, plan.CourseName, plan.ExamDateString(), plan.HoursPerDay, string(data),
		plan.CreatedAt.Unix(), boolInt(plan.IsCompleted),
	)
	if err != nil {
		return 0, err
	}
	plan.ID = id
	return id, nil
}

// ListStudyPlansByUser returns a user's plans, newest first.
func (s *SQLiteStore) ListStudyPlansByUser(ctx context.Context, userID int64, limit int) ([]*domain.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, userID, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("query study plans: %w", err)
	}
	defer closeRows(rows, "study_plans")

	var plans []*domain.StudyPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan study plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate study plans: %w", err)
	}
	return plans, nil
}

// GetStudyPlan retrieves a plan by ID.
func (s *SQLiteStore) GetStudyPlan(ctx context.Context, id int64) (*domain.StudyPlan, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM study_plans WHERE id = ?`, id)
	p, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan study plan: %w", err)
	}
	return p, nil
}

// SetStudyPlanCompleted marks a plan owned by userID as completed or not.
func (s *SQLiteStore) SetStudyPlanCompleted(ctx context.Context, id, userID int64, completed bool) error {
	rows, err := s.exec(ctx, "update study plan",
		`UPDATE study_plans SET is_completed = ? WHERE id = ? AND user_id = ?`,
		boolInt(completed), id, userID,
	)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("update study plan %d: %w", id, ErrNotFound)
	}
	return nil
}
