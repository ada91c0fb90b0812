package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ashureev/college-portal/internal/domain"
	"github.com/ashureev/college-portal/internal/shared"
)

const userColumns = `id, username, email, password_hash, role, phone, created_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var user domain.User
	var role string
	var phone sql.NullString
	var createdAt int64

	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &role, &phone, &createdAt); err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	user.Phone = phone.String
	user.CreatedAt = time.Unix(createdAt, 0)
	return &user, nil
}

// CreateUser inserts a user and optional student profile in one transaction.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *domain.User, profile *domain.StudentProfile) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}

	err := shared.RetryOnConflict(ctx, writeRetries, writeBaseDelay, "create user", func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, email, password_hash, role, phone, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			user.Username, user.Email, user.PasswordHash, string(user.Role), nullString(user.Phone), user.CreatedAt.Unix(),
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		if profile != nil {
			if profile.Semester <= 0 {
				profile.Semester = 1
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO student_profiles (
					user_id, enrollment_number, semester, branch,
					attendance_percentage, assignments_completed, assignments_pending
				) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				id, nullString(profile.EnrollmentNumber), profile.Semester, nullString(profile.Branch),
				profile.AttendancePercentage, profile.AssignmentsCompleted, profile.AssignmentsPending,
			)
			if err != nil {
				return err
			}
			profile.UserID = id
		}

		if err := tx.Commit(); err != nil {
			return err
		}
		user.ID = id
		return nil
	})
	if shared.IsSQLiteUniqueError(err) {
		return fmt.Errorf("create user: %w", ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) getUserWhere(ctx context.Context, where string, arg any) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user row: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.getUserWhere(ctx, "id = ?", id)
}

// GetUserByUsername retrieves a user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getUserWhere(ctx, "username = ?", username)
}

// GetUserByEmail retrieves a user by email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUserWhere(ctx, "email = ?", email)
}

// UpdatePassword replaces the stored password hash.
func (s *SQLiteStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	rows, err := s.exec(ctx, "update password", `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("update password for user %d: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateRole changes a user's role.
func (s *SQLiteStore) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	rows, err := s.exec(ctx, "update role", `UPDATE users SET role = ? WHERE id = ?`, string(role), id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("update role for user %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetStudentProfile returns the profile for a user.
func (s *SQLiteStore) GetStudentProfile(ctx context.Context, userID int64) (*domain.StudentProfile, error) {
	query := `
		SELECT user_id, enrollment_number, semester, branch,
		       attendance_percentage, assignments_completed, assignments_pending
		FROM student_profiles WHERE user_id = ?`

	var p domain.StudentProfile
	var enrollment, branch sql.NullString
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &enrollment, &p.Semester, &branch,
		&p.AttendancePercentage, &p.AssignmentsCompleted, &p.AssignmentsPending,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan student profile: %w", err)
	}
	p.EnrollmentNumber = enrollment.String
	p.Branch = branch.String
	return &p, nil
}

// CountUsersByRole returns how many accounts hold role.
func (s *SQLiteStore) CountUsersByRole(ctx context.Context, role domain.Role) (int, error) {
	return s.count(ctx, "count users", `SELECT COUNT(*) FROM users WHERE role = ?`, string(role))
}
