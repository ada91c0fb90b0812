// Package domain contains core domain types for the college portal.
package domain

import (
	"time"
)

// Role is the access level of a portal account.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// User represents a portal account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin returns true if the user may manage portal content.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStudent returns true for student accounts.
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// StudentProfile holds academic details for a student account.
type StudentProfile struct {
	UserID               int64   `json:"user_id"`
	EnrollmentNumber     string  `json:"enrollment_number,omitempty"`
	Semester             int     `json:"semester"`
	Branch               string  `json:"branch,omitempty"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	AssignmentsCompleted int     `json:"assignments_completed"`
	AssignmentsPending   int     `json:"assignments_pending"`
}
