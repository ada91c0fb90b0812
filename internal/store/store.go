// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/ashureev/college-portal/internal/domain"
)

// ErrConflict is returned when a write violates a uniqueness constraint.
var ErrConflict = errors.New("record already exists")

// ErrNotFound is returned by updates that match no row.
var ErrNotFound = errors.New("record not found")

// UserStore persists accounts and student profiles.
type UserStore interface {
	// CreateUser inserts a user and, when profile is non-nil, its student
	// profile in one transaction. It sets user.ID on success.
	CreateUser(ctx context.Context, user *domain.User, profile *domain.StudentProfile) error

	// GetUser retrieves a user by ID. Returns nil if none exists.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// GetUserByUsername retrieves a user by username. Returns nil if none exists.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email. Returns nil if none exists.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdatePassword replaces the stored password hash for a user.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// UpdateRole changes a user's role.
	UpdateRole(ctx context.Context, id int64, role domain.Role) error

	// GetStudentProfile returns the profile for a user, or nil.
	GetStudentProfile(ctx context.Context, userID int64) (*domain.StudentProfile, error)

	// CountUsersByRole returns how many accounts hold role.
	CountUsersByRole(ctx context.Context, role domain.Role) (int, error)
}

// QueryStore persists assistant interactions.
type QueryStore interface {
	// SaveQuery records an interaction and returns its ID.
	SaveQuery(ctx context.Context, record *domain.QueryRecord) (int64, error)

	// ListQueriesByUser returns a user's records, newest first.
	ListQueriesByUser(ctx context.Context, userID int64, limit int) ([]*domain.QueryRecord, error)

	// ListRecentQueries returns records across all users, newest first.
	ListRecentQueries(ctx context.Context, limit int) ([]*domain.QueryRecord, error)

	// CountQueries returns the total number of recorded interactions.
	CountQueries(ctx context.Context) (int, error)
}

// PlanStore persists generated study plans.
type PlanStore interface {
	// SaveStudyPlan stores a plan with its day entries and returns its ID.
	SaveStudyPlan(ctx context.Context, plan *domain.StudyPlan) (int64, error)

	// ListStudyPlansByUser returns a user's plans, newest first. A limit of
	// zero returns all plans.
	ListStudyPlansByUser(ctx context.Context, userID int64, limit int) ([]*domain.StudyPlan, error)

	// GetStudyPlan retrieves a plan by ID. Returns nil if none exists.
	GetStudyPlan(ctx context.Context, id int64) (*domain.StudyPlan, error)

	// SetStudyPlanCompleted marks a plan owned by userID as completed or not.
	SetStudyPlanCompleted(ctx context.Context, id, userID int64, completed bool) error
}

// CatalogStore persists subjects, notes, notices and placement roadmaps.
type CatalogStore interface {
	// UpsertSubject inserts or updates a subject keyed by code and sets its ID.
	UpsertSubject(ctx context.Context, subject *domain.Subject) error
	ListSubjects(ctx context.Context) ([]*domain.Subject, error)
	GetSubject(ctx context.Context, id int64) (*domain.Subject, error)
	GetSubjectByCode(ctx context.Context, code string) (*domain.Subject, error)

	// CreateNote inserts a note and sets its ID.
	CreateNote(ctx context.Context, note *domain.Note) error
	// ListNotes returns notes matching filter, newest first.
	ListNotes(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error)
	GetNote(ctx context.Context, id int64) (*domain.Note, error)
	// NoteExists reports whether a note with title exists for subjectID.
	NoteExists(ctx context.Context, title string, subjectID int64) (bool, error)
	// IncrementNoteDownloads bumps the download counter of a note.
	IncrementNoteDownloads(ctx context.Context, id int64) error
	CountNotes(ctx context.Context) (int, error)

	// CreateNotice inserts a notice and sets its ID.
	CreateNotice(ctx context.Context, notice *domain.Notice) error
	// ListNotices returns notices newest first. A limit of zero returns all.
	ListNotices(ctx context.Context, limit int) ([]*domain.Notice, error)
	GetNotice(ctx context.Context, id int64) (*domain.Notice, error)
	CountNotices(ctx context.Context) (int, error)

	// UpsertRoadmap inserts or updates a roadmap keyed by career path.
	UpsertRoadmap(ctx context.Context, roadmap *domain.PlacementRoadmap) error
	ListRoadmaps(ctx context.Context) ([]*domain.PlacementRoadmap, error)
	GetRoadmap(ctx context.Context, careerPath string) (*domain.PlacementRoadmap, error)
}

// TokenStore tracks revoked login tokens until they expire.
type TokenStore interface {
	// RevokeToken records a token ID as revoked until expiresAt.
	RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsTokenRevoked reports whether a token ID has been revoked.
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)

	// PurgeExpiredRevocations removes revocations that expired before now.
	PurgeExpiredRevocations(ctx context.Context, now time.Time) (int64, error)
}

// Repository is the full persistence gateway used by the server.
type Repository interface {
	UserStore
	QueryStore
	PlanStore
	CatalogStore
	TokenStore

	// Ping verifies database connectivity and returns an error if the database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
