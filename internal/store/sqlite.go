package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ashureev/college-portal/internal/shared"
	_ "modernc.org/sqlite"
)

const (
	writeRetries   = 3
	writeBaseDelay = 50 * time.Millisecond
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'student',
		phone TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);

	CREATE TABLE IF NOT EXISTS student_profiles (
		user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		enrollment_number TEXT UNIQUE,
		semester INTEGER NOT NULL DEFAULT 1,
		branch TEXT,
		attendance_percentage REAL NOT NULL DEFAULT 0,
		assignments_completed INTEGER NOT NULL DEFAULT 0,
		assignments_pending INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS ai_queries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		query TEXT NOT NULL,
		response TEXT NOT NULL,
		intent TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_ai_queries_user ON ai_queries(user_id, created_at);

	CREATE TABLE IF NOT EXISTS study_plans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		course_name TEXT NOT NULL,
		exam_date TEXT NOT NULL,
		hours_per_day INTEGER NOT NULL,
		plan_data TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		is_completed INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_study_plans_user ON study_plans(user_id, created_at);

	CREATE TABLE IF NOT EXISTS subjects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		code TEXT NOT NULL UNIQUE,
		semester INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		subject_id INTEGER NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		file_name TEXT NOT NULL,
		original_name TEXT NOT NULL,
		description TEXT,
		uploaded_by INTEGER NOT NULL REFERENCES users(id),
		uploaded_at INTEGER NOT NULL,
		download_count INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_notes_subject ON notes(subject_id);

	CREATE TABLE IF NOT EXISTS notices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		file_name TEXT,
		original_name TEXT,
		posted_by INTEGER NOT NULL REFERENCES users(id),
		posted_at INTEGER NOT NULL,
		is_important INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS placement_roadmaps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		career_path TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		skills TEXT NOT NULL,
		tools TEXT NOT NULL,
		learning_order TEXT NOT NULL,
		estimated_duration TEXT NOT NULL DEFAULT '6-12 months'
	);

	CREATE TABLE IF NOT EXISTS revoked_tokens (
		token_id TEXT PRIMARY KEY,
		expires_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_revoked_tokens_expiry ON revoked_tokens(expires_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// insert runs an INSERT with busy retries and returns the new row ID.
// Unique constraint violations are reported as ErrConflict.
func (s *SQLiteStore) insert(ctx context.Context, op, query string, args ...any) (int64, error) {
	var id int64
	err := shared.RetryOnConflict(ctx, writeRetries, writeBaseDelay, op, func() error {
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if shared.IsSQLiteUniqueError(err) {
		return 0, fmt.Errorf("%s: %w", op, ErrConflict)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// exec runs a write statement with busy retries and returns the affected row count.
func (s *SQLiteStore) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	var rows int64
	err := shared.RetryOnConflict(ctx, writeRetries, writeBaseDelay, op, func() error {
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		rows, err = res.RowsAffected()
		return err
	})
	if shared.IsSQLiteUniqueError(err) {
		return 0, fmt.Errorf("%s: %w", op, ErrConflict)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

func (s *SQLiteStore) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func closeRows(rows *sql.Rows, what string) {
	if err := rows.Close(); err != nil {
		slog.Warn("failed to close rows", "query", what, "error", err)
	}
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
