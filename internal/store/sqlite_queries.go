package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ashureev/college-portal/internal/domain"
)

// SaveQuery records an assistant interaction.
func (s *SQLiteStore) SaveQuery(ctx context.Context, record *domain.QueryRecord) (int64, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	id, err := s.insert(ctx, "save query",
		`INSERT INTO ai_queries (user_id, query, response, intent, created_at) VALUES (?, ?, ?, ?, ?)`,
		record.UserID, record.Query, record.Response, record.Intent, record.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, err
	}
	record.ID = id
	return id, nil
}

// ListQueriesByUser returns a user's records, newest first.
func (s *SQLiteStore) ListQueriesByUser(ctx context.Context, userID int64, limit int) ([]*domain.QueryRecord, error) {
	query := `
		SELECT q.id, q.user_id, u.username, q.query, q.response, q.intent, q.created_at
		FROM ai_queries q JOIN users u ON u.id = q.user_id
		WHERE q.user_id = ?
		ORDER BY q.created_at DESC, q.id DESC
		LIMIT ?`
	return s.listQueries(ctx, query, userID, limitArg(limit))
}

// ListRecentQueries returns records across all users, newest first.
func (s *SQLiteStore) ListRecentQueries(ctx context.Context, limit int) ([]*domain.QueryRecord, error) {
	query := `
		SELECT q.id, q.user_id, u.username, q.query, q.response, q.intent, q.created_at
		FROM ai_queries q JOIN users u ON u.id = q.user_id
		ORDER BY q.created_at DESC, q.id DESC
		LIMIT ?`
	return s.listQueries(ctx, query, limitArg(limit))
}

// CountQueries returns the total number of recorded interactions.
func (s *SQLiteStore) CountQueries(ctx context.Context) (int, error) {
	return s.count(ctx, "count queries", `SELECT COUNT(*) FROM ai_queries`)
}

func (s *SQLiteStore) listQueries(ctx context.Context, query string, args ...any) ([]*domain.QueryRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ai_queries: %w", err)
	}
	defer closeRows(rows, "ai_queries")

	var records []*domain.QueryRecord
	for rows.Next() {
		var r domain.QueryRecord
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.UserID, &r.Username, &r.Query, &r.Response, &r.Intent, &createdAt); err != nil {
			return nil, fmt.Errorf("scan query record: %w", err)
		}
		r.CreatedAt = time.Unix(createdAt, 0)
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate query records: %w", err)
	}
	return records, nil
}

// limitArg maps a non-positive limit to SQLite's "no limit".
func limitArg(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
