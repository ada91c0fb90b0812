package store

import (
	"context"
	"time"
)

// RevokeToken records a token ID as revoked until expiresAt.
func (s *SQLiteStore) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	_, err := s.exec(ctx, "revoke token", `
		INSERT INTO revoked_tokens (token_id, expires_at) VALUES (?, ?)
		ON CONFLICT(token_id) DO UPDATE SET expires_at = excluded.expires_at`,
		tokenID, expiresAt.Unix(),
	)
	return err
}

// IsTokenRevoked reports whether a token ID has been revoked.
func (s *SQLiteStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.count(ctx, "check revoked token", `SELECT COUNT(*) FROM revoked_tokens WHERE token_id = ?`, tokenID)
	return n > 0, err
}

// PurgeExpiredRevocations removes revocations that expired before now.
func (s *SQLiteStore) PurgeExpiredRevocations(ctx context.Context, now time.Time) (int64, error) {
	return s.exec(ctx, "purge revoked tokens", `DELETE FROM revoked_tokens WHERE expires_at < ?`, now.Unix())
}
