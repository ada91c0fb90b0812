package domain

import "time"

// QueryRecord is a persisted assistant interaction. Records are never mutated.
type QueryRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Intent    string    `json:"intent"`
	CreatedAt time.Time `json:"created_at"`
}
