package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ashureev/college-portal/internal/domain"
	"github.com/ashureev/college-portal/internal/store"
)

// ErrEmptyQuery is returned for empty or whitespace-only queries.
var ErrEmptyQuery = errors.New("query cannot be empty")

// HistoryLimit is how many past records a user sees.
const HistoryLimit = 10

// Delivery channels recorded in transcripts.
const (
	ChannelHTTP      = "http"
	ChannelWebSocket = "websocket"
)

// Answer is the outcome of one query. RecordID is zero when the exchange
// could not be persisted.
type Answer struct {
	Intent   Intent
	Response string
	RecordID int64
}

// Service answers queries and records each exchange.
type Service struct {
	gen        *Generator
	queries    store.QueryStore
	transcript Transcript
	now        func() time.Time
}

// NewService creates a Service. A nil generator uses the process-wide random
// source and a nil transcript disables transcript logging.
func NewService(gen *Generator, queries store.QueryStore, transcript Transcript) *Service {
	if gen == nil {
		gen = NewGenerator(nil)
	}
	if transcript == nil {
		transcript = noopTranscript{}
	}
	return &Service{
		gen:        gen,
		queries:    queries,
		transcript: transcript,
		now:        time.Now,
	}
}

// Ask classifies text, generates a response and stores the exchange for
// userID. A storage failure is logged and the response is still returned.
func (s *Service) Ask(ctx context.Context, userID int64, text, channel string) (*Answer, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	intent, response := s.gen.Respond(query)
	answer := &Answer{Intent: intent, Response: response}

	record := &domain.QueryRecord{
		UserID:    userID,
		Query:     query,
		Response:  response,
		Intent:    intent.String(),
		CreatedAt: s.now(),
	}
	id, err := s.queries.SaveQuery(ctx, record)
	if err != nil {
		slog.Error("Failed to save assistant query", "user_id", userID, "intent", intent.String(), "error", err)
	} else {
		answer.RecordID = id
	}

	s.transcript.Log(TranscriptEvent{
		Timestamp: record.CreatedAt.UTC().Format(time.RFC3339Nano),
		UserID:    userID,
		Channel:   channel,
		Query:     query,
		Response:  response,
		Intent:    record.Intent,
		QueryID:   answer.RecordID,
	})

	return answer, nil
}

// History returns the user's most recent exchanges, newest first.
func (s *Service) History(ctx context.Context, userID int64) ([]*domain.QueryRecord, error) {
	records, err := s.queries.ListQueriesByUser(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list history for user %d: %w", userID, err)
	}
	return records, nil
}

// Close flushes the transcript writer.
func (s *Service) Close() error {
	return s.transcript.Close()
}
