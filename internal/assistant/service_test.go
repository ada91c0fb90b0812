package assistant

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashureev/college-portal/internal/domain"
	"github.com/ashureev/college-portal/internal/store"
)

// failingQueries is a QueryStore whose writes always fail.
type failingQueries struct{}

func (failingQueries) SaveQuery(context.Context, *domain.QueryRecord) (int64, error) {
	return 0, errors.New("disk I/O error")
}

func (failingQueries) ListQueriesByUser(context.Context, int64, int) ([]*domain.QueryRecord, error) {
	return nil, errors.New("disk I/O error")
}

func (failingQueries) ListRecentQueries(context.Context, int) ([]*domain.QueryRecord, error) {
	return nil, errors.New("disk I/O error")
}

func (failingQueries) CountQueries(context.Context) (int, error) {
	return 0, errors.New("disk I/O error")
}

func newTestRepo(t *testing.T) store.Repository {
	t.Helper()
	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "assistant.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newTestUser(t *testing.T, repo store.Repository, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Email: username + "@college.test", PasswordHash: "x", Role: domain.RoleStudent}
	require.NoError(t, repo.CreateUser(context.Background(), user, &domain.StudentProfile{}))
	return user
}

func TestServiceAskRecordsExchange(t *testing.T) {
	repo := newTestRepo(t)
	user := newTestUser(t, repo, "alice")
	svc := NewService(NewGenerator(rand.New(rand.NewPCG(1, 2))), repo, nil)

	answer, err := svc.Ask(context.Background(), user.ID, "  explain normalization  ", ChannelHTTP)
	require.NoError(t, err)
	assert.Equal(t, Explanation(TopicNormalization), answer.Intent)
	assert.Equal(t, explanations[TopicNormalization], answer.Response)
	assert.NotZero(t, answer.RecordID)

	history, err := svc.History(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "explain normalization", history[0].Query)
	assert.Equal(t, answer.Response, history[0].Response)
	assert.Equal(t, "explanation:normalization", history[0].Intent)
}

func TestServiceAskRejectsEmpty(t *testing.T) {
	svc := NewService(nil, failingQueries{}, nil)
	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := svc.Ask(context.Background(), 1, q, ChannelHTTP)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
}

func TestServiceAskKeepsResponseWhenSaveFails(t *testing.T) {
	svc := NewService(nil, failingQueries{}, nil)

	answer, err := svc.Ask(context.Background(), 1, "xyz123", ChannelHTTP)
	require.NoError(t, err)
	assert.Equal(t, KindDefault, answer.Intent.Kind)
	assert.Contains(t, answer.Response, "xyz123")
	assert.Zero(t, answer.RecordID)
}

func TestServiceHistoryIsPerUserAndBounded(t *testing.T) {
	repo := newTestRepo(t)
	alice := newTestUser(t, repo, "alice")
	bob := newTestUser(t, repo, "bob")
	svc := NewService(nil, repo, nil)

	ctx := context.Background()
	for i := 0; i < HistoryLimit+3; i++ {
		_, err := svc.Ask(ctx, alice.ID, "hello", ChannelHTTP)
		require.NoError(t, err)
	}
	_, err := svc.Ask(ctx, bob.ID, "exam tips", ChannelWebSocket)
	require.NoError(t, err)

	history, err := svc.History(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, history, HistoryLimit)
	for _, rec := range history {
		assert.Equal(t, alice.ID, rec.UserID)
	}

	history, err = svc.History(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "exam_prep", history[0].Intent)
}
