package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashureev/college-portal/internal/ratelimit"
)

func dialAssistant(t *testing.T, h *WebSocketHandler, userID int64) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, withUser(r, userID))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg wsMessage) wsMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	require.NoError(t, conn.Write(ctx, websocket.MessageText, data))

	_, reply, err := conn.Read(ctx)
	require.NoError(t, err)
	var got wsMessage
	require.NoError(t, json.Unmarshal(reply, &got))
	return got
}

func TestWebSocketQuery(t *testing.T) {
	repo := newTestRepo(t)
	user := newTestUser(t, repo, "alice")
	h := NewWebSocketHandler(NewService(nil, repo, nil), nil, []string{"*"}, true)
	conn := dialAssistant(t, h, user.ID)

	got := roundTrip(t, conn, wsMessage{Type: "query", Content: "explain sql"})
	assert.Equal(t, "response", got.Type)
	assert.Equal(t, explanations[TopicSQL], got.Content)
	assert.NotZero(t, got.QueryID)

	got = roundTrip(t, conn, wsMessage{Type: "query", Content: "  "})
	assert.Equal(t, "error", got.Type)
	assert.Equal(t, "Query cannot be empty", got.Content)

	got = roundTrip(t, conn, wsMessage{Type: "ping"})
	assert.Equal(t, "pong", got.Type)

	got = roundTrip(t, conn, wsMessage{Type: "resize"})
	assert.Equal(t, "error", got.Type)
}

func TestWebSocketRateLimit(t *testing.T) {
	limiter := ratelimit.NewMemory(1, time.Minute)
	defer limiter.Close()
	h := NewWebSocketHandler(NewService(nil, failingQueries{}, nil), limiter, []string{"*"}, true)
	conn := dialAssistant(t, h, 11)

	got := roundTrip(t, conn, wsMessage{Type: "query", Content: "hello"})
	assert.Equal(t, "response", got.Type)
	assert.Zero(t, got.QueryID)

	got = roundTrip(t, conn, wsMessage{Type: "query", Content: "hello"})
	assert.Equal(t, "error", got.Type)
	assert.Equal(t, "rate limit exceeded", got.Content)
}

func TestWebSocketRejectsAnonymous(t *testing.T) {
	h := NewWebSocketHandler(NewService(nil, failingQueries{}, nil), nil, []string{"*"}, true)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ws/assistant", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestWebSocketOriginCheck(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"no origin header", []string{"https://portal.example.edu"}, "", true},
		{"single allowed", []string{"https://portal.example.edu"}, "https://portal.example.edu", true},
		{"rejected", []string{"https://portal.example.edu"}, "https://evil.example.com", false},
		{"second of several", []string{"https://portal.example.edu", "https://staff.example.edu"}, "https://staff.example.edu", true},
		{"wildcard", []string{"*"}, "https://anything.example.com", true},
		{"none configured", nil, "https://portal.example.edu", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewWebSocketHandler(nil, nil, tt.allowed, false)
			req := httptest.NewRequest(http.MethodGet, "/ws/assistant", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, h.checkOrigin(req))
		})
	}
}
