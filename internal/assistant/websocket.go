package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"

	"github.com/ashureev/college-portal/internal/identity"
	"github.com/ashureev/college-portal/internal/ratelimit"
)

// WebSocketHandler serves the assistant over a WebSocket connection.
type WebSocketHandler struct {
	svc            *Service
	limiter        ratelimit.Limiter
	allowedOrigins []string
	isDev          bool
}

// NewWebSocketHandler creates a new WebSocket handler. allowedOrigins uses
// the same list as the CORS middleware; "*" admits any origin.
func NewWebSocketHandler(svc *Service, limiter ratelimit.Limiter, allowedOrigins []string, isDev bool) *WebSocketHandler {
	return &WebSocketHandler{
		svc:            svc,
		limiter:        limiter,
		allowedOrigins: allowedOrigins,
		isDev:          isDev,
	}
}

// wsMessage is the frame format in both directions.
type wsMessage struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	QueryID int64  `json:"query_id,omitempty"`
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == 0 {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "user_id", userID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "user_id", userID)
		}
	}()

	slog.Info("Assistant WebSocket connected", "user_id", userID, "ip", identity.IPFromRequest(r))
	h.readLoop(r.Context(), ws, userID)
	slog.Info("Assistant WebSocket closed", "user_id", userID)
}

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	slog.Warn("WebSocket origin rejected", "origin", origin, "allowed", h.allowedOrigins)
	return false
}

func (h *WebSocketHandler) readLoop(ctx context.Context, ws *websocket.Conn, userID int64) {
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("WebSocket closed by client", "user_id", userID)
			} else if ctx.Err() == nil {
				slog.Warn("WebSocket read error", "error", err, "user_id", userID)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.send(ctx, ws, wsMessage{Type: "error", Content: "invalid message"})
			continue
		}

		switch msg.Type {
		case "query":
			h.send(ctx, ws, h.answer(ctx, userID, msg.Content))
		case "ping":
			h.send(ctx, ws, wsMessage{Type: "pong"})
		default:
			h.send(ctx, ws, wsMessage{Type: "error", Content: "unknown message type"})
		}
	}
}

func (h *WebSocketHandler) answer(ctx context.Context, userID int64, text string) wsMessage {
	if h.limiter != nil {
		ok, err := h.limiter.Allow(ctx, strconv.FormatInt(userID, 10))
		if err != nil {
			slog.Warn("Rate limiter unavailable", "user_id", userID, "error", err)
		} else if !ok {
			return wsMessage{Type: "error", Content: "rate limit exceeded"}
		}
	}

	answer, err := h.svc.Ask(ctx, userID, text, ChannelWebSocket)
	if errors.Is(err, ErrEmptyQuery) {
		return wsMessage{Type: "error", Content: "Query cannot be empty"}
	}
	if err != nil {
		slog.Error("Assistant query failed", "user_id", userID, "error", err)
		return wsMessage{Type: "error", Content: "failed to process query"}
	}
	return wsMessage{Type: "response", Content: answer.Response, QueryID: answer.RecordID}
}

func (h *WebSocketHandler) send(ctx context.Context, ws *websocket.Conn, msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Warn("Failed to marshal WebSocket message", "error", err)
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := ws.Write(writeCtx, websocket.MessageText, data); err != nil {
		slog.Debug("WebSocket write error", "error", err)
	}
}
