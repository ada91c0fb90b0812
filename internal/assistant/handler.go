package assistant

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ashureev/college-portal/internal/api"
	"github.com/ashureev/college-portal/internal/domain"
	"github.com/ashureev/college-portal/internal/identity"
	"github.com/ashureev/college-portal/internal/ratelimit"
)

// maxQueryBodySize bounds the query request body.
const maxQueryBodySize = 64 << 10

// Handler serves the assistant's HTTP endpoints.
type Handler struct {
	svc     *Service
	limiter ratelimit.Limiter
}

// NewHandler creates a Handler. A nil limiter disables rate limiting.
func NewHandler(svc *Service, limiter ratelimit.Limiter) *Handler {
	return &Handler{svc: svc, limiter: limiter}
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	QueryID  int64  `json:"query_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

func fail(w http.ResponseWriter, status int, msg string) {
	api.JSON(w, status, queryResponse{Success: false, Error: msg})
}

// HandleQuery handles POST /api/assistant/query.
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == 0 {
		fail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if !h.allow(r, userID) {
		fail(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxQueryBodySize)
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	slog.Info("Assistant query",
		"user_id", userID,
		"request_id", chiMiddleware.GetReqID(r.Context()),
		"query_length", len(req.Query),
	)

	answer, err := h.svc.Ask(r.Context(), userID, req.Query, ChannelHTTP)
	if errors.Is(err, ErrEmptyQuery) {
		fail(w, http.StatusBadRequest, "Query cannot be empty")
		return
	}
	if err != nil {
		slog.Error("Assistant query failed", "user_id", userID, "error", err)
		fail(w, http.StatusInternalServerError, "failed to process query")
		return
	}

	api.JSON(w, http.StatusOK, queryResponse{
		Success:  true,
		Response: answer.Response,
		QueryID:  answer.RecordID,
	})
}

// HandleHistory handles GET /api/assistant/history.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == 0 {
		api.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	records, err := h.svc.History(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to load assistant history", "user_id", userID, "error", err)
		api.Error(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if records == nil {
		records = []*domain.QueryRecord{}
	}
	api.JSON(w, http.StatusOK, map[string]any{"history": records})
}

// allow reports whether userID may send another query. Limiter errors fail
// open.
func (h *Handler) allow(r *http.Request, userID int64) bool {
	if h.limiter == nil {
		return true
	}
	ok, err := h.limiter.Allow(r.Context(), strconv.FormatInt(userID, 10))
	if err != nil {
		slog.Warn("Rate limiter unavailable", "user_id", userID, "error", err)
		return true
	}
	return ok
}

// RegisterRoutes registers assistant routes behind identity.RequireAuth.
// The router must already run identity.Middleware.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/assistant", func(r chi.Router) {
		r.Use(identity.RequireAuth)
		r.Post("/query", h.HandleQuery)
		r.Get("/history", h.HandleHistory)
	})
}
