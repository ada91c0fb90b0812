// Package api provides HTTP handlers for the college portal API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ashureev/college-portal/internal/filestore"
	"github.com/ashureev/college-portal/internal/identity"
	"github.com/ashureev/college-portal/internal/store"
	"github.com/ashureev/college-portal/internal/studyplan"
	"github.com/ashureev/college-portal/internal/validation"
)

// defaultMaxRequestBodySize is the maximum JSON request body size (1MB).
const defaultMaxRequestBodySize = 1 << 20

// Handler provides the portal's REST handlers and their shared dependencies.
type Handler struct {
	repo      store.Repository
	files     *filestore.Local
	tokens    *identity.TokenIssuer
	planner   *studyplan.Planner
	validator *validation.Validator
	maxUpload int64
	isDev     bool
}

// Options configures a Handler.
type Options struct {
	Repo      store.Repository
	Files     *filestore.Local
	Tokens    *identity.TokenIssuer
	Planner   *studyplan.Planner
	Validator *validation.Validator
	MaxUpload int64
	IsDev     bool
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(opts Options) *Handler {
	if opts.Planner == nil {
		opts.Planner = studyplan.NewPlanner(nil)
	}
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}
	return &Handler{
		repo:      opts.Repo,
		files:     opts.Files,
		tokens:    opts.Tokens,
		planner:   opts.Planner,
		validator: opts.Validator,
		maxUpload: opts.MaxUpload,
		isDev:     opts.IsDev,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ValidationError writes a 400 response listing the invalid fields.
func ValidationError(w http.ResponseWriter, err *validation.Error) {
	msg := "validation failed"
	if err.Message != "" {
		msg = err.Message
	}
	JSON(w, http.StatusBadRequest, map[string]any{
		"error":  msg,
		"fields": err.Fields,
	})
}

// DecodeJSON reads a size-limited JSON body into dst. On failure it writes
// the error response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, defaultMaxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// decodeValid decodes and validates a JSON body.
func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !DecodeJSON(w, r, dst) {
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		if vErr, ok := validation.AsError(err); ok {
			ValidationError(w, vErr)
			return false
		}
		Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
