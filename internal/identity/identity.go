// Package identity provides login identity primitives: password hashing,
// signed tokens, and request-scoped user identity.
package identity

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ashureev/college-portal/internal/domain"
)

// TokenCookieName is the cookie carrying the login token for browser clients.
const TokenCookieName = "portal_token"

type contextKey int

const (
	claimsKey contextKey = iota
)

// RevocationChecker reports whether a token ID has been revoked by logout.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// ClaimsFromContext returns the verified token claims, or nil for anonymous requests.
func ClaimsFromContext(ctx context.Context) *Claims {
	if v, ok := ctx.Value(claimsKey).(*Claims); ok {
		return v
	}
	return nil
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// UserIDFromContext extracts the user ID from the request context.
// Returns 0 for anonymous requests.
func UserIDFromContext(ctx context.Context) int64 {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return 0
	}
	id, err := claims.UserID()
	if err != nil {
		return 0
	}
	return id
}

// UsernameFromContext extracts the username from the request context.
func UsernameFromContext(ctx context.Context) string {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.Username
	}
	return ""
}

// RoleFromContext extracts the role from the request context.
func RoleFromContext(ctx context.Context) domain.Role {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.Role
	}
	return ""
}

// TokenFromRequest returns the raw token presented by the request, checking
// the Authorization header, then the login cookie. Tokens in the URL are
// not accepted.
func TokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(TokenCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}

// Middleware attaches verified token claims to the request context. Requests
// without a valid, unrevoked token continue anonymously.
func Middleware(tokens *TokenIssuer, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := TokenFromRequest(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				slog.Debug("Ignoring invalid token", "error", err, "ip", IPFromRequest(r))
				next.ServeHTTP(w, r)
				return
			}

			isRevoked, err := revoked.IsTokenRevoked(r.Context(), claims.ID)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, "failed to verify session")
				return
			}
			if isRevoked {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFromContext(r.Context()) == 0 {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from non-admin users with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromContext(r.Context()) != domain.RoleAdmin {
			writeJSONError(w, http.StatusForbidden, "Access denied! Admin only.")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}

// SetTokenCookie stores the login token in an HttpOnly cookie.
func SetTokenCookie(w http.ResponseWriter, token string, expires time.Time, isDev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(time.Until(expires).Seconds()),
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !isDev,
	})
}

// ClearTokenCookie removes the login cookie.
func ClearTokenCookie(w http.ResponseWriter, isDev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !isDev,
	})
}

// IPFromRequest returns a normalized remote IP for optional request tracing.
func IPFromRequest(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
