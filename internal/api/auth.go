package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ashureev/college-portal/internal/domain"
	"github.com/ashureev/college-portal/internal/identity"
	"github.com/ashureev/college-portal/internal/store"
	"github.com/ashureev/college-portal/internal/validation"
)

type signupRequest struct {
	Username  string `json:"username" validate:"required,username,max=150"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=6,max=128"`
	Password2 string `json:"password2" validate:"required"`
	Phone     string `json:"phone" validate:"omitempty,max=15"`
	Semester  int    `json:"semester" validate:"omitempty,min=1,max=12"`
	Branch    string `json:"branch" validate:"omitempty,max=100"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /api/auth/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Password != req.Password2 {
		ValidationError(w, validation.NewError("password2", "Passwords don't match!"))
		return
	}

	ctx := r.Context()
	existing, err := h.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		slog.Error("Signup lookup failed", "error", err)
		Error(w, http.StatusInternalServerError, "failed to create account")
		return
	}
	if existing != nil {
		Error(w, http.StatusConflict, "Username already exists!")
		return
	}
	existing, err = h.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		slog.Error("Signup lookup failed", "error", err)
		Error(w, http.StatusInternalServerError, "failed to create account")
		return
	}
	if existing != nil {
		Error(w, http.StatusConflict, "Email already registered!")
		return
	}

	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		Error(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleStudent,
		Phone:        strings.TrimSpace(req.Phone),
	}
	profile := &domain.StudentProfile{
		Semester: req.Semester,
		Branch:   strings.TrimSpace(req.Branch),
	}
	if err := h.repo.CreateUser(ctx, user, profile); err != nil {
		if errors.Is(err, store.ErrConflict) {
			Error(w, http.StatusConflict, "Username already exists!")
			return
		}
		slog.Error("Failed to create user", "username", user.Username, "error", err)
		Error(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	slog.Info("Account created", "user_id", user.ID, "username", user.Username)
	JSON(w, http.StatusCreated, map[string]any{
		"message": "Account created successfully! Please login.",
		"user":    user,
		"profile": profile,
	})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	user, err := h.repo.GetUserByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		slog.Error("Login lookup failed", "error", err)
		Error(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	if user == nil || !identity.CheckPassword(user.PasswordHash, req.Password) {
		slog.Info("Login rejected", "username", req.Username, "ip", identity.IPFromRequest(r))
		Error(w, http.StatusUnauthorized, "Invalid username or password!")
		return
	}

	token, claims, err := h.tokens.Issue(user)
	if err != nil {
		slog.Error("Failed to issue token", "user_id", user.ID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	expires := claims.ExpiresAt.Time
	identity.SetTokenCookie(w, token, expires, h.isDev)

	JSON(w, http.StatusOK, map[string]any{
		"message":    "Welcome back, " + user.Username + "!",
		"token":      token,
		"expires_at": expires.UTC().Format(time.RFC3339),
		"user":       user,
	})
}

// Logout handles POST /api/auth/logout. The current token is revoked until
// it would have expired.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := identity.ClaimsFromContext(r.Context()); claims != nil && claims.ExpiresAt != nil {
		if err := h.repo.RevokeToken(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			slog.Error("Failed to revoke token", "user_id", claims.Subject, "error", err)
			Error(w, http.StatusInternalServerError, "failed to log out")
			return
		}
	}
	identity.ClearTokenCookie(w, h.isDev)
	JSON(w, http.StatusOK, map[string]string{"message": "You have been logged out successfully!"})
}

// Me handles GET /api/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	profile, err := h.repo.GetStudentProfile(r.Context(), user.ID)
	if err != nil {
		slog.Error("Failed to load profile", "user_id", user.ID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"user":    user,
		"profile": profile,
	})
}

// currentUser loads the authenticated user. On failure it writes the error
// response and returns false.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == 0 {
		Error(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	user, err := h.repo.GetUser(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to load user", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load user")
		return nil, false
	}
	if user == nil {
		Error(w, http.StatusUnauthorized, "user not found")
		return nil, false
	}
	return user, true
}
