package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/layangkit/layangkit/core/auth"
	"github.com/layangkit/layangkit/core/post"
	"github.com/layangkit/layangkit/core/user"
	"github.com/layangkit/layangkit/core/verification"
	"github.com/layangkit/layangkit/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError translates domain sentinel errors into HTTP responses.
// Unrecognized errors become an opaque 500; the real cause goes to the log.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, auth.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, verification.ErrInvalidToken):
		writeError(w, http.StatusBadRequest, "invalid or expired token")
	case errors.Is(err, verification.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "please wait before requesting another email")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, auth.ErrPasswordLoginUnavailable):
		writeError(w, http.StatusUnauthorized, "this account signs in with google")
	case errors.Is(err, auth.ErrEmailNotVerified):
		writeError(w, http.StatusForbidden, "email not verified")
	case errors.Is(err, auth.ErrInvalidOAuthState):
		writeError(w, http.StatusBadRequest, "invalid oauth state")
	case errors.Is(err, auth.ErrOAuthEmailUnverified):
		writeError(w, http.StatusForbidden, "google account email is not verified")
	case errors.Is(err, user.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, user.ErrNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, post.ErrNotFound):
		writeError(w, http.StatusNotFound, "post not found")
	default:
		log.LogAttrs(r.Context(), slog.LevelError, "request failed",
			logger.Method(r.Method), logger.Path(r.URL.Path), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// userResponse is the public view of an account. The password hash and
// Google subject never leave the server.
type userResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Provider      string    `json:"provider"`
	Avatar        string    `json:"avatar,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

func publicUser(u *user.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Provider:      string(u.Provider),
		Avatar:        u.Avatar,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}
