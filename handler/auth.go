package handler

import (
	"log/slog"
	"net/http"

	"github.com/layangkit/layangkit/core/auth"
	"github.com/layangkit/layangkit/core/cookie"
	"github.com/layangkit/layangkit/middleware"
	"github.com/layangkit/layangkit/pkg/logger"
)

// AuthHandler serves the account lifecycle endpoints.
type AuthHandler struct {
	svc     *auth.Service
	cookies *cookie.Policy
	log     *slog.Logger
}

func NewAuthHandler(svc *auth.Service, cookies *cookie.Policy, log *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, cookies: cookies, log: log.With(logger.Component("handler.auth"))}
}

// Register handles POST /auth/register. A taken address answers 409; this
// is the one endpoint that confirms account existence.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.svc.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":    publicUser(u),
		"message": "check your email to verify your account",
	})
}

// Login handles POST /auth/login and opens a session on success.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	u, sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	http.SetCookie(w, h.cookies.SessionCookie(sess.ID, sess.ExpiresAt))
	writeJSON(w, http.StatusOK, map[string]any{"user": publicUser(u)})
}

// Logout handles POST /auth/logout. It always clears the cookie, even when
// no session resolved, so stale cookies cannot linger.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.GetSession(r.Context()); ok {
		if err := h.svc.Logout(r.Context(), sess.ID); err != nil {
			writeServiceError(w, r, h.log, err)
			return
		}
	}

	http.SetCookie(w, h.cookies.BlankSessionCookie())
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// ForgotPassword handles POST /auth/forgot-password. The response body is
// identical whether or not the address has an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "if an account exists for that address, a reset link has been sent",
	})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Email, req.Token, req.Password); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated, please log in"})
}

// ResendVerification handles POST /auth/resend-verification with the same
// masking as ForgotPassword.
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.ResendVerification(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "if an account exists for that address, a verification link has been sent",
	})
}

// VerifyEmail handles GET /auth/verify-email?email=..&token=.. which is the
// link target from the verification message.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	emailAddr := r.URL.Query().Get("email")
	rawToken := r.URL.Query().Get("token")
	if emailAddr == "" || rawToken == "" {
		writeError(w, http.StatusBadRequest, "email and token are required")
		return
	}

	if err := h.svc.VerifyEmail(r.Context(), emailAddr, rawToken); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "email verified, you can log in now"})
}

// GoogleRedirect handles GET /auth/google and sends the browser to the
// Google consent page.
func (h *AuthHandler) GoogleRedirect(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.GoogleAuthURL(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// GoogleCallback handles GET /auth/google/callback. On success it opens a
// session and sends the browser back to the application root.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if errCode := q.Get("error"); errCode != "" {
		writeError(w, http.StatusBadRequest, "google sign-in was cancelled")
		return
	}

	state, code := q.Get("state"), q.Get("code")
	if state == "" || code == "" {
		writeError(w, http.StatusBadRequest, "missing state or code")
		return
	}

	_, sess, err := h.svc.GoogleCallback(r.Context(), state, code)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	http.SetCookie(w, h.cookies.SessionCookie(sess.ID, sess.ExpiresAt))
	http.Redirect(w, r, "/", http.StatusFound)
}
