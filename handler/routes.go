package handler

import (
	"log/slog"
	"net/http"

	"github.com/layangkit/layangkit/core/cookie"
	"github.com/layangkit/layangkit/core/session"
	"github.com/layangkit/layangkit/middleware"
)

// RouterDeps collects everything the router needs. Uploads may be nil when
// object storage is not configured; its routes are then omitted.
type RouterDeps struct {
	Auth     *AuthHandler
	Profile  *ProfileHandler
	Users    *UsersHandler
	Posts    *PostsHandler
	Uploads  *UploadHandler
	Health   *HealthHandler
	Sessions *session.Manager
	Cookies  *cookie.Policy
	Log      *slog.Logger
}

// NewRouter wires all routes and wraps them with the request ID, logging,
// and session middleware. Session resolution runs on every request; only
// the routes that need a user enforce it.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()
	authed := middleware.RequireAuth()

	mux.HandleFunc("POST /auth/register", deps.Auth.Register)
	mux.HandleFunc("POST /auth/login", deps.Auth.Login)
	mux.HandleFunc("POST /auth/logout", deps.Auth.Logout)
	mux.HandleFunc("POST /auth/forgot-password", deps.Auth.ForgotPassword)
	mux.HandleFunc("POST /auth/reset-password", deps.Auth.ResetPassword)
	mux.HandleFunc("POST /auth/resend-verification", deps.Auth.ResendVerification)
	mux.HandleFunc("GET /auth/verify-email", deps.Auth.VerifyEmail)
	mux.HandleFunc("GET /auth/google", deps.Auth.GoogleRedirect)
	mux.HandleFunc("GET /auth/google/callback", deps.Auth.GoogleCallback)

	mux.Handle("GET /api/profile", authed(http.HandlerFunc(deps.Profile.Me)))
	mux.Handle("PUT /api/profile", authed(http.HandlerFunc(deps.Profile.Update)))

	mux.HandleFunc("GET /api/users", deps.Users.List)
	mux.HandleFunc("GET /api/users/{id}", deps.Users.Get)

	mux.HandleFunc("GET /api/posts", deps.Posts.List)
	mux.Handle("GET /api/posts/mine", authed(http.HandlerFunc(deps.Posts.ListMine)))
	mux.HandleFunc("GET /api/posts/{id}", deps.Posts.Get)
	mux.Handle("POST /api/posts", authed(http.HandlerFunc(deps.Posts.Create)))
	mux.Handle("PUT /api/posts/{id}", authed(http.HandlerFunc(deps.Posts.Update)))
	mux.Handle("DELETE /api/posts/{id}", authed(http.HandlerFunc(deps.Posts.Delete)))

	if deps.Uploads != nil {
		mux.Handle("POST /api/upload/image", authed(http.HandlerFunc(deps.Uploads.UploadImage)))
		mux.Handle("DELETE /api/upload/image", authed(http.HandlerFunc(deps.Uploads.DeleteImage)))
		mux.Handle("POST /api/upload/presign", authed(http.HandlerFunc(deps.Uploads.Presign)))
	}

	mux.HandleFunc("GET /api/health", deps.Health.Health)

	var h http.Handler = mux
	h = middleware.Session(deps.Sessions, deps.Cookies)(h)
	h = middleware.Logging(deps.Log)(h)
	h = middleware.RequestID()(h)
	return h
}
