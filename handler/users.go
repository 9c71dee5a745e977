package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/layangkit/layangkit/core/post"
	"github.com/layangkit/layangkit/core/user"
	"github.com/layangkit/layangkit/pkg/logger"
)

// UsersHandler serves the public user directory.
type UsersHandler struct {
	users user.Store
	posts post.Store
	log   *slog.Logger
}

func NewUsersHandler(users user.Store, posts post.Store, log *slog.Logger) *UsersHandler {
	return &UsersHandler{users: users, posts: posts, log: log.With(logger.Component("handler.users"))}
}

// List handles GET /api/users with optional limit and offset parameters.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50)

	users, err := h.users.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, publicUser(&users[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

// Get handles GET /api/users/{id} and includes the user's posts, drafts
// excluded.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	posts, err := h.posts.ListByAuthor(r.Context(), u.ID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	published := make([]postResponse, 0, len(posts))
	for i := range posts {
		if posts[i].Published {
			published = append(published, publicPost(&posts[i]))
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"user":  publicUser(u),
			"posts": published,
		},
	})
}

func pagination(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
