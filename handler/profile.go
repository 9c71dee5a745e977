package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/layangkit/layangkit/core/user"
	"github.com/layangkit/layangkit/middleware"
	"github.com/layangkit/layangkit/pkg/logger"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	users user.Store
	log   *slog.Logger
}

func NewProfileHandler(users user.Store, log *slog.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, log: log.With(logger.Component("handler.profile"))}
}

// Me handles GET /api/profile. The store is re-read so the response
// reflects writes made after the session was resolved.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	cur, _ := middleware.GetUser(r.Context())

	u, err := h.users.GetByID(r.Context(), cur.ID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": publicUser(u)})
}

// Update handles PUT /api/profile. Omitted fields keep their current value.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	cur, _ := middleware.GetUser(r.Context())

	var req struct {
		Name   *string `json:"name"`
		Avatar *string `json:"avatar"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.users.GetByID(r.Context(), cur.ID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	name, avatar := u.Name, u.Avatar
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if len(name) < 2 {
			writeError(w, http.StatusBadRequest, "name must be at least 2 characters")
			return
		}
	}
	if req.Avatar != nil {
		avatar = *req.Avatar
	}

	if err := h.users.UpdateProfile(r.Context(), cur.ID, name, avatar); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	u.Name, u.Avatar = name, avatar
	writeJSON(w, http.StatusOK, map[string]any{"user": publicUser(u)})
}
