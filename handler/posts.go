package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/layangkit/layangkit/core/post"
	"github.com/layangkit/layangkit/middleware"
	"github.com/layangkit/layangkit/pkg/logger"
)

// PostsHandler serves blog post CRUD. Reads are public; writes require a
// session and only the author may modify a post.
type PostsHandler struct {
	posts post.Store
	log   *slog.Logger
}

func NewPostsHandler(posts post.Store, log *slog.Logger) *PostsHandler {
	return &PostsHandler{posts: posts, log: log.With(logger.Component("handler.posts"))}
}

type postResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func publicPost(p *post.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// List handles GET /api/posts, published posts only, newest first.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 20)

	posts, err := h.posts.ListPublished(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	out := make([]postResponse, 0, len(posts))
	for i := range posts {
		out = append(out, publicPost(&posts[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

// ListMine handles GET /api/posts/mine, the author's posts including drafts.
func (h *PostsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	cur, _ := middleware.GetUser(r.Context())

	posts, err := h.posts.ListByAuthor(r.Context(), cur.ID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	out := make([]postResponse, 0, len(posts))
	for i := range posts {
		out = append(out, publicPost(&posts[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

// Get handles GET /api/posts/{id}. Drafts are only visible to their author.
func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	if !p.Published {
		cur, authed := middleware.GetUser(r.Context())
		if !authed || cur.ID != p.AuthorID {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": publicPost(p)})
}

// Create handles POST /api/posts.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	cur, _ := middleware.GetUser(r.Context())

	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		Published bool   `json:"published"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	p := &post.Post{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		AuthorID:  cur.ID,
	}
	if err := h.posts.Create(r.Context(), p); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"data": publicPost(p)})
}

// Update handles PUT /api/posts/{id}.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	cur, _ := middleware.GetUser(r.Context())

	p, ok := h.loadPost(w, r)
	if !ok {
		return
	}
	if p.AuthorID != cur.ID {
		writeError(w, http.StatusForbidden, "not your post")
		return
	}

	var req struct {
		Title     *string `json:"title"`
		Content   *string `json:"content"`
		Published *bool   `json:"published"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		p.Title = title
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.Published != nil {
		p.Published = *req.Published
	}

	if err := h.posts.Update(r.Context(), p); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": publicPost(p)})
}

// Delete handles DELETE /api/posts/{id}.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cur, _ := middleware.GetUser(r.Context())

	p, ok := h.loadPost(w, r)
	if !ok {
		return
	}
	if p.AuthorID != cur.ID {
		writeError(w, http.StatusForbidden, "not your post")
		return
	}

	if err := h.posts.Delete(r.Context(), p.ID); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

func (h *PostsHandler) loadPost(w http.ResponseWriter, r *http.Request) (*post.Post, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return nil, false
	}

	p, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return nil, false
	}
	return p, true
}
