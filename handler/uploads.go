package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/layangkit/layangkit/core/storage"
	"github.com/layangkit/layangkit/middleware"
	"github.com/layangkit/layangkit/pkg/logger"
	"github.com/layangkit/layangkit/pkg/token"
)

const (
	maxImageSize   = 10 << 20 // 10 MiB
	presignExpires = 5 * time.Minute
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Content types accepted for presigned direct uploads. Images go through
// UploadImage instead so they pass the size limit.
var presignContentTypes = []string{
	"application/pdf",
	"application/zip",
	"application/json",
	"text/plain",
	"text/csv",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// UploadHandler serves file uploads backed by object storage.
type UploadHandler struct {
	store storage.Storage
	log   *slog.Logger
}

func NewUploadHandler(store storage.Storage, log *slog.Logger) *UploadHandler {
	return &UploadHandler{store: store, log: log.With(logger.Component("handler.uploads"))}
}

// UploadImage handles POST /api/upload/image. The multipart field "file"
// carries the image; "type" set to "avatar" stores it under the user's
// fixed avatar key so a re-upload replaces the previous one.
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	cur, _ := middleware.GetUser(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := imageExtensions[contentType]
	if !ok {
		writeError(w, http.StatusBadRequest, "file must be a JPEG, PNG, WebP, or GIF image")
		return
	}

	var key string
	if r.FormValue("type") == "avatar" {
		key = fmt.Sprintf("avatars/%s/avatar%s", cur.ID, ext)
	} else {
		key = fmt.Sprintf("images/%s/%s%s", cur.ID, token.NewID(), ext)
	}

	url, err := h.store.Save(r.Context(), key, file, contentType)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"url":  url,
		"key":  key,
		"type": contentType,
		"size": header.Size,
	})
}

// DeleteImage handles DELETE /api/upload/image. Users can only delete keys
// under their own avatar and image prefixes.
func (h *UploadHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	cur, _ := middleware.GetUser(r.Context())

	var req struct {
		Key string `json:"key"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	key, err := storage.ValidateKey(req.Key)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid key")
		return
	}

	if !strings.HasPrefix(key, "avatars/"+cur.ID+"/") && !strings.HasPrefix(key, "images/"+cur.ID+"/") {
		writeError(w, http.StatusForbidden, "not authorized to delete this file")
		return
	}

	if err := h.store.Delete(r.Context(), key); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "file deleted"})
}

// Presign handles POST /api/upload/presign and returns a short-lived URL
// for a direct client upload of a document.
func (h *UploadHandler) Presign(w http.ResponseWriter, r *http.Request) {
	cur, _ := middleware.GetUser(r.Context())

	var req struct {
		Filename    string `json:"filename"`
		ContentType string `json:"content_type"`
		Prefix      string `json:"prefix"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Filename == "" || req.ContentType == "" {
		writeError(w, http.StatusBadRequest, "filename and content_type are required")
		return
	}
	if !slices.Contains(presignContentTypes, req.ContentType) {
		writeError(w, http.StatusBadRequest, "file type not allowed")
		return
	}
	if req.Prefix == "" {
		req.Prefix = "uploads"
	}

	key, err := storage.ValidateKey(fmt.Sprintf("%s/%s/%s-%s",
		req.Prefix, cur.ID, token.NewID(), storage.SanitizeFilename(req.Filename)))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prefix")
		return
	}

	uploadURL, err := h.store.PresignPut(r.Context(), key, req.ContentType, presignExpires)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"upload_url": uploadURL,
		"public_url": h.store.URL(key),
		"key":        key,
		"expires_in": int(presignExpires.Seconds()),
	})
}
