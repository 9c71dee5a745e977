package storage

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// Storage is the object storage contract. Keys are slash-separated paths
// without a leading slash; implementations must reject path traversal.
type Storage interface {
	// Save writes the object and returns its public URL.
	Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
	// URL returns the public URL for a key without touching the backend.
	URL(key string) string
	// PresignPut returns a URL that allows a direct client upload of the
	// key until the expiry elapses.
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
}

// ValidateKey normalizes a storage key and rejects traversal attempts.
func ValidateKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return key, nil
}

var filenameRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// SanitizeFilename strips characters that are unsafe in object keys.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	name = filenameRegex.ReplaceAllString(name, "")
	if name == "" {
		name = "file"
	}
	return name
}
