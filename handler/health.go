package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthHandler reports service liveness and dependency reachability.
type HealthHandler struct {
	checks map[string]func(context.Context) error
}

// NewHealthHandler accepts named dependency checks, typically the database
// and redis ping functions.
func NewHealthHandler(checks map[string]func(context.Context) error) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health handles GET /api/health. Any failing check degrades the response
// to 503 so load balancers stop routing here.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK

	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			deps[name] = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			deps[name] = "ok"
		}
	}

	body := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"latency":   time.Since(start).String(),
	}
	if len(deps) > 0 {
		body["dependencies"] = deps
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}

	writeJSON(w, status, body)
}
