package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/layangkit/layangkit/pkg/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip disables logging for matching requests (health checks, metrics).
	Skip func(r *http.Request) bool
	// Logger is the slog logger to use (default: slog.Default()).
	Logger *slog.Logger
	// LogLevel for completed requests (default: slog.LevelInfo).
	LogLevel slog.Level
	// SlowRequestThreshold promotes slow requests to warning level
	// (default: 5s).
	SlowRequestThreshold time.Duration
	// Component name for structured logging (default: "http").
	Component string
}

// Logging logs one line per completed request with method, path, status,
// size, and duration. Responses with 5xx status log at error level, 4xx at
// warning.
func Logging(log *slog.Logger) func(http.Handler) http.Handler {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging middleware with custom
// configuration.
func LoggingWithConfig(cfg LoggingConfig) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Event("request"),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(wrapped.statusCode),
				logger.RemoteAddr(r.RemoteAddr),
				logger.Duration(duration),
				slog.Int("bytes_out", wrapped.size),
			}
			if requestID, ok := GetRequestID(r.Context()); ok {
				attrs = append(attrs, logger.RequestID(requestID))
			}

			level := cfg.LogLevel
			switch {
			case wrapped.statusCode >= 500:
				level = slog.LevelError
			case wrapped.statusCode >= 400:
				level = slog.LevelWarn
			case duration > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}

			cfg.Logger.LogAttrs(r.Context(), level, "HTTP request completed", attrs...)
		})
	}
}

// responseWriter captures status code and bytes written.
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	size          int
	headerWritten bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = statusCode
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}
