package logger

import (
	"log/slog"
	"time"
)

// Component identifies the subsystem emitting the log record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event names the logical event within a component.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Error records a single error. Returns an empty attr for nil errors so it
// can be passed unconditionally.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration records an elapsed time under the "duration" key.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// UserID tags a record with the acting user.
func UserID(id string) slog.Attr {
	return slog.String("user_id", id)
}

// SessionID tags a record with the session row identifier.
// Session ids are bearer credentials; callers must pass a truncated or
// digested form, never the raw cookie value.
func SessionID(id string) slog.Attr {
	return slog.String("session_id", id)
}

// RequestID tags a record with the request correlation id.
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// Method records the HTTP method.
func Method(m string) slog.Attr {
	return slog.String("method", m)
}

// Path records the HTTP request path.
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// StatusCode records the HTTP response status.
func StatusCode(code int) slog.Attr {
	return slog.Int("status", code)
}

// RemoteAddr records the client network address.
func RemoteAddr(addr string) slog.Attr {
	return slog.String("remote_addr", addr)
}
