package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layangkit/layangkit/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestDuration(t *testing.T) {
	t.Parallel()

	d := 5 * time.Second
	attr := logger.Duration(d)
	require.Equal(t, "duration", attr.Key)
	assert.Equal(t, d, attr.Value.Duration())
}

func TestStringAttrs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		attr slog.Attr
		key  string
		val  string
	}{
		{"component", logger.Component("session"), "component", "session"},
		{"event", logger.Event("validate"), "event", "validate"},
		{"user_id", logger.UserID("u1"), "user_id", "u1"},
		{"request_id", logger.RequestID("r1"), "request_id", "r1"},
		{"method", logger.Method("GET"), "method", "GET"},
		{"path", logger.Path("/auth/login"), "path", "/auth/login"},
		{"remote_addr", logger.RemoteAddr("10.0.0.1:1234"), "remote_addr", "10.0.0.1:1234"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.key, tc.attr.Key)
			assert.Equal(t, tc.val, tc.attr.Value.String())
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to info level", func(t *testing.T) {
		t.Parallel()

		log := logger.New(logger.Config{})
		require.NotNil(t, log)
		assert.False(t, log.Enabled(t.Context(), slog.LevelDebug))
		assert.True(t, log.Enabled(t.Context(), slog.LevelInfo))
	})

	t.Run("honours debug level", func(t *testing.T) {
		t.Parallel()

		log := logger.New(logger.Config{Level: "debug", Format: "text"})
		assert.True(t, log.Enabled(t.Context(), slog.LevelDebug))
	})
}
