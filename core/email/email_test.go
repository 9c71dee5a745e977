package email_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layangkit/layangkit/core/email"
)

func TestSendParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendParams{
		To:       "user@example.com",
		Subject:  "Hello",
		BodyHTML: "<p>Hi</p>",
	}

	t.Run("accepts valid params", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid.Validate())
	})

	t.Run("rejects missing recipient", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.To = ""
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})

	t.Run("rejects malformed recipient", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.To = "not-an-address"
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})

	t.Run("rejects missing subject", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.Subject = ""
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})

	t.Run("rejects missing body", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.BodyHTML = ""
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	t.Run("writes html and metadata files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.Send(context.Background(), email.SendParams{
			To:       "user@example.com",
			Subject:  "Verify your email address",
			BodyHTML: "<h1>Verify</h1>",
			Tag:      "email_verification",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		var htmlFile, jsonFile string
		for _, e := range entries {
			switch filepath.Ext(e.Name()) {
			case ".html":
				htmlFile = e.Name()
			case ".json":
				jsonFile = e.Name()
			}
		}
		require.NotEmpty(t, htmlFile)
		require.NotEmpty(t, jsonFile)
		assert.Contains(t, htmlFile, "email_verification")

		body, err := os.ReadFile(filepath.Join(dir, htmlFile))
		require.NoError(t, err)
		assert.Equal(t, "<h1>Verify</h1>", string(body))

		meta, err := os.ReadFile(filepath.Join(dir, jsonFile))
		require.NoError(t, err)
		assert.Contains(t, string(meta), `"user@example.com"`)
	})

	t.Run("rejects invalid params without touching disk", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.Send(context.Background(), email.SendParams{To: "user@example.com"})
		require.ErrorIs(t, err, email.ErrInvalidParams)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestVerificationMessage(t *testing.T) {
	t.Parallel()

	params, err := email.VerificationMessage("https://app.example.com", "user@example.com", "deadbeef")
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", params.To)
	assert.Equal(t, "email_verification", params.Tag)
	assert.Contains(t, params.BodyHTML, "https://app.example.com/verify-email?email=user%40example.com&amp;token=deadbeef")
	assert.NoError(t, params.Validate())
}

func TestPasswordResetMessage(t *testing.T) {
	t.Parallel()

	params, err := email.PasswordResetMessage("https://app.example.com", "user@example.com", "deadbeef")
	require.NoError(t, err)

	assert.Equal(t, "password_reset", params.Tag)
	assert.Contains(t, params.BodyHTML, "https://app.example.com/reset-password?email=user%40example.com&amp;token=deadbeef")
	assert.NoError(t, params.Validate())
}

func TestMessageEscapesToken(t *testing.T) {
	t.Parallel()

	params, err := email.VerificationMessage("https://app.example.com", "user@example.com", `"><script>`)
	require.NoError(t, err)

	assert.False(t, strings.Contains(params.BodyHTML, "<script>"))
}
