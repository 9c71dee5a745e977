package email

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

// Message builders for the transactional emails the auth flows send. Each
// builder returns ready-to-send params with the action link composed from
// the application base URL.

const baseLayout = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#f4f4f5;font-family:Helvetica,Arial,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center" style="padding:40px 16px;">
      <table role="presentation" width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:32px;">
        <tr><td style="font-size:20px;font-weight:bold;color:#18181b;padding-bottom:16px;">{{.Title}}</td></tr>
        <tr><td style="font-size:14px;color:#3f3f46;line-height:1.6;padding-bottom:24px;">{{.Body}}</td></tr>
        <tr><td align="center" style="padding-bottom:24px;">
          <a href="{{.ActionURL}}" style="display:inline-block;background-color:#18181b;color:#ffffff;font-size:14px;font-weight:bold;text-decoration:none;padding:12px 24px;border-radius:6px;">{{.ActionLabel}}</a>
        </td></tr>
        <tr><td style="font-size:12px;color:#a1a1aa;line-height:1.5;">{{.Footer}}</td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

var messageTemplate = template.Must(template.New("message").Parse(baseLayout))

type messageData struct {
	Title       string
	Body        string
	ActionURL   string
	ActionLabel string
	Footer      string
}

// VerificationMessage builds the email-verification message. The token and
// the recipient address are carried as query parameters so the landing page
// can submit them together.
func VerificationMessage(baseURL, to, token string) (SendParams, error) {
	link, err := actionLink(baseURL, "/verify-email", to, token)
	if err != nil {
		return SendParams{}, err
	}

	body, err := render(messageData{
		Title:       "Verify your email address",
		Body:        "Thanks for signing up. Confirm this email address to activate your account. The link is valid for 24 hours.",
		ActionURL:   link,
		ActionLabel: "Verify email",
		Footer:      "If you did not create an account, you can safely ignore this message.",
	})
	if err != nil {
		return SendParams{}, err
	}

	return SendParams{
		To:       to,
		Subject:  "Verify your email address",
		BodyHTML: body,
		Tag:      "email_verification",
	}, nil
}

// PasswordResetMessage builds the password-reset message. The link is valid
// for one hour and usable once.
func PasswordResetMessage(baseURL, to, token string) (SendParams, error) {
	link, err := actionLink(baseURL, "/reset-password", to, token)
	if err != nil {
		return SendParams{}, err
	}

	body, err := render(messageData{
		Title:       "Reset your password",
		Body:        "We received a request to reset the password for your account. The link below is valid for 1 hour and can be used once.",
		ActionURL:   link,
		ActionLabel: "Reset password",
		Footer:      "If you did not request a password reset, no action is needed.",
	})
	if err != nil {
		return SendParams{}, err
	}

	return SendParams{
		To:       to,
		Subject:  "Reset your password",
		BodyHTML: body,
		Tag:      "password_reset",
	}, nil
}

func render(data messageData) (string, error) {
	var sb strings.Builder
	if err := messageTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("%w: template render failed: %v", ErrSendFailed, err)
	}
	return sb.String(), nil
}

func actionLink(baseURL, path, email, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base URL: %v", ErrInvalidConfig, err)
	}
	u.Path = path
	u.RawQuery = url.Values{"token": {token}, "email": {email}}.Encode()
	return u.String(), nil
}
