// Package postmark sends transactional email through the Postmark API.
//
// Client implements email.Sender. Open tracking and HTML-only link tracking
// are enabled on every message, and Reply-To points at the support address
// so user replies reach a monitored inbox.
//
// Configuration comes from environment variables:
//
//	type Config struct {
//		ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
//		AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
//		SenderEmail  string `env:"SENDER_EMAIL"`
//		SupportEmail string `env:"SUPPORT_EMAIL"`
//	}
//
// The tokens are optional at load time so development environments can fall
// back to the filesystem sender; New rejects an incomplete Config, and
// Config.Configured reports whether the fallback should be skipped.
package postmark
