package postmark

// Config holds Postmark credentials and sender identity.
type Config struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail  string `env:"SENDER_EMAIL"`
	SupportEmail string `env:"SUPPORT_EMAIL"`
}

// Configured reports whether enough settings are present to build a client.
func (c Config) Configured() bool {
	return c.ServerToken != "" && c.SenderEmail != ""
}
