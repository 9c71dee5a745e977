package cookie

// Config carries the environment facts the policy depends on. Passed at
// construction time; nothing here is read from globals.
type Config struct {
	// IsDevelopment disables the Secure attribute for local HTTP.
	IsDevelopment bool `env:"APP_DEV" envDefault:"false"`
	// BaseURL is the public origin of the application, used by callers
	// composing absolute links (verification and reset emails).
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`
}
