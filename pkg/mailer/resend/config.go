package resend

// Config holds Resend email provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey string `env:"RESEND_API_KEY"`
	Host   string `env:"RESEND_HOST"` // Empty uses the public API host
	Port   int    `env:"RESEND_PORT"`
}
