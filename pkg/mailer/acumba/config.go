package acumba

// Config holds AcumbaMail provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	AuthToken string `env:"ACUMBA_AUTH_TOKEN"`
	Host      string `env:"ACUMBA_HOST"` // Empty uses DefaultHost
	Port      int    `env:"ACUMBA_PORT"`
}
