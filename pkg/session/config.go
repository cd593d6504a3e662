package session

import "time"

// Config holds session settings loaded from environment variables.
type Config struct {
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	SecureCookies   bool          `env:"SESSION_SECURE_COOKIES" envDefault:"true"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1h"`
}
