package session

import (
	"net/http"
	"time"
)

// CookieTransport carries the session token in an HttpOnly cookie.
type CookieTransport struct {
	name   string
	maxAge time.Duration
	secure bool
}

// CookieOption configures a CookieTransport.
type CookieOption func(*CookieTransport)

// WithCookieName overrides the cookie name.
func WithCookieName(name string) CookieOption {
	return func(t *CookieTransport) {
		if name != "" {
			t.name = name
		}
	}
}

// WithCookieMaxAge sets the cookie lifetime. It should match the
// session TTL so the cookie outlives neither the session nor vice versa.
func WithCookieMaxAge(maxAge time.Duration) CookieOption {
	return func(t *CookieTransport) {
		t.maxAge = maxAge
	}
}

// WithInsecureCookies drops the Secure attribute for local development.
func WithInsecureCookies() CookieOption {
	return func(t *CookieTransport) {
		t.secure = false
	}
}

// NewCookieTransport creates a cookie transport with HttpOnly,
// SameSite=Lax, and Secure defaults.
func NewCookieTransport(opts ...CookieOption) *CookieTransport {
	t := &CookieTransport{
		name:   "sid",
		maxAge: 7 * 24 * time.Hour,
		secure: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *CookieTransport) Extract(r *http.Request) (string, error) {
	c, err := r.Cookie(t.name)
	if err != nil || c.Value == "" {
		return "", ErrNoToken
	}
	return c.Value, nil
}

func (t *CookieTransport) Embed(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(t.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (t *CookieTransport) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
