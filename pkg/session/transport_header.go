package session

import (
	"net/http"
	"strings"
)

// HeaderTransport carries the session token as a bearer token in the
// Authorization header, for API clients that do not keep cookies.
type HeaderTransport struct{}

// NewHeaderTransport creates a bearer-token transport.
func NewHeaderTransport() *HeaderTransport {
	return &HeaderTransport{}
}

func (t *HeaderTransport) Extract(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (t *HeaderTransport) Embed(w http.ResponseWriter, token string) {
	w.Header().Set("X-Session-Token", token)
}

func (t *HeaderTransport) Clear(w http.ResponseWriter) {
	w.Header().Del("X-Session-Token")
}
