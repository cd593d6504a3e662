package session

import "net/http"

// Transport moves session tokens between HTTP messages and callers.
type Transport interface {
	// Extract reads the token from a request. Returns ErrNoToken when
	// the request carries none.
	Extract(r *http.Request) (string, error)

	// Embed writes the token to the response.
	Embed(w http.ResponseWriter, token string)

	// Clear removes the token from the client.
	Clear(w http.ResponseWriter)
}
