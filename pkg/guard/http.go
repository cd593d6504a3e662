package guard

import (
	"encoding/json"
	"errors"
	"net/http"
)

// TokenFunc extracts a session token from a request. Implementations
// return an empty token for anonymous requests; the pipeline decides
// whether that is acceptable.
type TokenFunc func(r *http.Request) (string, error)

// Handler is the terminal of a pipeline: business logic running with a
// fully narrowed request context.
type Handler[V any] func(w http.ResponseWriter, r *http.Request, v V)

// Wrap runs a pipeline in front of a handler. Pipeline rejections are
// written by WriteError; the handler only runs on success, with the
// request context augmented by the stages.
func Wrap[V any](pipe Stage[Request, V], token TokenFunc, handler Handler[V]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok, err := token(r)
		if err != nil {
			tok = ""
		}

		ctx, v, err := pipe(r.Context(), Request{Token: tok})
		if err != nil {
			WriteError(w, err)
			return
		}
		handler(w, r.WithContext(ctx), v)
	}
}

// WriteError maps pipeline rejections to HTTP responses. Messages are
// deliberately generic so rejections leak nothing about why.
func WriteError(w http.ResponseWriter, err error) {
	var (
		status int
		msg    string
	)
	switch {
	case errors.Is(err, ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, "authentication required"
	case errors.Is(err, ErrNoActiveTenant):
		status, msg = http.StatusBadRequest, "no active workspace"
	case errors.Is(err, ErrForbidden):
		status, msg = http.StatusForbidden, "access denied"
	default:
		status, msg = http.StatusInternalServerError, "internal error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
