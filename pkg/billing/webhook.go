package billing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// maxWebhookBody caps the request body a webhook endpoint will read.
const maxWebhookBody = 1 << 20

// EventParser turns a raw webhook request into a normalized Event,
// verifying authenticity along the way.
type EventParser interface {
	Parse(ctx context.Context, payload []byte, headers http.Header) (Event, error)
}

// WebhookHandler builds the HTTP endpoint that receives provider
// webhooks. Invalid signatures and undecodable payloads get 400;
// events this system does not act on get 200 so the provider stops
// retrying; reconciliation failures get 500 so it retries.
func WebhookHandler(parser EventParser, reconciler *Reconciler, log *slog.Logger) http.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}

		event, err := parser.Parse(r.Context(), payload, r.Header)
		if err != nil {
			if errors.Is(err, ErrSignatureInvalid) || errors.Is(err, ErrInvalidPayload) {
				log.WarnContext(r.Context(), "rejected webhook", slog.Any("error", err))
				http.Error(w, "invalid webhook", http.StatusBadRequest)
				return
			}
			log.ErrorContext(r.Context(), "webhook parse failed", slog.Any("error", err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if err := reconciler.Apply(r.Context(), event); err != nil {
			log.ErrorContext(r.Context(), "webhook reconciliation failed", slog.Any("error", err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
