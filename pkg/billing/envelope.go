package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// EnvelopeParser verifies and decodes the generic webhook envelope:
// a JSON body of {"type": "...", "data": {...}} signed with the shared
// HMAC scheme. Providers with their own SDK verification (Paddle) use
// their Provider instead.
type EnvelopeParser struct {
	secret string
	maxAge time.Duration
}

// NewEnvelopeParser creates a parser. maxAge bounds the signature
// timestamp window; zero disables the replay check.
func NewEnvelopeParser(secret string, maxAge time.Duration) *EnvelopeParser {
	return &EnvelopeParser{secret: secret, maxAge: maxAge}
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type checkoutCompletedData struct {
	TenantID          uuid.UUID `json:"tenant_id"`
	PlanID            string    `json:"plan_id"`
	SubscriptionID    string    `json:"subscription_id"`
	Status            string    `json:"status"`
	Interval          string    `json:"interval"`
	PeriodStart       *int64    `json:"period_start,omitempty"`
	PeriodEnd         *int64    `json:"period_end,omitempty"`
	CancelAtPeriodEnd bool      `json:"cancel_at_period_end"`
}

type subscriptionUpdatedData struct {
	TenantID          *uuid.UUID `json:"tenant_id,omitempty"`
	SubscriptionID    string     `json:"subscription_id"`
	PriceID           string     `json:"price_id"`
	Status            string     `json:"status"`
	Interval          string     `json:"interval"`
	PeriodStart       *int64     `json:"period_start,omitempty"`
	PeriodEnd         *int64     `json:"period_end,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`
}

type subscriptionDeletedData struct {
	SubscriptionID string `json:"subscription_id"`
}

type paymentFailedData struct {
	Invoice struct {
		SubscriptionID string `json:"subscription_id"`
	} `json:"invoice"`
}

// Parse verifies the request signature and decodes the payload into a
// normalized Event. Unknown event types decode to Unhandled.
func (p *EnvelopeParser) Parse(ctx context.Context, payload []byte, headers http.Header) (Event, error) {
	err := VerifySignature(p.secret, payload,
		headers.Get(headerSignature), headers.Get(headerTimestamp), p.maxAge)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	switch env.Type {
	case "checkout.completed":
		var d checkoutCompletedData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, errors.Join(ErrInvalidPayload, err)
		}
		return CheckoutCompleted{
			TenantID:          d.TenantID,
			PlanID:            d.PlanID,
			ProviderSubID:     d.SubscriptionID,
			ProviderStatus:    d.Status,
			ProviderInterval:  d.Interval,
			PeriodStart:       unixTime(d.PeriodStart),
			PeriodEnd:         unixTime(d.PeriodEnd),
			CancelAtPeriodEnd: d.CancelAtPeriodEnd,
		}, nil

	case "subscription.updated":
		var d subscriptionUpdatedData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, errors.Join(ErrInvalidPayload, err)
		}
		e := SubscriptionUpdated{
			ProviderSubID:     d.SubscriptionID,
			PriceID:           d.PriceID,
			ProviderStatus:    d.Status,
			ProviderInterval:  d.Interval,
			PeriodStart:       unixTime(d.PeriodStart),
			PeriodEnd:         unixTime(d.PeriodEnd),
			CancelAtPeriodEnd: d.CancelAtPeriodEnd,
		}
		if d.TenantID != nil {
			e.TenantID = *d.TenantID
		}
		return e, nil

	case "subscription.deleted":
		var d subscriptionDeletedData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, errors.Join(ErrInvalidPayload, err)
		}
		return SubscriptionDeleted{ProviderSubID: d.SubscriptionID}, nil

	case "payment.failed":
		var d paymentFailedData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, errors.Join(ErrInvalidPayload, err)
		}
		return PaymentFailed{ProviderSubID: d.Invoice.SubscriptionID}, nil

	case "":
		return nil, fmt.Errorf("%w: missing event type", ErrInvalidPayload)

	default:
		return Unhandled{ProviderEvent: env.Type}, nil
	}
}

func unixTime(sec *int64) *time.Time {
	if sec == nil {
		return nil
	}
	t := time.Unix(*sec, 0).UTC()
	return &t
}
