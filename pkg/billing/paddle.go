package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
	"github.com/google/uuid"
)

// PaddleConfig holds Paddle credentials loaded from the environment.
type PaddleConfig struct {
	APIKey        string `env:"PADDLE_API_KEY,required"`
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET,required"`
	Environment   string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
}

// PaddleProvider verifies Paddle webhooks with the SDK verifier and
// translates Paddle events into normalized billing Events. It also
// creates hosted checkout transactions.
type PaddleProvider struct {
	client   *paddle.SDK
	verifier *paddle.WebhookVerifier
}

// NewPaddleProvider creates a Paddle provider for the configured
// environment.
func NewPaddleProvider(config PaddleConfig) (*PaddleProvider, error) {
	if config.APIKey == "" {
		return nil, errors.New("paddle API key is required")
	}
	if config.WebhookSecret == "" {
		return nil, errors.New("paddle webhook secret is required")
	}

	var (
		client *paddle.SDK
		err    error
	)
	switch strings.ToLower(config.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(config.APIKey)
	case "production", "":
		client, err = paddle.New(config.APIKey)
	default:
		return nil, fmt.Errorf("invalid paddle environment: %s", config.Environment)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle client: %w", err)
	}

	return &PaddleProvider{
		client:   client,
		verifier: paddle.NewWebhookVerifier(config.WebhookSecret),
	}, nil
}

// CreateCheckoutLink creates a hosted checkout transaction for a price
// and returns its URL. The tenant id travels in custom data so the
// checkout-completed webhook can be tied back to the workspace.
func (p *PaddleProvider) CreateCheckoutLink(ctx context.Context, tenantID uuid.UUID, planID, priceID, successURL string) (string, error) {
	if priceID == "" {
		return "", ErrPriceNotConfigured
	}

	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  priceID,
		Quantity: 1,
	})
	req := &paddle.CreateTransactionRequest{
		Items: []paddle.CreateTransactionItems{*item},
		CustomData: paddle.CustomData{
			"tenant_id": tenantID.String(),
			"plan_id":   planID,
		},
	}
	if successURL != "" {
		req.Checkout = &paddle.TransactionCheckout{URL: paddle.PtrTo(successURL)}
	}

	txn, err := p.client.TransactionsClient.CreateTransaction(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create paddle transaction: %w", err)
	}
	if txn.Checkout == nil || txn.Checkout.URL == nil {
		return "", ErrNoCheckoutURL
	}
	return *txn.Checkout.URL, nil
}

type paddleEnvelope struct {
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

type paddleSubscription struct {
	ID              string         `json:"id"`
	Status          string         `json:"status"`
	CustomData      map[string]any `json:"custom_data"`
	ScheduledChange *struct {
		Action string `json:"action"`
	} `json:"scheduled_change"`
	BillingCycle  *paddleBillingCycle `json:"billing_cycle"`
	Items         []paddleItem        `json:"items"`
	CurrentPeriod json.RawMessage     `json:"current_billing_period"`
}

type paddlePeriod struct {
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

type paddleBillingCycle struct {
	Interval string `json:"interval"`
}

type paddleItem struct {
	Price struct {
		ID string `json:"id"`
	} `json:"price"`
}

type paddleTransaction struct {
	SubscriptionID string `json:"subscription_id"`
}

// Parse verifies the Paddle-Signature header and translates the event.
// Event types outside the subscription lifecycle decode to Unhandled.
func (p *PaddleProvider) Parse(ctx context.Context, payload []byte, headers http.Header) (Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/webhook", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Paddle-Signature", headers.Get("Paddle-Signature"))

	valid, err := p.verifier.Verify(req)
	if err != nil {
		return nil, errors.Join(ErrSignatureInvalid, err)
	}
	if !valid {
		return nil, ErrSignatureInvalid
	}

	var env paddleEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	switch env.EventType {
	case "subscription.created", "subscription.activated":
		sub, err := decodePaddleSubscription(env.Data)
		if err != nil {
			return nil, err
		}
		e := CheckoutCompleted{
			ProviderSubID:    sub.ID,
			ProviderStatus:   sub.Status,
			ProviderInterval: sub.interval(),
		}
		e.TenantID = sub.tenantID()
		e.PlanID, _ = sub.CustomData["plan_id"].(string)
		e.PeriodStart, e.PeriodEnd = sub.period()
		return e, nil

	case "subscription.updated":
		sub, err := decodePaddleSubscription(env.Data)
		if err != nil {
			return nil, err
		}
		e := SubscriptionUpdated{
			TenantID:          sub.tenantID(),
			ProviderSubID:     sub.ID,
			ProviderStatus:    sub.Status,
			ProviderInterval:  sub.interval(),
			CancelAtPeriodEnd: sub.cancelScheduled(),
		}
		if len(sub.Items) > 0 {
			e.PriceID = sub.Items[0].Price.ID
		}
		e.PeriodStart, e.PeriodEnd = sub.period()
		return e, nil

	case "subscription.canceled":
		sub, err := decodePaddleSubscription(env.Data)
		if err != nil {
			return nil, err
		}
		return SubscriptionDeleted{ProviderSubID: sub.ID}, nil

	case "transaction.payment_failed":
		var txn paddleTransaction
		if err := json.Unmarshal(env.Data, &txn); err != nil {
			return nil, errors.Join(ErrInvalidPayload, err)
		}
		if txn.SubscriptionID == "" {
			// One-off transaction failures do not touch subscriptions.
			return Unhandled{ProviderEvent: env.EventType}, nil
		}
		return PaymentFailed{ProviderSubID: txn.SubscriptionID}, nil

	default:
		return Unhandled{ProviderEvent: env.EventType}, nil
	}
}

func decodePaddleSubscription(data json.RawMessage) (*paddleSubscription, error) {
	var sub paddleSubscription
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	return &sub, nil
}

func (s *paddleSubscription) tenantID() uuid.UUID {
	raw, _ := s.CustomData["tenant_id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func (s *paddleSubscription) interval() string {
	if s.BillingCycle == nil {
		return ""
	}
	return s.BillingCycle.Interval
}

func (s *paddleSubscription) cancelScheduled() bool {
	return s.ScheduledChange != nil && s.ScheduledChange.Action == "cancel"
}

func (s *paddleSubscription) period() (start, end *time.Time) {
	var p paddlePeriod
	if len(s.CurrentPeriod) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(s.CurrentPeriod, &p); err != nil {
		return nil, nil
	}
	return parsePaddleTime(p.StartsAt), parsePaddleTime(p.EndsAt)
}

func parsePaddleTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
