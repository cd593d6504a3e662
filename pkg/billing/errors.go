package billing

import "errors"

var (
	// ErrPlanNotFound is returned when no plan matches the lookup.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrSubscriptionNotFound is returned when a tenant has no
	// subscription row. Callers treat this as the default free plan.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrInvalidPlanConfiguration is returned when the plan catalog
	// fails validation at startup.
	ErrInvalidPlanConfiguration = errors.New("invalid plan configuration")

	// ErrSignatureInvalid is returned when a webhook signature does not
	// verify or the timestamp is outside the replay window.
	ErrSignatureInvalid = errors.New("invalid webhook signature")

	// ErrInvalidPayload is returned when a webhook body cannot be decoded.
	ErrInvalidPayload = errors.New("invalid webhook payload")

	// ErrPriceNotConfigured is returned when a paid plan has no price id
	// for the requested billing interval.
	ErrPriceNotConfigured = errors.New("price not configured for interval")

	// ErrNoCheckoutURL is returned when the provider responds without a
	// hosted checkout link.
	ErrNoCheckoutURL = errors.New("provider returned no checkout url")
)
