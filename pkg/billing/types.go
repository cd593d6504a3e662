package billing

// Status is the lifecycle state of a tenant subscription.
type Status string

const (
	StatusActive     Status = "active"
	StatusTrialing   Status = "trialing"
	StatusPastDue    Status = "past_due"
	StatusCanceled   Status = "canceled"
	StatusIncomplete Status = "incomplete"
	StatusPaused     Status = "paused"
)

// Entitled reports whether the subscription grants plan features.
// Past-due subscriptions stay entitled during the grace period.
func (s Status) Entitled() bool {
	switch s {
	case StatusActive, StatusTrialing, StatusPastDue:
		return true
	default:
		return false
	}
}

// Interval is the billing cycle of a subscription.
type Interval string

const (
	IntervalMonthly Interval = "monthly"
	IntervalYearly  Interval = "yearly"
)

// Resource names a countable plan-limited resource.
type Resource string

const (
	ResourceTodos   Resource = "todos"
	ResourceMembers Resource = "members"
	ResourceTenants Resource = "tenants"
)

// Unlimited marks a resource with no cap in a plan's limit map.
const Unlimited int64 = -1

// MapProviderStatus normalizes a payment-provider status string. The
// mapping is total: statuses introduced by the provider after this
// code shipped degrade to active rather than locking paying tenants
// out.
func MapProviderStatus(s string) Status {
	switch s {
	case "active":
		return StatusActive
	case "trialing":
		return StatusTrialing
	case "past_due":
		return StatusPastDue
	case "canceled":
		return StatusCanceled
	case "incomplete", "incomplete_expired":
		return StatusIncomplete
	case "paused":
		return StatusPaused
	default:
		return StatusActive
	}
}

// ParseInterval normalizes a provider billing-cycle string. Anything
// other than a yearly cycle is treated as monthly.
func ParseInterval(s string) Interval {
	if s == "year" || s == "yearly" {
		return IntervalYearly
	}
	return IntervalMonthly
}
