package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkoval-dev/tenantcore/pkg/pg"
)

// PostgresStore implements Store backed by a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed subscription store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const subscriptionColumns = `tenant_id, plan_id, provider_sub_id, status, billing_interval,
	period_start, period_end, cancel_at_period_end, created_at, updated_at`

func (s *PostgresStore) Get(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE tenant_id = $1`, tenantID)
	return scanSubscription(row)
}

func (s *PostgresStore) GetByProviderID(ctx context.Context, providerSubID string) (*Subscription, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE provider_sub_id = $1`, providerSubID)
	return scanSubscription(row)
}

func (s *PostgresStore) Save(ctx context.Context, sub *Subscription) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO subscriptions (tenant_id, plan_id, provider_sub_id, status, billing_interval,
			period_start, period_end, cancel_at_period_end, created_at, updated_at)
		 VALUES ($1, $2, nullif($3, ''), $4, $5, $6, $7, $8, now(), now())
		 ON CONFLICT (tenant_id) DO UPDATE SET
			plan_id = excluded.plan_id,
			provider_sub_id = excluded.provider_sub_id,
			status = excluded.status,
			billing_interval = excluded.billing_interval,
			period_start = excluded.period_start,
			period_end = excluded.period_end,
			cancel_at_period_end = excluded.cancel_at_period_end,
			updated_at = now()`,
		sub.TenantID, sub.PlanID, sub.ProviderSubID, string(sub.Status), string(sub.Interval),
		sub.PeriodStart, sub.PeriodEnd, sub.CancelAtPeriodEnd)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*Subscription, error) {
	var (
		sub        Subscription
		providerID *string
	)
	err := row.Scan(&sub.TenantID, &sub.PlanID, &providerID, &sub.Status, &sub.Interval,
		&sub.PeriodStart, &sub.PeriodEnd, &sub.CancelAtPeriodEnd, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	if providerID != nil {
		sub.ProviderSubID = *providerID
	}
	return &sub, nil
}
