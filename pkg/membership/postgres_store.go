package membership

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

// NewPostgresStore creates a new PostgreSQL-backed membership store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, userID, tenantID uuid.UUID) (*Membership, error) {
	var (
		m        Membership
		roleName string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, tenant_id, role, created_at
		 FROM memberships WHERE user_id = $1 AND tenant_id = $2`,
		userID, tenantID).Scan(&m.UserID, &m.TenantID, &roleName, &m.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	if m.Role, err = ParseRole(roleName); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]TenantMembership, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT t.id, t.name, t.slug, t.created_at, m.role, m.created_at
		 FROM memberships m
		 JOIN tenants t ON t.id = m.tenant_id
		 WHERE m.user_id = $1
		 ORDER BY m.created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TenantMembership
	for rows.Next() {
		var (
			tm       TenantMembership
			roleName string
		)
		if err := rows.Scan(&tm.Tenant.ID, &tm.Tenant.Name, &tm.Tenant.Slug,
			&tm.Tenant.CreatedAt, &roleName, &tm.JoinedAt); err != nil {
			return nil, err
		}
		if tm.Role, err = ParseRole(roleName); err != nil {
			return nil, err
		}
		out = append(out, tm)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Create(ctx context.Context, m *Membership) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO memberships (user_id, tenant_id, role, created_at)
		 VALUES ($1, $2, $3, $4)`,
		m.UserID, m.TenantID, m.Role.String(), m.CreatedAt)
	if pg.IsDuplicateKeyError(err) {
		return ErrAlreadyMember
	}
	return err
}

func (s *PostgresStore) CountByRole(ctx context.Context, tenantID uuid.UUID, role Role) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM memberships WHERE tenant_id = $1 AND role = $2`,
		tenantID, role.String()).Scan(&count)
	return count, err
}
