package todos

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

// NewPostgresStore creates a PostgreSQL-backed todo store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, t *Todo) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO todos (id, tenant_id, user_id, title, done, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.TenantID, t.UserID, t.Title, t.Done, t.CreatedAt)
	return err
}

func (s *PostgresStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]Todo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, tenant_id, user_id, title, done, created_at
		 FROM todos WHERE tenant_id = $1 ORDER BY created_at ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Todo
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.TenantID, &t.UserID, &t.Title, &t.Done, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Toggle(ctx context.Context, tenantID, id uuid.UUID) (*Todo, error) {
	var t Todo
	err := s.pool.QueryRow(ctx,
		`UPDATE todos SET done = NOT done
		 WHERE tenant_id = $1 AND id = $2
		 RETURNING id, tenant_id, user_id, title, done, created_at`,
		tenantID, id).
		Scan(&t.ID, &t.TenantID, &t.UserID, &t.Title, &t.Done, &t.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *PostgresStore) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM todos WHERE tenant_id = $1`, tenantID).Scan(&count)
	return count, err
}
