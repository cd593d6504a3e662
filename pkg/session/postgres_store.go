package session

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkoval-dev/tenantcore/pkg/pg"
)

// PostgresStore implements Store backed by a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed session store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, sess *Session) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sessions (token, user_id, active_tenant_id, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		sess.Token, sess.UserID, sess.ActiveTenantID, sess.CreatedAt, sess.ExpiresAt)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, token string) (*Session, error) {
	var sess Session
	err := s.pool.QueryRow(ctx,
		`SELECT token, user_id, active_tenant_id, created_at, expires_at
		 FROM sessions WHERE token = $1`, token).
		Scan(&sess.Token, &sess.UserID, &sess.ActiveTenantID, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (s *PostgresStore) Update(ctx context.Context, sess *Session) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE sessions SET active_tenant_id = $2, expires_at = $3 WHERE token = $1`,
		sess.Token, sess.ActiveTenantID, sess.ExpiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

func (s *PostgresStore) DeleteExpired(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	return err
}
