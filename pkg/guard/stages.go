package guard

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkoval-dev/tenantcore/pkg/membership"
	"github.com/mkoval-dev/tenantcore/pkg/pg"
	"github.com/mkoval-dev/tenantcore/pkg/session"
	"github.com/mkoval-dev/tenantcore/pkg/tenant"
	"github.com/mkoval-dev/tenantcore/pkg/user"
)

// Request is the entry point of every pipeline: a bare token extracted
// from the transport. An empty token means the request is anonymous.
type Request struct {
	Token string
}

// Authed is a request with a resolved session and user.
type Authed struct {
	User    user.User
	Session session.Session
}

// Scoped is an authed request bound to a tenant with the user's role
// in it.
type Scoped struct {
	Authed
	TenantID uuid.UUID
	Role     membership.Role
}

// Bind attaches a database pool to the downstream context so handlers
// and stores can reach it without plumbing.
func Bind(pool *pgxpool.Pool) Stage[Request, Request] {
	return func(ctx context.Context, in Request) (context.Context, Request, error) {
		return pg.WithPool(ctx, pool), in, nil
	}
}

// Authenticate resolves the token to a session and loads its user.
// Any failure collapses to ErrUnauthenticated; the caller learns
// nothing about whether the token was absent, unknown, or expired.
func Authenticate(sessions *session.Manager, users user.Store) Stage[Request, Authed] {
	return func(ctx context.Context, in Request) (context.Context, Authed, error) {
		sess, err := sessions.Validate(ctx, in.Token)
		if err != nil {
			return ctx, Authed{}, ErrUnauthenticated
		}

		u, err := users.GetByID(ctx, sess.UserID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return ctx, Authed{}, ErrUnauthenticated
			}
			return ctx, Authed{}, err
		}

		ctx = session.WithSession(ctx, sess)
		return ctx, Authed{User: *u, Session: *sess}, nil
	}
}

// WithTenant resolves the tenant scope for an authed request. The
// session's active tenant wins; without one the user's first workspace
// by join time is used. A user with no memberships gets
// ErrNoActiveTenant; a user whose active tenant no longer admits them
// gets ErrForbidden.
func WithTenant(members membership.Store) Stage[Authed, Scoped] {
	return func(ctx context.Context, in Authed) (context.Context, Scoped, error) {
		tenantID, err := resolveTenant(ctx, members, in)
		if err != nil {
			return ctx, Scoped{}, err
		}

		m, err := members.Get(ctx, in.User.ID, tenantID)
		if err != nil {
			if errors.Is(err, membership.ErrNotMember) {
				return ctx, Scoped{}, ErrForbidden
			}
			return ctx, Scoped{}, err
		}

		ctx = tenant.WithID(ctx, tenantID)
		return ctx, Scoped{Authed: in, TenantID: tenantID, Role: m.Role}, nil
	}
}

func resolveTenant(ctx context.Context, members membership.Store, in Authed) (uuid.UUID, error) {
	if in.Session.ActiveTenantID != nil {
		return *in.Session.ActiveTenantID, nil
	}

	list, err := members.ListByUser(ctx, in.User.ID)
	if err != nil {
		return uuid.Nil, err
	}
	if len(list) == 0 {
		return uuid.Nil, ErrNoActiveTenant
	}
	return list[0].Tenant.ID, nil
}

// MinRole rejects scoped requests below the given role.
func MinRole(min membership.Role) Stage[Scoped, Scoped] {
	return func(ctx context.Context, in Scoped) (context.Context, Scoped, error) {
		if !in.Role.AtLeast(min) {
			return ctx, Scoped{}, ErrForbidden
		}
		return ctx, in, nil
	}
}

// Admin rejects authed requests from users without the platform admin
// flag. It operates before tenant scoping: platform administration is
// not a tenant role.
func Admin() Stage[Authed, Authed] {
	return func(ctx context.Context, in Authed) (context.Context, Authed, error) {
		if !in.User.IsAdmin {
			return ctx, Authed{}, ErrForbidden
		}
		return ctx, in, nil
	}
}
