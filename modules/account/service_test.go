package account_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoval-dev/tenantcore/modules/account"
	"github.com/mkoval-dev/tenantcore/pkg/membership"
	"github.com/mkoval-dev/tenantcore/pkg/session"
	"github.com/mkoval-dev/tenantcore/pkg/tenant"
	"github.com/mkoval-dev/tenantcore/pkg/user"
)

type env struct {
	users    *user.MemoryStore
	members  *membership.MemoryStore
	sessions *session.Manager
	handler  http.Handler
}

func newEnv(t *testing.T) *env {
	t.Helper()

	users := user.NewMemoryStore()
	members := membership.NewMemoryStore()
	sessions := session.New(session.NewMemoryStore(),
		session.WithCleanupInterval(0),
		session.WithMembershipChecker(func(ctx context.Context, userID, tenantID uuid.UUID) error {
			_, err := members.Get(ctx, userID, tenantID)
			return err
		}),
	)
	t.Cleanup(sessions.Close)

	transport := session.NewHeaderTransport()
	svc := account.NewService(users, sessions, members, transport, slog.New(slog.DiscardHandler))
	return &env{users: users, members: members, sessions: sessions, handler: svc.Router()}
}

func (e *env) addUser(t *testing.T, email, password string) user.User {
	t.Helper()

	hash, err := user.HashPassword(password)
	require.NoError(t, err)
	u := user.User{ID: uuid.New(), Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	require.NoError(t, e.users.Create(context.Background(), &u))
	return u
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		e.addUser(t, "amy@example.com", "s3cret-pass")

		rec := httptest.NewRecorder()
		e.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/signin",
			strings.NewReader(`{"email":"amy@example.com","password":"s3cret-pass"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Session-Token"))
	})

	t.Run("wrong password and unknown email look identical", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		e.addUser(t, "amy@example.com", "s3cret-pass")

		wrongPass := httptest.NewRecorder()
		e.handler.ServeHTTP(wrongPass, httptest.NewRequest(http.MethodPost, "/signin",
			strings.NewReader(`{"email":"amy@example.com","password":"nope"}`)))

		unknownEmail := httptest.NewRecorder()
		e.handler.ServeHTTP(unknownEmail, httptest.NewRequest(http.MethodPost, "/signin",
			strings.NewReader(`{"email":"ghost@example.com","password":"nope"}`)))

		assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
		assert.Equal(t, wrongPass.Body.String(), unknownEmail.Body.String())
	})
}

func TestSignOut(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	u := e.addUser(t, "amy@example.com", "s3cret-pass")
	sess, err := e.sessions.Create(context.Background(), u.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/signout", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err = e.sessions.Validate(context.Background(), sess.Token)
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSwitchTenant(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	e := newEnv(t)
	u := e.addUser(t, "amy@example.com", "s3cret-pass")
	tn := tenant.Tenant{ID: uuid.New(), Name: "Acme", Slug: "acme"}
	e.members.AddTenant(tn)
	require.NoError(t, e.members.Create(ctx, &membership.Membership{
		UserID: u.ID, TenantID: tn.ID, Role: membership.RoleOwner, CreatedAt: time.Now(),
	}))

	sess, err := e.sessions.Create(ctx, u.ID)
	require.NoError(t, err)

	t.Run("member switches", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"tenant_id": tn.ID.String()})
		req := httptest.NewRequest(http.MethodPost, "/switch-tenant", strings.NewReader(string(body)))
		req.Header.Set("Authorization", "Bearer "+sess.Token)
		rec := httptest.NewRecorder()
		e.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-member rejected", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"tenant_id": uuid.NewString()})
		req := httptest.NewRequest(http.MethodPost, "/switch-tenant", strings.NewReader(string(body)))
		req.Header.Set("Authorization", "Bearer "+sess.Token)
		rec := httptest.NewRecorder()
		e.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/switch-tenant",
			strings.NewReader(`{"tenant_id":"`+tn.ID.String()+`"}`))
		rec := httptest.NewRecorder()
		e.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestListTenants(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	e := newEnv(t)
	u := e.addUser(t, "amy@example.com", "s3cret-pass")
	sess, err := e.sessions.Create(ctx, u.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/tenants", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tenants":[]}`, rec.Body.String())
}
