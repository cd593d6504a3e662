package todos_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoval-dev/tenantcore/modules/todos"
	"github.com/mkoval-dev/tenantcore/pkg/billing"
	"github.com/mkoval-dev/tenantcore/pkg/limits"
	"github.com/mkoval-dev/tenantcore/pkg/membership"
	"github.com/mkoval-dev/tenantcore/pkg/session"
	"github.com/mkoval-dev/tenantcore/pkg/tenant"
	"github.com/mkoval-dev/tenantcore/pkg/user"
)

type env struct {
	users      *user.MemoryStore
	members    *membership.MemoryStore
	sessions   *session.Manager
	subs       *billing.MemoryStore
	store      *todos.MemoryStore
	reconciler *billing.Reconciler
	handler    http.Handler
}

func newEnv(t *testing.T) *env {
	t.Helper()

	log := slog.New(slog.DiscardHandler)

	users := user.NewMemoryStore()
	members := membership.NewMemoryStore()
	sessions := session.New(session.NewMemoryStore(), session.WithCleanupInterval(0))
	t.Cleanup(sessions.Close)

	catalog, err := billing.NewCatalog(context.Background(), billing.StaticSource{
		{
			ID:      "free",
			Default: true,
			Limits:  map[billing.Resource]int64{billing.ResourceTodos: 10},
		},
		{
			ID:             "pro",
			PriceIDMonthly: "pri_pro_m",
			Limits:         map[billing.Resource]int64{billing.ResourceTodos: billing.Unlimited},
		},
	})
	require.NoError(t, err)

	subs := billing.NewMemoryStore()
	store := todos.NewMemoryStore()

	registry := limits.NewRegistry()
	registry.Register(billing.ResourceTodos, store.CountByTenant)
	engine := limits.NewEngine(subs, catalog, registry)

	svc := todos.NewService(store, engine, sessions, users, members,
		session.NewHeaderTransport(), todos.Options{Logger: log})

	return &env{
		users:      users,
		members:    members,
		sessions:   sessions,
		subs:       subs,
		store:      store,
		reconciler: billing.NewReconciler(subs, catalog, log),
		handler:    svc.Router(),
	}
}

func (e *env) addMember(t *testing.T, role membership.Role) (user.User, tenant.Tenant, string) {
	t.Helper()

	ctx := context.Background()
	u := user.User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", CreatedAt: time.Now()}
	require.NoError(t, e.users.Create(ctx, &u))

	tn := tenant.Tenant{ID: uuid.New(), Name: "Acme", Slug: uuid.NewString()}
	e.members.AddTenant(tn)
	require.NoError(t, e.members.Create(ctx, &membership.Membership{
		UserID: u.ID, TenantID: tn.ID, Role: role, CreatedAt: time.Now(),
	}))

	sess, err := e.sessions.Create(ctx, u.ID)
	require.NoError(t, err)
	return u, tn, sess.Token
}

func (e *env) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndList(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	_, _, token := e.addMember(t, membership.RoleMember)

	rec := e.do(http.MethodPost, "/", token, `{"title":"write tests"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(http.MethodGet, "/", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Todos []todos.Todo `json:"todos"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Todos, 1)
	assert.Equal(t, "write tests", resp.Todos[0].Title)
}

func TestCreateRejectsAnonymous(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	rec := e.do(http.MethodPost, "/", "", `{"title":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUsageRequiresAdmin(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	_, _, memberToken := e.addMember(t, membership.RoleMember)
	_, _, adminToken := e.addMember(t, membership.RoleAdmin)

	rec := e.do(http.MethodGet, "/usage", memberToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(http.MethodGet, "/usage", adminToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTenantsAreIsolated(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	_, _, tokenA := e.addMember(t, membership.RoleMember)
	_, _, tokenB := e.addMember(t, membership.RoleMember)

	require.Equal(t, http.StatusCreated,
		e.do(http.MethodPost, "/", tokenA, `{"title":"private"}`).Code)

	rec := e.do(http.MethodGet, "/", tokenB, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"todos":[]}`, rec.Body.String())
}

// Fill a free workspace to its limit, watch the denial carry the
// reading, upgrade through a checkout webhook event, and see the same
// request succeed.
func TestLimitDeniedThenUpgradeAllows(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	_, tn, token := e.addMember(t, membership.RoleMember)

	for i := 0; i < 10; i++ {
		rec := e.do(http.MethodPost, "/", token, fmt.Sprintf(`{"title":"task %d"}`, i))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	denied := e.do(http.MethodPost, "/", token, `{"title":"one too many"}`)
	require.Equal(t, http.StatusForbidden, denied.Code)
	assert.JSONEq(t, `{"error":"plan limit reached","current":10,"limit":10}`, denied.Body.String())

	require.NoError(t, e.reconciler.Apply(context.Background(), billing.CheckoutCompleted{
		TenantID:         tn.ID,
		PlanID:           "pro",
		ProviderSubID:    "sub_up",
		ProviderStatus:   "active",
		ProviderInterval: "month",
	}))

	allowed := e.do(http.MethodPost, "/", token, `{"title":"one too many"}`)
	assert.Equal(t, http.StatusCreated, allowed.Code)

	count, err := e.store.CountByTenant(context.Background(), tn.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11), count)
}

func TestToggle(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	_, _, token := e.addMember(t, membership.RoleMember)

	rec := e.do(http.MethodPost, "/", token, `{"title":"flip me"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created todos.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = e.do(http.MethodPost, "/"+created.ID.String()+"/toggle", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var toggled todos.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	assert.True(t, toggled.Done)

	rec = e.do(http.MethodPost, "/"+uuid.NewString()+"/toggle", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
