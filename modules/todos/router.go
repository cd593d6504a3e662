package todos

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkoval-dev/tenantcore/pkg/billing"
	"github.com/mkoval-dev/tenantcore/pkg/guard"
	"github.com/mkoval-dev/tenantcore/pkg/limits"
	"github.com/mkoval-dev/tenantcore/pkg/membership"
	"github.com/mkoval-dev/tenantcore/pkg/session"
	"github.com/mkoval-dev/tenantcore/pkg/user"
)

// Service exposes the todo endpoints behind the authorization
// pipeline. Creation is quota-checked against the workspace plan.
type Service struct {
	store  Store
	engine *limits.Engine
	log    *slog.Logger

	member guard.Stage[guard.Request, guard.Scoped]
	admin  guard.Stage[guard.Request, guard.Scoped]
	token  guard.TokenFunc
}

// Options configures optional service dependencies.
type Options struct {
	// Pool, when set, is bound to request contexts for downstream stores.
	Pool *pgxpool.Pool
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// NewService builds the todo service. Pipelines are composed once at
// construction, not per request.
func NewService(store Store, engine *limits.Engine, sessions *session.Manager, users user.Store, members membership.Store, transport session.Transport, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	scoped := guard.Then(guard.Authenticate(sessions, users), guard.WithTenant(members))
	if opts.Pool != nil {
		scoped = guard.Then(guard.Bind(opts.Pool), scoped)
	}

	return &Service{
		store:  store,
		engine: engine,
		log:    log,
		member: guard.Then(scoped, guard.MinRole(membership.RoleMember)),
		admin:  guard.Then(scoped, guard.MinRole(membership.RoleAdmin)),
		token:  transport.Extract,
	}
}

// Router returns the todo endpoints.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", guard.Wrap(s.member, s.token, s.handleList))
	r.Post("/", guard.Wrap(s.member, s.token, s.handleCreate))
	r.Post("/{id}/toggle", guard.Wrap(s.member, s.token, s.handleToggle))
	r.Get("/usage", guard.Wrap(s.admin, s.token, s.handleUsage))
	return r
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request, v guard.Scoped) {
	items, err := s.store.ListByTenant(r.Context(), v.TenantID)
	if err != nil {
		s.internalError(w, r, "todo listing failed", err)
		return
	}
	if items == nil {
		items = []Todo{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"todos": items})
}

type createRequest struct {
	Title string `json:"title"`
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request, v guard.Scoped) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	// Quota check runs synchronously right before the insert. It is
	// advisory under concurrency; small transient overshoot is accepted.
	if err := s.engine.CanCreate(r.Context(), v.TenantID, billing.ResourceTodos); err != nil {
		var le *limits.LimitError
		if errors.As(err, &le) {
			writeJSON(w, http.StatusForbidden, map[string]any{
				"error":   "plan limit reached",
				"current": le.Current,
				"limit":   le.Limit,
			})
			return
		}
		s.internalError(w, r, "quota check failed", err)
		return
	}

	todo := &Todo{
		ID:        uuid.New(),
		TenantID:  v.TenantID,
		UserID:    v.User.ID,
		Title:     req.Title,
		CreatedAt: time.Now(),
	}
	if err := s.store.Create(r.Context(), todo); err != nil {
		s.internalError(w, r, "todo creation failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (s *Service) handleToggle(w http.ResponseWriter, r *http.Request, v guard.Scoped) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid todo id"})
		return
	}

	todo, err := s.store.Toggle(r.Context(), v.TenantID, id)
	if err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "todo not found"})
			return
		}
		s.internalError(w, r, "todo toggle failed", err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Service) handleUsage(w http.ResponseWriter, r *http.Request, v guard.Scoped) {
	info, err := s.engine.Usage(r.Context(), v.TenantID, billing.ResourceTodos)
	if err != nil {
		s.internalError(w, r, "usage lookup failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"current":    info.Current,
		"limit":      info.Limit,
		"percentage": info.Percentage(),
		"level":      info.NudgeLevel(),
	})
}

func (s *Service) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.log.ErrorContext(r.Context(), msg, slog.Any("error", err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
