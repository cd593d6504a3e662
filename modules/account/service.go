// Package account exposes the HTTP surface for signing in and out and
// for moving between workspaces.
package account

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mkoval-dev/tenantcore/pkg/membership"
	"github.com/mkoval-dev/tenantcore/pkg/session"
	"github.com/mkoval-dev/tenantcore/pkg/user"
)

// Service wires identity endpoints onto a router.
type Service struct {
	users     user.Store
	sessions  *session.Manager
	members   membership.Store
	transport session.Transport
	log       *slog.Logger
}

// NewService creates the account service.
func NewService(users user.Store, sessions *session.Manager, members membership.Store, transport session.Transport, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		users:     users,
		sessions:  sessions,
		members:   members,
		transport: transport,
		log:       log,
	}
}

// Router returns the account endpoints.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/signin", s.handleSignIn)
	r.Post("/signout", s.handleSignOut)
	r.Post("/switch-tenant", s.handleSwitchTenant)
	r.Get("/tenants", s.handleListTenants)
	return r
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Same response as a bad password so probing emails learns nothing.
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.log.ErrorContext(r.Context(), "sign-in lookup failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := user.VerifyPassword(u.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	sess, err := s.sessions.Create(r.Context(), u.ID)
	if err != nil {
		s.log.ErrorContext(r.Context(), "session creation failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.transport.Embed(w, sess.Token)
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": u.ID,
		"email":   u.Email,
	})
}

func (s *Service) handleSignOut(w http.ResponseWriter, r *http.Request) {
	token, err := s.transport.Extract(r)
	if err == nil {
		if err := s.sessions.Destroy(r.Context(), token); err != nil {
			s.log.ErrorContext(r.Context(), "session destroy failed", slog.Any("error", err))
		}
	}
	s.transport.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

type switchTenantRequest struct {
	TenantID uuid.UUID `json:"tenant_id"`
}

func (s *Service) handleSwitchTenant(w http.ResponseWriter, r *http.Request) {
	token, err := s.transport.Extract(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req switchTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TenantID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := s.sessions.SwitchTenant(r.Context(), token, req.TenantID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrSessionExpired):
			writeError(w, http.StatusUnauthorized, "authentication required")
		case errors.Is(err, membership.ErrNotMember):
			writeError(w, http.StatusForbidden, "access denied")
		default:
			s.log.ErrorContext(r.Context(), "tenant switch failed", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"active_tenant_id": sess.ActiveTenantID,
	})
}

func (s *Service) handleListTenants(w http.ResponseWriter, r *http.Request) {
	token, err := s.transport.Extract(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sess, err := s.sessions.Validate(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	list, err := s.members.ListByUser(r.Context(), sess.UserID)
	if err != nil {
		s.log.ErrorContext(r.Context(), "membership listing failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if list == nil {
		list = []membership.TenantMembership{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"tenants": list})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
