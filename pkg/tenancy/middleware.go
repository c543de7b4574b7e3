// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/velodrive/platform-api/internal/logging"
	"github.com/velodrive/platform-api/internal/monitoring"
	"github.com/velodrive/platform-api/internal/storage"
	"github.com/velodrive/platform-api/internal/tracing"
	"github.com/velodrive/platform-api/internal/types"
	"github.com/velodrive/platform-api/pkg/authentication"
)

// Session variables read by the row-level security policies. TenantIDKey
// scopes queries to one tenant; PlatformAccessKey is the explicit bypass for
// platform administrators and trusted machine callers, so a bypass is always
// a recorded decision rather than an unset variable.
const (
	TenantIDKey       = "app.tenant_id"
	PlatformAccessKey = "app.platform_access"
)

// Middleware guards routes by tenancy class and, for tenant members, binds
// the database session to their tenant after verifying an active membership.
// Both steps run on every request; nothing is cached across requests, so a
// membership revoked mid-session takes effect on the very next request.
type Middleware struct {
	storage  MembershipCheckerInterface
	sessions SessionStoreInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RequireClass enforces the route's tenancy class.
//
// Platform admins pass every class unchecked: the backend trusts the token
// flag completely and leaves the cleaner platform/tenant screen separation to
// the frontend. Tenant members must present a tenant ID and hold an active
// membership for exactly that tenant before the session is bound.
func (m *Middleware) RequireClass(class Class) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "tenancy.Middleware.RequireClass")
			defer span.End()

			principal, ok := authentication.PrincipalFromContext(ctx)
			if !ok {
				m.errorResponse(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			if principal.IsPlatformAdmin() {
				// No membership lookup and no tenant binding; the
				// bypass flag makes RLS let the queries through.
				if err := m.sessions.SetLocalConfig(ctx, PlatformAccessKey, "on"); err != nil {
					m.logger.Errorf("failed to grant platform access: %v", err)
					m.errorResponse(w, http.StatusInternalServerError, "internal error")
					return
				}

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if class == PlatformOnly {
				m.logger.Security().AuthzFailure(principal.Subject, "platform route access")
				m.errorResponse(w, http.StatusForbidden, ErrForbidden.Error())
				return
			}

			if principal.TenantID == "" {
				m.logger.Security().AuthnFailure(principal.Subject, "no tenant context")
				m.errorResponse(w, http.StatusUnauthorized, "no tenant context")
				return
			}

			boundCtx, err := m.bindTenant(ctx, principal)
			if err != nil {
				if errors.Is(err, ErrForbidden) {
					m.logger.Security().AuthzFailure(principal.Subject, "tenant membership")
					m.errorResponse(w, http.StatusForbidden, "inactive tenant membership")
					return
				}
				m.logger.Errorf("failed to bind tenant session: %v", err)
				m.errorResponse(w, http.StatusInternalServerError, "internal error")
				return
			}

			next.ServeHTTP(w, r.WithContext(boundCtx))
		})
	}
}

// GrantPlatformAccess marks the request's transaction as platform-scoped.
// For trusted machine callers behind the gateway guard, which carry no
// principal at all.
func (m *Middleware) GrantPlatformAccess() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "tenancy.Middleware.GrantPlatformAccess")
			defer span.End()

			if err := m.sessions.SetLocalConfig(ctx, PlatformAccessKey, "on"); err != nil {
				m.logger.Errorf("failed to grant platform access: %v", err)
				m.errorResponse(w, http.StatusInternalServerError, "internal error")
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bindTenant verifies the (tenant, user) membership and sets the tenant ID on
// the request's transaction. Lookup then bind then proceed, strictly in that
// order: a failed lookup never leaves a binding behind, and a failed bind is
// rolled back with the transaction.
func (m *Middleware) bindTenant(ctx context.Context, principal *authentication.Principal) (context.Context, error) {
	membership, err := m.storage.GetMembership(ctx, principal.TenantID, principal.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("membership lookup failed: %w", err)
	}

	if membership.Status != types.MembershipStatusActive {
		return nil, ErrForbidden
	}

	if err := m.sessions.SetLocalConfig(ctx, TenantIDKey, principal.TenantID); err != nil {
		return nil, fmt.Errorf("failed to bind tenant: %w", err)
	}

	return WithTenant(ctx, principal.TenantID), nil
}

func (m *Middleware) errorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  status,
		"message": message,
	}); err != nil {
		m.logger.Errorf("failed to encode error response: %v", err)
	}
}

func NewMiddleware(
	storage MembershipCheckerInterface,
	sessions SessionStoreInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Middleware {
	return &Middleware{
		storage:  storage,
		sessions: sessions,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
