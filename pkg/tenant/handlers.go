// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"encoding/json"
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/velodrive/platform-api/internal/logging"
	"github.com/velodrive/platform-api/internal/monitoring"
	"github.com/velodrive/platform-api/internal/storage"
	"github.com/velodrive/platform-api/internal/tracing"
	"github.com/velodrive/platform-api/internal/types"
	"github.com/velodrive/platform-api/pkg/authentication"
)

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		validate: validator.New(),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// RegisterPlatformEndpoints mounts tenant administration for platform admins.
func (a *API) RegisterPlatformEndpoints(router chi.Router) {
	router.Post("/api/v0/tenants", a.createTenant)
	router.Get("/api/v0/tenants", a.listTenants)
	router.Get("/api/v0/tenants/{id}", a.getTenant)
	router.Patch("/api/v0/tenants/{id}", a.updateTenant)
	router.Post("/api/v0/tenants/{id}/users", a.inviteUser)
	router.Get("/api/v0/tenants/{id}/users", a.listTenantUsers)
	router.Patch("/api/v0/tenants/{id}/users/{userID}", a.setMembershipStatus)
}

// RegisterUserEndpoints mounts routes usable by any authenticated caller.
func (a *API) RegisterUserEndpoints(router chi.Router) {
	router.Get("/api/v0/me/tenants", a.listMyTenants)
}

func (a *API) createTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.createTenant")
	defer span.End()

	var req CreateTenantRequest
	if err := a.decode(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	created, err := a.service.CreateTenant(ctx, req.Name)
	if err != nil {
		a.internalError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, toTenantResponse(created))
}

func (a *API) listTenants(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.listTenants")
	defer span.End()

	tenants, err := a.service.ListTenants(ctx)
	if err != nil {
		a.internalError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, toTenantListResponse(tenants))
}

func (a *API) getTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.getTenant")
	defer span.End()

	t, err := a.service.GetTenant(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, "tenant not found")
			return
		}
		a.internalError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, toTenantResponse(t))
}

func (a *API) updateTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.updateTenant")
	defer span.End()

	var req UpdateTenantRequest
	if err := a.decode(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	t := &types.Tenant{ID: chi.URLParam(r, "id")}
	var paths []string
	if req.Name != nil {
		t.Name = *req.Name
		paths = append(paths, "name")
	}
	if req.Enabled != nil {
		t.Enabled = *req.Enabled
		paths = append(paths, "enabled")
	}

	updated, err := a.service.UpdateTenant(ctx, t, paths)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, "tenant not found")
			return
		}
		a.internalError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, toTenantResponse(updated))
}

func (a *API) inviteUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.inviteUser")
	defer span.End()

	var req InviteUserRequest
	if err := a.decode(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	link, code, err := a.service.InviteUser(ctx, chi.URLParam(r, "id"), req.Email, req.Role)
	if err != nil {
		a.internalError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, &InviteUserResponse{
		Status: "invited",
		Link:   link,
		Code:   code,
	})
}

func (a *API) listTenantUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.listTenantUsers")
	defer span.End()

	users, err := a.service.ListTenantUsers(ctx, chi.URLParam(r, "id"))
	if err != nil {
		a.internalError(w, err)
		return
	}

	out := make([]*TenantUserResponse, len(users))
	for i, u := range users {
		out[i] = &TenantUserResponse{
			UserID: u.UserID,
			Email:  u.Email,
			Role:   u.Role,
			Status: u.Status,
		}
	}

	a.writeJSON(w, http.StatusOK, out)
}

func (a *API) setMembershipStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.setMembershipStatus")
	defer span.End()

	var req SetMembershipStatusRequest
	if err := a.decode(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	err := a.service.SetMembershipStatus(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "userID"), req.Status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, "membership not found")
			return
		}
		a.internalError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

func (a *API) listMyTenants(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.listMyTenants")
	defer span.End()

	principal, ok := authentication.PrincipalFromContext(ctx)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	tenants, err := a.service.ListUserTenants(ctx, principal.Subject)
	if err != nil {
		a.internalError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, toTenantListResponse(tenants))
}

func (a *API) decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return a.validate.Struct(v)
}

func (a *API) badRequest(w http.ResponseWriter, err error) {
	a.logger.Debugf("invalid request: %v", err)
	a.writeError(w, http.StatusBadRequest, "invalid request body")
}

func (a *API) internalError(w http.ResponseWriter, err error) {
	a.logger.Errorf("request failed: %v", err)
	a.writeError(w, http.StatusInternalServerError, "internal error")
}

func (a *API) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]interface{}{
		"status":  status,
		"message": message,
	})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}
