// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"time"

	"github.com/velodrive/platform-api/internal/types"
)

type CreateTenantRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

type UpdateTenantRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Enabled *bool   `json:"enabled,omitempty"`
}

type InviteUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=owner admin member"`
}

type SetMembershipStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended pending removed"`
}

type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

type TenantUserResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type InviteUserResponse struct {
	Status string `json:"status"`
	Link   string `json:"link"`
	Code   string `json:"code"`
}

func toTenantResponse(t *types.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Enabled:   t.Enabled,
		CreatedAt: t.CreatedAt,
	}
}

func toTenantListResponse(tenants []*types.Tenant) []*TenantResponse {
	out := make([]*TenantResponse, len(tenants))
	for i, t := range tenants {
		out[i] = toTenantResponse(t)
	}
	return out
}
