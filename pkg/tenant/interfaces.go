// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/velodrive/platform-api/internal/types"
)

type ServiceInterface interface {
	CreateTenant(ctx context.Context, name string) (*types.Tenant, error)
	GetTenant(ctx context.Context, id string) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	UpdateTenant(ctx context.Context, tenant *types.Tenant, paths []string) (*types.Tenant, error)
	InviteUser(ctx context.Context, tenantID, email, role string) (string, string, error)
	ListTenantUsers(ctx context.Context, tenantID string) ([]*types.TenantUser, error)
	SetMembershipStatus(ctx context.Context, tenantID, userID, status string) error
	ListUserTenants(ctx context.Context, userID string) ([]*types.Tenant, error)
}

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	UpdateTenant(ctx context.Context, tenant *types.Tenant, paths []string) error
	AddMember(ctx context.Context, tenantID, userID, role string) (string, error)
	SetMembershipStatus(ctx context.Context, tenantID, userID, status string) error
	ListMembersByTenantID(ctx context.Context, tenantID string) ([]*types.Membership, error)
	ListTenantsByUserID(ctx context.Context, userID string) ([]*types.Tenant, error)
}

type IdentityClientInterface interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	CreateIdentity(ctx context.Context, email string) (string, error)
	GetIdentityEmail(ctx context.Context, id string) (string, error)
	CreateRecoveryLink(ctx context.Context, identityID string, expiresIn string) (string, string, error)
}
