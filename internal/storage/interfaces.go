// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/velodrive/platform-api/internal/types"
)

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	UpdateTenant(ctx context.Context, tenant *types.Tenant, paths []string) error
	SetTenantStatus(ctx context.Context, id string, enabled bool) error
	DeleteTenant(ctx context.Context, id string) error

	GetMembership(ctx context.Context, tenantID, userID string) (*types.Membership, error)
	AddMember(ctx context.Context, tenantID, userID, role string) (string, error)
	SetMembershipStatus(ctx context.Context, tenantID, userID, status string) error
	ListMembersByTenantID(ctx context.Context, tenantID string) ([]*types.Membership, error)
	ListTenantsByUserID(ctx context.Context, userID string) ([]*types.Tenant, error)

	CreateVehicle(ctx context.Context, v *types.Vehicle) (*types.Vehicle, error)
	GetVehicleByID(ctx context.Context, id string) (*types.Vehicle, error)
	ListVehicles(ctx context.Context) ([]*types.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *types.Vehicle, paths []string) error
	DeleteVehicle(ctx context.Context, id string) error

	CreateBooking(ctx context.Context, b *types.Booking) (*types.Booking, error)
	GetBookingByID(ctx context.Context, id string) (*types.Booking, error)
	ListBookings(ctx context.Context) ([]*types.Booking, error)
	SetBookingPaymentStatus(ctx context.Context, id, status string) error
}
