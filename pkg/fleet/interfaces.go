// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package fleet

import (
	"context"

	"github.com/velodrive/platform-api/internal/types"
)

type ServiceInterface interface {
	CreateVehicle(ctx context.Context, v *types.Vehicle) (*types.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*types.Vehicle, error)
	ListVehicles(ctx context.Context) ([]*types.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *types.Vehicle, paths []string) (*types.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error

	CreateBooking(ctx context.Context, b *types.Booking) (*types.Booking, error)
	GetBooking(ctx context.Context, id string) (*types.Booking, error)
	ListBookings(ctx context.Context) ([]*types.Booking, error)
}

// StorageInterface is the subset of the storage layer the fleet service uses.
// None of these take a tenant ID; row visibility is enforced by the database
// through the per-request tenant binding.
type StorageInterface interface {
	CreateVehicle(ctx context.Context, v *types.Vehicle) (*types.Vehicle, error)
	GetVehicleByID(ctx context.Context, id string) (*types.Vehicle, error)
	ListVehicles(ctx context.Context) ([]*types.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *types.Vehicle, paths []string) error
	DeleteVehicle(ctx context.Context, id string) error

	CreateBooking(ctx context.Context, b *types.Booking) (*types.Booking, error)
	GetBookingByID(ctx context.Context, id string) (*types.Booking, error)
	ListBookings(ctx context.Context) ([]*types.Booking, error)
}
