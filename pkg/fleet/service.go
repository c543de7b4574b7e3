// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package fleet

import (
	"context"
	"errors"
	"fmt"

	"github.com/velodrive/platform-api/internal/logging"
	"github.com/velodrive/platform-api/internal/monitoring"
	"github.com/velodrive/platform-api/internal/storage"
	"github.com/velodrive/platform-api/internal/tracing"
	"github.com/velodrive/platform-api/internal/types"
	"github.com/velodrive/platform-api/pkg/tenancy"
)

// Service implements the tenant-facing fleet operations. Every method runs
// inside the request transaction, so reads and writes only ever see the rows
// of the tenant bound to the session.
type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (s *Service) CreateVehicle(ctx context.Context, v *types.Vehicle) (*types.Vehicle, error) {
	ctx, span := s.tracer.Start(ctx, "fleet.Service.CreateVehicle")
	defer span.End()

	tenantID, ok := tenancy.TenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant bound to session")
	}
	v.TenantID = tenantID

	created, err := s.storage.CreateVehicle(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return created, nil
}

func (s *Service) GetVehicle(ctx context.Context, id string) (*types.Vehicle, error) {
	ctx, span := s.tracer.Start(ctx, "fleet.Service.GetVehicle")
	defer span.End()

	return s.storage.GetVehicleByID(ctx, id)
}

func (s *Service) ListVehicles(ctx context.Context) ([]*types.Vehicle, error) {
	ctx, span := s.tracer.Start(ctx, "fleet.Service.ListVehicles")
	defer span.End()

	return s.storage.ListVehicles(ctx)
}

func (s *Service) UpdateVehicle(ctx context.Context, vehicle *types.Vehicle, paths []string) (*types.Vehicle, error) {
	ctx, span := s.tracer.Start(ctx, "fleet.Service.UpdateVehicle")
	defer span.End()

	if err := s.storage.UpdateVehicle(ctx, vehicle, paths); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	updated, err := s.storage.GetVehicleByID(ctx, vehicle.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get updated vehicle: %w", err)
	}

	return updated, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "fleet.Service.DeleteVehicle")
	defer span.End()

	return s.storage.DeleteVehicle(ctx, id)
}

func (s *Service) CreateBooking(ctx context.Context, b *types.Booking) (*types.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "fleet.Service.CreateBooking")
	defer span.End()

	tenantID, ok := tenancy.TenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant bound to session")
	}
	b.TenantID = tenantID

	// The vehicle lookup doubles as a tenancy check: a vehicle belonging to
	// another tenant is simply not visible here.
	vehicle, err := s.storage.GetVehicleByID(ctx, b.VehicleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("vehicle %s: %w", b.VehicleID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if !vehicle.Enabled {
		return nil, fmt.Errorf("vehicle %s is not available for booking", vehicle.ID)
	}

	b.Status = "requested"
	b.PaymentStatus = types.PaymentStatusPending

	created, err := s.storage.CreateBooking(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return created, nil
}

func (s *Service) GetBooking(ctx context.Context, id string) (*types.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "fleet.Service.GetBooking")
	defer span.End()

	return s.storage.GetBookingByID(ctx, id)
}

func (s *Service) ListBookings(ctx context.Context) ([]*types.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "fleet.Service.ListBookings")
	defer span.End()

	return s.storage.ListBookings(ctx)
}
