// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package fleet

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/velodrive/platform-api/internal/storage"
	"github.com/velodrive/platform-api/internal/types"
	"github.com/velodrive/platform-api/pkg/tenancy"
)

//go:generate mockgen -build_flags=--mod=mod -package fleet -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package fleet -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package fleet -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package fleet -destination ./mock_interfaces.go -source=./interfaces.go

func setupServiceMocks(t *testing.T) (*gomock.Controller, *MockStorageInterface, *Service) {
	ctrl := gomock.NewController(t)

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	).AnyTimes()

	return ctrl, mockStorage, NewService(mockStorage, mockTracer, mockMonitor, mockLogger)
}

func boundContext(tenantID string) context.Context {
	return tenancy.WithTenant(context.Background(), tenantID)
}

func TestService_CreateVehicle(t *testing.T) {
	ctrl, mockStorage, service := setupServiceMocks(t)
	defer ctrl.Finish()

	mockStorage.EXPECT().CreateVehicle(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, v *types.Vehicle) (*types.Vehicle, error) {
			if v.TenantID != "tenant-1" {
				t.Errorf("expected tenant ID stamped from context, got %q", v.TenantID)
			}
			v.ID = "vehicle-1"
			return v, nil
		},
	)

	created, err := service.CreateVehicle(boundContext("tenant-1"), &types.Vehicle{
		Name:    "S-Class 1",
		Plate:   "VD-001",
		Class:   "luxury",
		Seats:   4,
		Enabled: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "vehicle-1" {
		t.Errorf("expected vehicle ID vehicle-1, got %q", created.ID)
	}
}

func TestService_CreateVehicle_NoTenantBound(t *testing.T) {
	ctrl, _, service := setupServiceMocks(t)
	defer ctrl.Finish()

	_, err := service.CreateVehicle(context.Background(), &types.Vehicle{Name: "ghost"})
	if err == nil {
		t.Fatal("expected error when no tenant is bound")
	}
}

func TestService_CreateBooking(t *testing.T) {
	testCases := []struct {
		name        string
		setupMocks  func(*MockStorageInterface)
		expectedErr error
	}{
		{
			name: "success",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetVehicleByID(gomock.Any(), "vehicle-1").Return(&types.Vehicle{
					ID:       "vehicle-1",
					TenantID: "tenant-1",
					Enabled:  true,
				}, nil)
				s.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, b *types.Booking) (*types.Booking, error) {
						if b.TenantID != "tenant-1" {
							t.Errorf("expected tenant ID stamped from context, got %q", b.TenantID)
						}
						if b.Status != "requested" {
							t.Errorf("expected initial status requested, got %q", b.Status)
						}
						if b.PaymentStatus != types.PaymentStatusPending {
							t.Errorf("expected initial payment status pending, got %q", b.PaymentStatus)
						}
						b.ID = "booking-1"
						return b, nil
					},
				)
			},
		},
		{
			name: "vehicle of another tenant is invisible",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetVehicleByID(gomock.Any(), "vehicle-1").Return(nil, storage.ErrNotFound)
			},
			expectedErr: storage.ErrNotFound,
		},
		{
			name: "disabled vehicle",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetVehicleByID(gomock.Any(), "vehicle-1").Return(&types.Vehicle{
					ID:       "vehicle-1",
					TenantID: "tenant-1",
					Enabled:  false,
				}, nil)
			},
			expectedErr: errors.New("not available"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl, mockStorage, service := setupServiceMocks(t)
			defer ctrl.Finish()

			tc.setupMocks(mockStorage)

			booking, err := service.CreateBooking(boundContext("tenant-1"), &types.Booking{
				VehicleID:  "vehicle-1",
				Pickup:     "Airport",
				Dropoff:    "Downtown",
				PriceCents: 12000,
				Currency:   "EUR",
			})

			if tc.expectedErr != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if errors.Is(tc.expectedErr, storage.ErrNotFound) && !errors.Is(err, storage.ErrNotFound) {
					t.Errorf("expected not found error, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if booking.ID != "booking-1" {
				t.Errorf("expected booking ID booking-1, got %q", booking.ID)
			}
		})
	}
}
