// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/velodrive/platform-api/internal/storage"
	"github.com/velodrive/platform-api/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_interfaces.go -source=./interfaces.go

func setupServiceMocks(t *testing.T) (*gomock.Controller, *MockStorageInterface, *MockIdentityClientInterface, *MockTracingInterface, *MockMonitorInterface, *MockLoggerInterface) {
	ctrl := gomock.NewController(t)

	mockStorage := NewMockStorageInterface(ctrl)
	mockIdentities := NewMockIdentityClientInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	).AnyTimes()
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	return ctrl, mockStorage, mockIdentities, mockTracer, mockMonitor, mockLogger
}

func TestService_CreateTenant(t *testing.T) {
	ctrl, mockStorage, mockIdentities, mockTracer, mockMonitor, mockLogger := setupServiceMocks(t)
	defer ctrl.Finish()

	mockStorage.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, tenant *types.Tenant) (*types.Tenant, error) {
			if tenant.Name != "Acme Chauffeurs" {
				t.Errorf("expected tenant name to be passed through, got %q", tenant.Name)
			}
			if !tenant.Enabled {
				t.Error("expected new tenant to be enabled")
			}
			tenant.ID = "tenant-1"
			return tenant, nil
		},
	)

	service := NewService(mockStorage, mockIdentities, "24h", mockTracer, mockMonitor, mockLogger)

	created, err := service.CreateTenant(context.Background(), "Acme Chauffeurs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "tenant-1" {
		t.Errorf("expected tenant ID tenant-1, got %q", created.ID)
	}
}

func TestService_InviteUser(t *testing.T) {
	testCases := []struct {
		name         string
		setupMocks   func(*MockStorageInterface, *MockIdentityClientInterface)
		expectedErr  bool
		expectedLink string
	}{
		{
			name: "existing identity",
			setupMocks: func(s *MockStorageInterface, i *MockIdentityClientInterface) {
				i.EXPECT().GetIdentityIDByEmail(gomock.Any(), "driver@example.com").Return("identity-1", nil)
				s.EXPECT().AddMember(gomock.Any(), "tenant-1", "identity-1", "member").Return("membership-1", nil)
				i.EXPECT().CreateRecoveryLink(gomock.Any(), "identity-1", "24h").Return("https://recover", "code-1", nil)
			},
			expectedLink: "https://recover",
		},
		{
			name: "new identity is provisioned",
			setupMocks: func(s *MockStorageInterface, i *MockIdentityClientInterface) {
				i.EXPECT().GetIdentityIDByEmail(gomock.Any(), "driver@example.com").Return("", nil)
				i.EXPECT().CreateIdentity(gomock.Any(), "driver@example.com").Return("identity-2", nil)
				s.EXPECT().AddMember(gomock.Any(), "tenant-1", "identity-2", "member").Return("membership-2", nil)
				i.EXPECT().CreateRecoveryLink(gomock.Any(), "identity-2", "24h").Return("https://recover", "code-2", nil)
			},
			expectedLink: "https://recover",
		},
		{
			name: "re-invite of existing member regenerates link",
			setupMocks: func(s *MockStorageInterface, i *MockIdentityClientInterface) {
				i.EXPECT().GetIdentityIDByEmail(gomock.Any(), "driver@example.com").Return("identity-1", nil)
				s.EXPECT().AddMember(gomock.Any(), "tenant-1", "identity-1", "member").Return("", storage.ErrDuplicateKey)
				i.EXPECT().CreateRecoveryLink(gomock.Any(), "identity-1", "24h").Return("https://recover-again", "code-3", nil)
			},
			expectedLink: "https://recover-again",
		},
		{
			name: "identity lookup failure",
			setupMocks: func(s *MockStorageInterface, i *MockIdentityClientInterface) {
				i.EXPECT().GetIdentityIDByEmail(gomock.Any(), "driver@example.com").Return("", errors.New("kratos down"))
			},
			expectedErr: true,
		},
		{
			name: "storage failure",
			setupMocks: func(s *MockStorageInterface, i *MockIdentityClientInterface) {
				i.EXPECT().GetIdentityIDByEmail(gomock.Any(), "driver@example.com").Return("identity-1", nil)
				s.EXPECT().AddMember(gomock.Any(), "tenant-1", "identity-1", "member").Return("", errors.New("db error"))
			},
			expectedErr: true,
		},
		{
			name: "recovery link failure",
			setupMocks: func(s *MockStorageInterface, i *MockIdentityClientInterface) {
				i.EXPECT().GetIdentityIDByEmail(gomock.Any(), "driver@example.com").Return("identity-1", nil)
				s.EXPECT().AddMember(gomock.Any(), "tenant-1", "identity-1", "member").Return("membership-1", nil)
				i.EXPECT().CreateRecoveryLink(gomock.Any(), "identity-1", "24h").Return("", "", errors.New("kratos down"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl, mockStorage, mockIdentities, mockTracer, mockMonitor, mockLogger := setupServiceMocks(t)
			defer ctrl.Finish()

			tc.setupMocks(mockStorage, mockIdentities)

			service := NewService(mockStorage, mockIdentities, "24h", mockTracer, mockMonitor, mockLogger)

			link, _, err := service.InviteUser(context.Background(), "tenant-1", "driver@example.com", "member")

			if tc.expectedErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if link != tc.expectedLink {
				t.Errorf("expected link %q, got %q", tc.expectedLink, link)
			}
		})
	}
}

func TestService_SetMembershipStatus(t *testing.T) {
	testCases := []struct {
		name        string
		status      string
		setupMocks  func(*MockStorageInterface)
		expectedErr bool
	}{
		{
			name:   "suspend member",
			status: types.MembershipStatusSuspended,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().SetMembershipStatus(gomock.Any(), "tenant-1", "user-1", types.MembershipStatusSuspended).Return(nil)
			},
		},
		{
			name:   "reactivate member",
			status: types.MembershipStatusActive,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().SetMembershipStatus(gomock.Any(), "tenant-1", "user-1", types.MembershipStatusActive).Return(nil)
			},
		},
		{
			name:        "invalid status never reaches storage",
			status:      "banned",
			setupMocks:  func(s *MockStorageInterface) {},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl, mockStorage, mockIdentities, mockTracer, mockMonitor, mockLogger := setupServiceMocks(t)
			defer ctrl.Finish()

			tc.setupMocks(mockStorage)

			service := NewService(mockStorage, mockIdentities, "24h", mockTracer, mockMonitor, mockLogger)

			err := service.SetMembershipStatus(context.Background(), "tenant-1", "user-1", tc.status)

			if tc.expectedErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.expectedErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestService_ListTenantUsers(t *testing.T) {
	ctrl, mockStorage, mockIdentities, mockTracer, mockMonitor, mockLogger := setupServiceMocks(t)
	defer ctrl.Finish()

	mockStorage.EXPECT().ListMembersByTenantID(gomock.Any(), "tenant-1").Return([]*types.Membership{
		{TenantID: "tenant-1", UserID: "user-1", Role: "owner", Status: types.MembershipStatusActive},
		{TenantID: "tenant-1", UserID: "user-2", Role: "member", Status: types.MembershipStatusSuspended},
	}, nil)
	mockIdentities.EXPECT().GetIdentityEmail(gomock.Any(), "user-1").Return("owner@example.com", nil)
	mockIdentities.EXPECT().GetIdentityEmail(gomock.Any(), "user-2").Return("", errors.New("identity deleted"))
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	service := NewService(mockStorage, mockIdentities, "24h", mockTracer, mockMonitor, mockLogger)

	users, err := service.ListTenantUsers(context.Background(), "tenant-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Email != "owner@example.com" {
		t.Errorf("expected resolved email, got %q", users[0].Email)
	}
	if users[1].Email != "unknown" {
		t.Errorf("expected unknown email for deleted identity, got %q", users[1].Email)
	}
	if users[1].Status != types.MembershipStatusSuspended {
		t.Errorf("expected suspended status preserved, got %q", users[1].Status)
	}
}
