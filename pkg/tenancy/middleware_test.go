// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/velodrive/platform-api/internal/logging"
	"github.com/velodrive/platform-api/internal/storage"
	"github.com/velodrive/platform-api/internal/types"
	"github.com/velodrive/platform-api/pkg/authentication"
)

//go:generate mockgen -build_flags=--mod=mod -package tenancy -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenancy -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenancy -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenancy -destination ./mock_interfaces.go -source=./interfaces.go

func TestMiddleware_RequireClass(t *testing.T) {
	testCases := []struct {
		name               string
		class              Class
		principal          *authentication.Principal
		setupMocks         func(*MockMembershipCheckerInterface, *MockSessionStoreInterface)
		expectedStatusCode int
		expectedBody       string
		expectedTenant     string
	}{
		{
			name:               "no principal in context",
			class:              TenantOnly,
			principal:          nil,
			setupMocks:         func(s *MockMembershipCheckerInterface, db *MockSessionStoreInterface) {},
			expectedStatusCode: http.StatusUnauthorized,
			expectedBody:       "unauthenticated",
		},
		{
			name:      "platform admin passes platform route without membership lookup",
			class:     PlatformOnly,
			principal: authentication.NewPlatformAdmin("admin-1"),
			setupMocks: func(s *MockMembershipCheckerInterface, db *MockSessionStoreInterface) {
				db.EXPECT().SetLocalConfig(gomock.Any(), PlatformAccessKey, "on").Return(nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:      "platform admin passes tenant route without membership lookup",
			class:     TenantOnly,
			principal: authentication.NewPlatformAdmin("admin-1"),
			setupMocks: func(s *MockMembershipCheckerInterface, db *MockSessionStoreInterface) {
				db.EXPECT().SetLocalConfig(gomock.Any(), PlatformAccessKey, "on").Return(nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "tenant member rejected from platform route",
			class:              PlatformOnly,
			principal:          authentication.NewTenantMember("user-1", "tenant-1", "member"),
			setupMocks:         func(s *MockMembershipCheckerInterface, db *MockSessionStoreInterface) {},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:               "member without tenant context",
			class:              TenantOnly,
			principal:          authentication.NewTenantMember("user-1", "", ""),
			setupMocks:         func(s *MockMembershipCheckerInterface, db *MockSessionStoreInterface) {},
			expectedStatusCode: http.StatusUnauthorized,
			expectedBody:       "no tenant context",
		},
		{
			name:      "active member binds tenant session",
			class:     TenantOnly,
			principal: authentication.NewTenantMember("user-1", "tenant-1", "member"),
			setupMocks: func(s *MockMembershipCheckerInterface, db *MockSessionStoreInterface) {
				s.EXPECT().GetMembership(gomock.Any(), "tenant-1", "user-1").Return(&types.Membership{
					TenantID: "tenant-1",
					UserID:   "user-1",
					Status:   types.MembershipStatusActive,
				}, nil)
				db.EXPECT().SetLocalConfig(gomock.Any(), TenantIDKey, "tenant-1").Return(nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedTenant:     "tenant-1",
		},
		{
			name:      "suspended member is rejected",
			class:     TenantOnly,
			principal: authentication.NewTenantMember("user-1", "tenant-1", "member"),
			setupMocks: func(s *MockMembershipCheckerInterface, db *MockSessionStoreInterface) {
				s.EXPECT().GetMembership(gomock.Any(), "tenant-1", "user-1").Return(&types.Membership{
					TenantID: "tenant-1",
					UserID:   "user-1",
					Status:   types.MembershipStatusSuspended,
				}, nil)
			},
			expectedStatusCode: http.StatusForbidden,
			expectedBody:       "inactive tenant membership",
		},
		{
			name:      "no membership row is indistinguishable from inactive",
			class:     TenantOnly,
			principal: authentication.NewTenantMember("user-1", "tenant-2", "member"),
			setupMocks: func(s *MockMembershipCheckerInterface, db *MockSessionStoreInterface) {
				s.EXPECT().GetMembership(gomock.Any(), "tenant-2", "user-1").Return(nil, storage.ErrNotFound)
			},
			expectedStatusCode: http.StatusForbidden,
			expectedBody:       "inactive tenant membership",
		},
		{
			name:      "membership lookup failure is a server error",
			class:     TenantOnly,
			principal: authentication.NewTenantMember("user-1", "tenant-1", "member"),
			setupMocks: func(s *MockMembershipCheckerInterface, db *MockSessionStoreInterface) {
				s.EXPECT().GetMembership(gomock.Any(), "tenant-1", "user-1").Return(nil, fmt.Errorf("connection refused"))
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
		{
			name:      "bind failure is a server error",
			class:     Either,
			principal: authentication.NewTenantMember("user-1", "tenant-1", "member"),
			setupMocks: func(s *MockMembershipCheckerInterface, db *MockSessionStoreInterface) {
				s.EXPECT().GetMembership(gomock.Any(), "tenant-1", "user-1").Return(&types.Membership{
					TenantID: "tenant-1",
					UserID:   "user-1",
					Status:   types.MembershipStatusActive,
				}, nil)
				db.EXPECT().SetLocalConfig(gomock.Any(), TenantIDKey, "tenant-1").Return(errors.New("no transaction in context"))
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockMembershipCheckerInterface(ctrl)
			mockSessions := NewMockSessionStoreInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "tenancy.Middleware.RequireClass").DoAndReturn(
				func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
					return ctx, trace.SpanFromContext(ctx)
				},
			)
			mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
			mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security()).AnyTimes()

			tc.setupMocks(mockStorage, mockSessions)

			middleware := NewMiddleware(mockStorage, mockSessions, mockTracer, mockMonitor, mockLogger)

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.expectedTenant != "" {
					tenantID, ok := TenantFromContext(r.Context())
					if !ok || tenantID != tc.expectedTenant {
						t.Errorf("expected tenant %q bound in context, got %q", tc.expectedTenant, tenantID)
					}
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tc.principal != nil {
				req = req.WithContext(authentication.WithPrincipal(req.Context(), tc.principal))
			}
			rr := httptest.NewRecorder()

			middleware.RequireClass(tc.class)(handler).ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tc.expectedStatusCode, rr.Code)
			}

			if tc.expectedBody != "" && !strings.Contains(rr.Body.String(), tc.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestMiddleware_GrantPlatformAccess(t *testing.T) {
	testCases := []struct {
		name               string
		setupMocks         func(*MockSessionStoreInterface)
		expectedStatusCode int
	}{
		{
			name: "grants platform access",
			setupMocks: func(db *MockSessionStoreInterface) {
				db.EXPECT().SetLocalConfig(gomock.Any(), PlatformAccessKey, "on").Return(nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name: "session store failure",
			setupMocks: func(db *MockSessionStoreInterface) {
				db.EXPECT().SetLocalConfig(gomock.Any(), PlatformAccessKey, "on").Return(errors.New("no transaction in context"))
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockMembershipCheckerInterface(ctrl)
			mockSessions := NewMockSessionStoreInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "tenancy.Middleware.GrantPlatformAccess").Return(ctx, trace.SpanFromContext(ctx))
			mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

			tc.setupMocks(mockSessions)

			middleware := NewMiddleware(mockStorage, mockSessions, mockTracer, mockMonitor, mockLogger)

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			rr := httptest.NewRecorder()
			middleware.GrantPlatformAccess()(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/webhooks/payments", nil))

			if rr.Code != tc.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tc.expectedStatusCode, rr.Code)
			}
		})
	}
}
