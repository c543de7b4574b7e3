// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chi "github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/velodrive/platform-api/internal/storage"
	"github.com/velodrive/platform-api/internal/types"
	"github.com/velodrive/platform-api/pkg/authentication"
)

func setupAPI(t *testing.T) (*gomock.Controller, *MockServiceInterface, *chi.Mux) {
	ctrl := gomock.NewController(t)

	mockService := NewMockServiceInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	).AnyTimes()
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	router := chi.NewMux()
	api := NewAPI(mockService, mockTracer, mockMonitor, mockLogger)
	api.RegisterPlatformEndpoints(router)
	api.RegisterUserEndpoints(router)

	return ctrl, mockService, router
}

func TestAPI_CreateTenant(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		setupMocks         func(*MockServiceInterface)
		expectedStatusCode int
	}{
		{
			name: "success",
			body: `{"name": "Acme Chauffeurs"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateTenant(gomock.Any(), "Acme Chauffeurs").Return(&types.Tenant{
					ID:      "tenant-1",
					Name:    "Acme Chauffeurs",
					Enabled: true,
				}, nil)
			},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name:               "missing name",
			body:               `{}`,
			setupMocks:         func(s *MockServiceInterface) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "invalid json",
			body:               `{`,
			setupMocks:         func(s *MockServiceInterface) {},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl, mockService, router := setupAPI(t)
			defer ctrl.Finish()

			tc.setupMocks(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/tenants", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tc.expectedStatusCode, rr.Code)
			}
		})
	}
}

func TestAPI_GetTenant(t *testing.T) {
	ctrl, mockService, router := setupAPI(t)
	defer ctrl.Finish()

	mockService.EXPECT().GetTenant(gomock.Any(), "tenant-404").Return(nil, storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/tenants/tenant-404", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestAPI_InviteUser(t *testing.T) {
	ctrl, mockService, router := setupAPI(t)
	defer ctrl.Finish()

	mockService.EXPECT().InviteUser(gomock.Any(), "tenant-1", "driver@example.com", "member").
		Return("https://recover", "code-1", nil)

	body := `{"email": "driver@example.com", "role": "member"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v0/tenants/tenant-1/users", strings.NewReader(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}

	var resp InviteUserResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Link != "https://recover" {
		t.Errorf("expected invitation link in response, got %q", resp.Link)
	}
}

func TestAPI_InviteUser_InvalidRole(t *testing.T) {
	ctrl, _, router := setupAPI(t)
	defer ctrl.Finish()

	body := `{"email": "driver@example.com", "role": "superuser"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v0/tenants/tenant-1/users", strings.NewReader(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestAPI_ListMyTenants(t *testing.T) {
	testCases := []struct {
		name               string
		principal          *authentication.Principal
		setupMocks         func(*MockServiceInterface)
		expectedStatusCode int
	}{
		{
			name:      "lists tenants of the caller",
			principal: authentication.NewTenantMember("user-1", "tenant-1", "member"),
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().ListUserTenants(gomock.Any(), "user-1").Return([]*types.Tenant{
					{ID: "tenant-1", Name: "Acme Chauffeurs", Enabled: true},
				}, nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "no principal",
			principal:          nil,
			setupMocks:         func(s *MockServiceInterface) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl, mockService, router := setupAPI(t)
			defer ctrl.Finish()

			tc.setupMocks(mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/me/tenants", nil)
			if tc.principal != nil {
				req = req.WithContext(authentication.WithPrincipal(req.Context(), tc.principal))
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tc.expectedStatusCode, rr.Code)
			}
		})
	}
}
