// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package fleet

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
	NewAPI(mockService, mockTracer, mockMonitor, mockLogger).RegisterEndpoints(router)

	return ctrl, mockService, router
}

func TestAPI_CreateVehicle(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		setupMocks         func(*MockServiceInterface)
		expectedStatusCode int
	}{
		{
			name: "success",
			body: `{"name": "S-Class 1", "plate": "VD-001", "class": "luxury", "seats": 4}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateVehicle(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, v *types.Vehicle) (*types.Vehicle, error) {
						if !v.Enabled {
							t.Error("expected new vehicle to be enabled")
						}
						v.ID = "vehicle-1"
						return v, nil
					},
				)
			},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name:               "invalid class",
			body:               `{"name": "S-Class 1", "plate": "VD-001", "class": "tank", "seats": 4}`,
			setupMocks:         func(s *MockServiceInterface) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "missing plate",
			body:               `{"name": "S-Class 1", "class": "luxury", "seats": 4}`,
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

			req := httptest.NewRequest(http.MethodPost, "/api/v0/vehicles", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tc.expectedStatusCode, rr.Code)
			}

			if tc.expectedStatusCode == http.StatusCreated {
				var resp VehicleResponse
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.ID != "vehicle-1" {
					t.Errorf("expected vehicle ID vehicle-1, got %q", resp.ID)
				}
			}
		})
	}
}

func TestAPI_GetVehicle_NotFound(t *testing.T) {
	ctrl, mockService, router := setupAPI(t)
	defer ctrl.Finish()

	mockService.EXPECT().GetVehicle(gomock.Any(), "vehicle-404").Return(nil, storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/vehicles/vehicle-404", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestAPI_DeleteVehicle(t *testing.T) {
	ctrl, mockService, router := setupAPI(t)
	defer ctrl.Finish()

	mockService.EXPECT().DeleteVehicle(gomock.Any(), "vehicle-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v0/vehicles/vehicle-1", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rr.Code)
	}
}

func TestAPI_CreateBooking(t *testing.T) {
	body := `{
		"vehicle_id": "6a30e4d2-4a1f-7e10-9c44-2f2b61a5a111",
		"pickup": "Airport",
		"dropoff": "Downtown",
		"pickup_time": "2026-09-01T10:00:00Z",
		"price_cents": 12000,
		"currency": "EUR"
	}`

	testCases := []struct {
		name               string
		body               string
		setupMocks         func(*MockServiceInterface)
		expectedStatusCode int
	}{
		{
			name: "success",
			body: body,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, b *types.Booking) (*types.Booking, error) {
						b.ID = "booking-1"
						b.Status = "requested"
						b.PaymentStatus = types.PaymentStatusPending
						return b, nil
					},
				)
			},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name: "vehicle not visible",
			body: body,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "invalid currency",
			body:               strings.Replace(body, "EUR", "EURO", 1),
			setupMocks:         func(s *MockServiceInterface) {},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl, mockService, router := setupAPI(t)
			defer ctrl.Finish()

			tc.setupMocks(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/bookings", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tc.expectedStatusCode, rr.Code)
			}

			if tc.expectedStatusCode == http.StatusCreated {
				var resp BookingResponse
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Status != "requested" {
					t.Errorf("expected status requested, got %q", resp.Status)
				}
			}
		})
	}
}
