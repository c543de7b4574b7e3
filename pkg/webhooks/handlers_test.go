// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chi "github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/velodrive/platform-api/internal/storage"
)

func TestAPI_Payments(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		setupMocks         func(*MockServiceInterface)
		expectedStatusCode int
	}{
		{
			name: "success",
			body: `{"booking_id": "booking-1", "status": "paid"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().HandlePaymentNotification(gomock.Any(), &PaymentEvent{
					BookingID: "booking-1",
					Status:    "paid",
				}).Return(nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "invalid body",
			body:               `{`,
			setupMocks:         func(s *MockServiceInterface) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name: "unknown booking",
			body: `{"booking_id": "booking-404", "status": "paid"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().HandlePaymentNotification(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to set payment status: %w", storage.ErrNotFound))
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name: "service failure",
			body: `{"booking_id": "booking-1", "status": "paid"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().HandlePaymentNotification(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("db error"))
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tc.setupMocks(mockService)

			router := chi.NewMux()
			NewAPI(mockService).RegisterEndpoints(router)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tc.expectedStatusCode, rr.Code)
			}
		})
	}
}
