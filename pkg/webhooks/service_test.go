// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/velodrive/platform-api/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_interfaces.go -source=./interfaces.go

func TestService_HandlePaymentNotification(t *testing.T) {
	testCases := []struct {
		name        string
		event       *PaymentEvent
		setupMocks  func(*MockStorageInterface)
		expectedErr bool
	}{
		{
			name:  "records paid status",
			event: &PaymentEvent{BookingID: "booking-1", Status: types.PaymentStatusPaid},
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().SetBookingPaymentStatus(gomock.Any(), "booking-1", types.PaymentStatusPaid).Return(nil)
			},
		},
		{
			name:  "records refund",
			event: &PaymentEvent{BookingID: "booking-1", Status: types.PaymentStatusRefunded},
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().SetBookingPaymentStatus(gomock.Any(), "booking-1", types.PaymentStatusRefunded).Return(nil)
			},
		},
		{
			name:        "empty booking ID",
			event:       &PaymentEvent{Status: types.PaymentStatusPaid},
			setupMocks:  func(s *MockStorageInterface) {},
			expectedErr: true,
		},
		{
			name:        "unknown status never reaches storage",
			event:       &PaymentEvent{BookingID: "booking-1", Status: "settled"},
			setupMocks:  func(s *MockStorageInterface) {},
			expectedErr: true,
		},
		{
			name:  "storage failure",
			event: &PaymentEvent{BookingID: "booking-1", Status: types.PaymentStatusFailed},
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().SetBookingPaymentStatus(gomock.Any(), "booking-1", types.PaymentStatusFailed).Return(errors.New("db error"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "webhooks.Service.HandlePaymentNotification").Return(ctx, trace.SpanFromContext(ctx))
			mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

			tc.setupMocks(mockStorage)

			service := NewService(mockStorage, mockTracer, mockMonitor, mockLogger)

			err := service.HandlePaymentNotification(context.Background(), tc.event)

			if tc.expectedErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.expectedErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
