// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/velodrive/platform-api/internal/logging"
)

//go:generate mockgen -build_flags=--mod=mod -package gateway -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package gateway -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package gateway -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

func TestMiddleware_RequireAPIKey(t *testing.T) {
	testCases := []struct {
		name               string
		header             string
		expectedStatusCode int
	}{
		{
			name:               "valid key",
			header:             "super-secret",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "wrong key",
			header:             "wrong-secret",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "missing key",
			header:             "",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "key is a prefix of the secret",
			header:             "super",
			expectedStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "gateway.Middleware.RequireAPIKey").Return(ctx, trace.SpanFromContext(ctx))
			mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security()).AnyTimes()

			middleware := NewMiddleware("super-secret", mockTracer, mockMonitor, mockLogger)

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", nil)
			if tc.header != "" {
				req.Header.Set(HeaderName, tc.header)
			}
			rr := httptest.NewRecorder()

			middleware.RequireAPIKey()(handler).ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tc.expectedStatusCode, rr.Code)
			}

			if tc.expectedStatusCode == http.StatusUnauthorized {
				body := rr.Body.String()
				if strings.Contains(body, "key") || strings.Contains(body, "missing") {
					t.Errorf("response leaks failure detail: %q", body)
				}
			}
		})
	}
}
