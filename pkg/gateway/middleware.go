// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gateway

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/velodrive/platform-api/internal/logging"
	"github.com/velodrive/platform-api/internal/monitoring"
	"github.com/velodrive/platform-api/internal/tracing"
)

// HeaderName carries the shared secret for trusted machine callers.
const HeaderName = "X-Platform-Api-Key"

// Middleware authenticates server-to-server callers with a static shared
// secret. It is a separate trust boundary from the bearer-token chain and is
// never mounted on routes reachable by browser sessions.
type Middleware struct {
	apiKey []byte

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RequireAPIKey rejects any request whose key header does not match the
// configured secret. Constant-time comparison, and the response never says
// whether the key was missing, empty or wrong.
func (m *Middleware) RequireAPIKey() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "gateway.Middleware.RequireAPIKey")
			defer span.End()

			key := r.Header.Get(HeaderName)
			if subtle.ConstantTimeCompare([]byte(key), m.apiKey) != 1 {
				m.logger.Security().AuthnFailure("", "api key mismatch")
				m.unauthorizedResponse(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) unauthorizedResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  http.StatusUnauthorized,
		"message": "unauthorized",
	}); err != nil {
		m.logger.Errorf("failed to encode unauthorized response: %v", err)
	}
}

func NewMiddleware(apiKey string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		apiKey:  []byte(apiKey),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
