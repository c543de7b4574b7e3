// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/velodrive/platform-api/internal/db"
	"github.com/velodrive/platform-api/internal/kratos"
	"github.com/velodrive/platform-api/internal/logging"
	"github.com/velodrive/platform-api/internal/monitoring"
	"github.com/velodrive/platform-api/internal/storage"
	"github.com/velodrive/platform-api/internal/tracing"
	"github.com/velodrive/platform-api/pkg/authentication"
	"github.com/velodrive/platform-api/pkg/fleet"
	"github.com/velodrive/platform-api/pkg/gateway"
	"github.com/velodrive/platform-api/pkg/metrics"
	"github.com/velodrive/platform-api/pkg/status"
	"github.com/velodrive/platform-api/pkg/tenancy"
	"github.com/velodrive/platform-api/pkg/tenant"
	"github.com/velodrive/platform-api/pkg/webhooks"
)

// RouterConfig carries the non-ambient inputs of the router.
type RouterConfig struct {
	PlatformAPIKey     string
	InvitationLifetime string
}

// NewRouter mounts every API behind its trust chain. There are four chains:
//
//   - public: status and metrics, no authentication
//   - machine: API key guard, platform-scoped transaction, webhooks
//   - platform: bearer token, platform-only routes (tenant administration)
//   - tenant: bearer token, tenant-bound transaction, fleet routes
//
// The transaction middleware sits before the tenancy middleware in every
// authenticated chain because the tenant binding lives on the transaction.
func NewRouter(
	s storage.StorageInterface,
	dbClient db.DBClientInterface,
	identities kratos.ClientInterface,
	verifier authentication.TokenVerifierInterface,
	cfg *RouterConfig,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	router.Use(middlewares...)

	decoder := authentication.NewPrincipalDecoder(tracer, monitor, logger)
	authnMiddleware := authentication.NewMiddleware(verifier, decoder, tracer, monitor, logger)
	tenancyMiddleware := tenancy.NewMiddleware(s, dbClient, tracer, monitor, logger)
	gatewayMiddleware := gateway.NewMiddleware(cfg.PlatformAPIKey, tracer, monitor, logger)
	transaction := db.TransactionMiddleware(dbClient, logger)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	tenantService := tenant.NewService(s, identities, cfg.InvitationLifetime, tracer, monitor, logger)
	tenantAPI := tenant.NewAPI(tenantService, tracer, monitor, logger)
	fleetAPI := fleet.NewAPI(fleet.NewService(s, tracer, monitor, logger), tracer, monitor, logger)
	webhooksAPI := webhooks.NewAPI(webhooks.NewService(s, tracer, monitor, logger))

	// Machine chain: trusted services, no user principal.
	router.Group(func(r chi.Router) {
		r.Use(gatewayMiddleware.RequireAPIKey())
		r.Use(transaction)
		r.Use(tenancyMiddleware.GrantPlatformAccess())
		webhooksAPI.RegisterEndpoints(r)
	})

	// Platform chain: tenant administration for platform admins.
	router.Group(func(r chi.Router) {
		r.Use(authnMiddleware.Authenticate())
		r.Use(transaction)
		r.Use(tenancyMiddleware.RequireClass(tenancy.PlatformOnly))
		tenantAPI.RegisterPlatformEndpoints(r)
	})

	// Either chain: any authenticated principal.
	router.Group(func(r chi.Router) {
		r.Use(authnMiddleware.Authenticate())
		r.Use(transaction)
		r.Use(tenancyMiddleware.RequireClass(tenancy.Either))
		tenantAPI.RegisterUserEndpoints(r)
	})

	// Tenant chain: members only, session bound to their tenant.
	router.Group(func(r chi.Router) {
		r.Use(authnMiddleware.Authenticate())
		r.Use(transaction)
		r.Use(tenancyMiddleware.RequireClass(tenancy.TenantOnly))
		fleetAPI.RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
