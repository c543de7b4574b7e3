// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	// Bearer tokens are signature-checked against this issuer before the
	// payload is decoded into a principal. With authentication disabled a
	// noop verifier is used (development only).
	AuthenticationEnabled bool   `envconfig:"authentication_enabled" default:"true"`
	JWTIssuer             string `envconfig:"jwt_issuer"`
	JWKSURL               string `envconfig:"jwks_url"`

	KratosAdminURL string `envconfig:"kratos_admin_url" required:"true"`

	InvitationLifetime string `envconfig:"invitation_lifetime" default:"24h"`

	// Shared secret for trusted machine callers on the webhook routes.
	PlatformAPIKey string `envconfig:"platform_api_key" required:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`
}
