// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"errors"
	"fmt"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/velodrive/platform-api/internal/logging"
	"github.com/velodrive/platform-api/internal/monitoring"
	"github.com/velodrive/platform-api/internal/tracing"
)

// ErrMalformedToken means the token payload could not be decoded into a
// principal. Callers must treat it as "no authenticated principal".
var ErrMalformedToken = errors.New("malformed token payload")

// principalClaims is the validated shape of the token payload. Fields the
// payload omits stay nil; the decoder fails closed rather than letting a
// half-decoded payload reach authorization decisions.
type principalClaims struct {
	TenantID      *string `json:"tenant_id"`
	PlatformAdmin bool    `json:"isPlatformAdmin"`
	Role          *string `json:"role"`
	jwt.RegisteredClaims
}

// PrincipalDecoder extracts a Principal from a compact token's payload
// segment. It performs no signature checking: the token must already have
// been verified upstream. Pure decode, no side effects.
type PrincipalDecoder struct {
	parser *jwt.Parser

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (d *PrincipalDecoder) DecodePrincipal(rawToken string) (*Principal, error) {
	claims := new(principalClaims)

	// ParseUnverified rejects tokens without three dot-separated segments
	// and decodes only the payload, which is exactly the contract here.
	if _, _, err := d.parser.ParseUnverified(rawToken, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrMalformedToken)
	}

	if claims.PlatformAdmin {
		return NewPlatformAdmin(claims.Subject), nil
	}

	tenantID := ""
	if claims.TenantID != nil {
		tenantID = *claims.TenantID
	}
	role := ""
	if claims.Role != nil {
		role = *claims.Role
	}

	return NewTenantMember(claims.Subject, tenantID, role), nil
}

func NewPrincipalDecoder(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *PrincipalDecoder {
	return &PrincipalDecoder{
		parser:  jwt.NewParser(),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
