// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
)

type ProviderInterface interface {
	// Verifier returns the token verifier associated with the specified OIDC issuer
	Verifier(*oidc.Config) *oidc.IDTokenVerifier
}

type TokenVerifierInterface interface {
	// VerifyToken checks the raw JWT's signature and issuer.
	// Returns an error if the token is not trustworthy; claim extraction
	// is a separate, unverified decode step.
	VerifyToken(ctx context.Context, rawToken string) error
}

type PrincipalDecoderInterface interface {
	// DecodePrincipal extracts a Principal from the token payload segment,
	// failing closed on any malformed or incomplete payload.
	DecodePrincipal(rawToken string) (*Principal, error)
}
