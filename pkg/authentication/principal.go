// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

// Kind is the principal's authorization class. Exactly one variant applies to
// a request; downstream checks branch on it instead of re-testing flags.
type Kind int

const (
	// KindPlatformAdmin has cross-tenant access and is exempt from
	// membership checks.
	KindPlatformAdmin Kind = iota + 1
	// KindTenantMember is scoped to a single tenant via a membership row.
	KindTenantMember
)

// Principal is the decoded identity of the current caller. Immutable for the
// lifetime of the request.
type Principal struct {
	Subject  string
	Kind     Kind
	TenantID string
	Role     string
}

func (p *Principal) IsPlatformAdmin() bool {
	return p.Kind == KindPlatformAdmin
}

func NewPlatformAdmin(subject string) *Principal {
	return &Principal{
		Subject: subject,
		Kind:    KindPlatformAdmin,
	}
}

// NewTenantMember builds a tenant-scoped principal. TenantID and role may be
// empty when the token carries no tenant context; rejecting that combination
// is the route guard's job, not the decoder's.
func NewTenantMember(subject, tenantID, role string) *Principal {
	return &Principal{
		Subject:  subject,
		Kind:     KindTenantMember,
		TenantID: tenantID,
		Role:     role,
	}
}
