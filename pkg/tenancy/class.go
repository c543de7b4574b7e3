// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

// Class is a route's tenancy requirement.
type Class int

const (
	// PlatformOnly routes are reserved for platform administrators.
	PlatformOnly Class = iota + 1
	// TenantOnly routes require an active membership and run with the
	// database session bound to the member's tenant.
	TenantOnly
	// Either accepts both classes; tenant members are still bound.
	Either
)

func (c Class) String() string {
	switch c {
	case PlatformOnly:
		return "platform-only"
	case TenantOnly:
		return "tenant-only"
	case Either:
		return "either"
	default:
		return "unknown"
	}
}
