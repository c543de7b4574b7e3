// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import "errors"

var (
	// ErrUnauthenticated means no principal reached the guard, or a
	// non-admin principal carries no tenant context.
	ErrUnauthenticated = errors.New("request is not authenticated")

	// ErrForbidden means the caller is authenticated but not allowed:
	// wrong admin class for the route, or no active membership. Inactive
	// membership states are deliberately not distinguished for callers.
	ErrForbidden = errors.New("access denied")
)
