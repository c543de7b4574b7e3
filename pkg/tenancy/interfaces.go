// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"

	"github.com/velodrive/platform-api/internal/types"
)

// MembershipCheckerInterface is the storage subset the guard needs. Lookups
// run fresh per request so revocations take effect on the next call.
type MembershipCheckerInterface interface {
	GetMembership(ctx context.Context, tenantID, userID string) (*types.Membership, error)
}

// SessionStoreInterface binds values into the request's database transaction
// for row-level security policies to read.
type SessionStoreInterface interface {
	SetLocalConfig(ctx context.Context, key, value string) error
}
