// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import "context"

type contextKey struct{}

var tenantContextKey = contextKey{}

// WithTenant returns a new context carrying the bound tenant ID.
func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantContextKey, tenantID)
}

// TenantFromContext retrieves the bound tenant ID from the context.
// Returns an empty string and false when no tenant has been bound, which is
// the case for platform administrators and machine callers.
func TenantFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(tenantContextKey).(string)
	return id, ok && id != ""
}
