// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
)

// StorageInterface defines the storage operations required by the webhooks package.
// It is a subset of the internal/storage interface.
type StorageInterface interface {
	SetBookingPaymentStatus(ctx context.Context, id, status string) error
}

// ServiceInterface defines the webhook service operations.
type ServiceInterface interface {
	HandlePaymentNotification(ctx context.Context, event *PaymentEvent) error
}
