// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"fmt"

	"github.com/velodrive/platform-api/internal/logging"
	"github.com/velodrive/platform-api/internal/monitoring"
	"github.com/velodrive/platform-api/internal/tracing"
	"github.com/velodrive/platform-api/internal/types"
)

var validPaymentStatuses = map[string]bool{
	types.PaymentStatusPending:  true,
	types.PaymentStatusPaid:     true,
	types.PaymentStatusFailed:   true,
	types.PaymentStatusRefunded: true,
}

type Service struct {
	storage StorageInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// HandlePaymentNotification records the outcome of a charge against a
// booking. The caller is a machine principal, so the request runs with
// platform access and can reach bookings of any tenant.
func (s *Service) HandlePaymentNotification(ctx context.Context, event *PaymentEvent) error {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandlePaymentNotification")
	defer span.End()

	s.logger.Debugf("Handling payment notification for booking %s with status %s", event.BookingID, event.Status)

	if event.BookingID == "" {
		return fmt.Errorf("booking ID is empty")
	}

	if !validPaymentStatuses[event.Status] {
		return fmt.Errorf("invalid payment status: %s", event.Status)
	}

	if err := s.storage.SetBookingPaymentStatus(ctx, event.BookingID, event.Status); err != nil {
		return fmt.Errorf("failed to set payment status: %w", err)
	}

	s.logger.Infof("Recorded payment status %s for booking %s", event.Status, event.BookingID)
	return nil
}
