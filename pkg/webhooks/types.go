// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

// PaymentEvent is the notification the payment relay posts after processing
// a charge for a booking.
type PaymentEvent struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}
