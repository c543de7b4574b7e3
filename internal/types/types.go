// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Membership status values. Anything other than active denies access.
const (
	MembershipStatusActive    = "active"
	MembershipStatusSuspended = "suspended"
	MembershipStatusPending   = "pending"
	MembershipStatusRemoved   = "removed"
)

// Booking payment status values reported by the payment relay.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

type Tenant struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	Enabled   bool      `db:"enabled"`
}

type Membership struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

type Vehicle struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	Name      string    `db:"name"`
	Plate     string    `db:"plate"`
	Class     string    `db:"class"`
	Seats     int32     `db:"seats"`
	Enabled   bool      `db:"enabled"`
	CreatedAt time.Time `db:"created_at"`
}

type Booking struct {
	ID            string    `db:"id"`
	TenantID      string    `db:"tenant_id"`
	VehicleID     string    `db:"vehicle_id"`
	Pickup        string    `db:"pickup"`
	Dropoff       string    `db:"dropoff"`
	PickupTime    time.Time `db:"pickup_time"`
	Status        string    `db:"status"`
	PriceCents    int64     `db:"price_cents"`
	Currency      string    `db:"currency"`
	PaymentStatus string    `db:"payment_status"`
	CreatedAt     time.Time `db:"created_at"`
}

type TenantUser struct {
	UserID string
	Email  string
	Role   string
	Status string
}
