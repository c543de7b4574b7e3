// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package fleet

import (
	"time"

	"github.com/velodrive/platform-api/internal/types"
)

type CreateVehicleRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Plate string `json:"plate" validate:"required,min=1,max=20"`
	Class string `json:"class" validate:"required,oneof=sedan suv van luxury"`
	Seats int32  `json:"seats" validate:"required,min=1,max=16"`
}

type UpdateVehicleRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Plate   *string `json:"plate,omitempty" validate:"omitempty,min=1,max=20"`
	Class   *string `json:"class,omitempty" validate:"omitempty,oneof=sedan suv van luxury"`
	Seats   *int32  `json:"seats,omitempty" validate:"omitempty,min=1,max=16"`
	Enabled *bool   `json:"enabled,omitempty"`
}

type CreateBookingRequest struct {
	VehicleID  string    `json:"vehicle_id" validate:"required,uuid"`
	Pickup     string    `json:"pickup" validate:"required,min=1,max=500"`
	Dropoff    string    `json:"dropoff" validate:"required,min=1,max=500"`
	PickupTime time.Time `json:"pickup_time" validate:"required"`
	PriceCents int64     `json:"price_cents" validate:"required,min=0"`
	Currency   string    `json:"currency" validate:"required,iso4217"`
}

type VehicleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Plate     string    `json:"plate"`
	Class     string    `json:"class"`
	Seats     int32     `json:"seats"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

type BookingResponse struct {
	ID            string    `json:"id"`
	VehicleID     string    `json:"vehicle_id"`
	Pickup        string    `json:"pickup"`
	Dropoff       string    `json:"dropoff"`
	PickupTime    time.Time `json:"pickup_time"`
	Status        string    `json:"status"`
	PriceCents    int64     `json:"price_cents"`
	Currency      string    `json:"currency"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toVehicleResponse(v *types.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:        v.ID,
		Name:      v.Name,
		Plate:     v.Plate,
		Class:     v.Class,
		Seats:     v.Seats,
		Enabled:   v.Enabled,
		CreatedAt: v.CreatedAt,
	}
}

func toBookingResponse(b *types.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID,
		VehicleID:     b.VehicleID,
		Pickup:        b.Pickup,
		Dropoff:       b.Dropoff,
		PickupTime:    b.PickupTime,
		Status:        b.Status,
		PriceCents:    b.PriceCents,
		Currency:      b.Currency,
		PaymentStatus: b.PaymentStatus,
		CreatedAt:     b.CreatedAt,
	}
}
