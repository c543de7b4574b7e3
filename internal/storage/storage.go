// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/velodrive/platform-api/internal/db"
	"github.com/velodrive/platform-api/internal/logging"
	"github.com/velodrive/platform-api/internal/monitoring"
	"github.com/velodrive/platform-api/internal/tracing"
	"github.com/velodrive/platform-api/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

// Storage implements all queries on top of the transaction-aware db client.
// Vehicle and booking queries carry no tenant predicate on purpose: those
// tables are protected by row-level security keyed on the session tenant
// binding, so the transaction in the context decides what is visible.
type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
	}

	var newTenant types.Tenant
	err = s.db.Statement(ctx).
		Insert("tenants").
		Columns("id", "name", "enabled").
		Values(id.String(), t.Name, t.Enabled).
		Suffix("RETURNING id, name, created_at, enabled").
		QueryRowContext(ctx).
		Scan(&newTenant.ID, &newTenant.Name, &newTenant.CreatedAt, &newTenant.Enabled)

	if err != nil {
		return nil, fmt.Errorf("failed to insert tenant: %w", err)
	}

	return &newTenant, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	var t types.Tenant
	err := s.db.Statement(ctx).
		Select("id", "name", "created_at", "enabled").
		From("tenants").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Name, &t.CreatedAt, &t.Enabled)

	if err != nil {
		if IsNoRowsError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &t, nil
}

func (s *Storage) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenants")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("id", "name", "created_at", "enabled").
		From("tenants")

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*types.Tenant
	for rows.Next() {
		var t types.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}

	return tenants, nil
}

// UpdateTenant updates only the fields named in paths, PATCH semantics.
func (s *Storage) UpdateTenant(ctx context.Context, tenant *types.Tenant, paths []string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTenant")
	defer span.End()

	if len(paths) == 0 {
		return nil
	}

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "name":
			updateMap["name"] = tenant.Name
		case "enabled":
			updateMap["enabled"] = tenant.Enabled
		}
	}

	if len(updateMap) == 0 {
		return nil
	}

	_, err := s.db.Statement(ctx).
		Update("tenants").
		SetMap(updateMap).
		Where(sq.Eq{"id": tenant.ID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}

	return nil
}

func (s *Storage) SetTenantStatus(ctx context.Context, id string, enabled bool) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetTenantStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("tenants").
		Set("enabled", enabled).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to set tenant status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) DeleteTenant(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteTenant")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("tenants").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	return nil
}

// GetMembership returns the membership row for the exact (tenant, user) pair.
// Callers decide what a missing or non-active row means; this is a plain read
// and is queried fresh on every call, never cached.
func (s *Storage) GetMembership(ctx context.Context, tenantID, userID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembership")
	defer span.End()

	var m types.Membership
	err := s.db.Statement(ctx).
		Select("id", "tenant_id", "user_id", "role", "status", "created_at").
		From("memberships").
		Where(sq.Eq{
			"tenant_id": tenantID,
			"user_id":   userID,
		}).
		QueryRowContext(ctx).
		Scan(&m.ID, &m.TenantID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt)

	if err != nil {
		if IsNoRowsError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return &m, nil
}

func (s *Storage) AddMember(ctx context.Context, tenantID, userID, role string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMember")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate membership ID: %w", err)
	}

	_, err = s.db.Statement(ctx).
		Insert("memberships").
		Columns("id", "tenant_id", "user_id", "role", "status").
		Values(id.String(), tenantID, userID, role, types.MembershipStatusActive).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return "", ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return "", ErrForeignKeyViolation
		}
		return "", fmt.Errorf("failed to add member: %w", err)
	}

	return id.String(), nil
}

func (s *Storage) SetMembershipStatus(ctx context.Context, tenantID, userID, status string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetMembershipStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("memberships").
		Set("status", status).
		Where(sq.Eq{
			"tenant_id": tenantID,
			"user_id":   userID,
		}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to set membership status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) ListMembersByTenantID(ctx context.Context, tenantID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembersByTenantID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("id", "tenant_id", "user_id", "role", "status", "created_at").
		From("memberships").
		Where(sq.Eq{"tenant_id": tenantID})

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*types.Membership
	for rows.Next() {
		var m types.Membership
		if err := rows.Scan(&m.ID, &m.TenantID, &m.UserID, &m.Role, &m.Status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

func (s *Storage) ListTenantsByUserID(ctx context.Context, userID string) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenantsByUserID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("t.id", "t.name", "t.created_at", "t.enabled").
		From("tenants t").
		Join("memberships m ON t.id = m.tenant_id").
		Where(sq.Eq{
			"m.user_id": userID,
			"m.status":  types.MembershipStatusActive,
			"t.enabled": true,
		})

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*types.Tenant
	for rows.Next() {
		var t types.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tenants, nil
}

func (s *Storage) CreateVehicle(ctx context.Context, v *types.Vehicle) (*types.Vehicle, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateVehicle")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate vehicle ID: %w", err)
	}

	var newVehicle types.Vehicle
	err = s.db.Statement(ctx).
		Insert("vehicles").
		Columns("id", "tenant_id", "name", "plate", "class", "seats", "enabled").
		Values(id.String(), v.TenantID, v.Name, v.Plate, v.Class, v.Seats, v.Enabled).
		Suffix("RETURNING id, tenant_id, name, plate, class, seats, enabled, created_at").
		QueryRowContext(ctx).
		Scan(&newVehicle.ID, &newVehicle.TenantID, &newVehicle.Name, &newVehicle.Plate,
			&newVehicle.Class, &newVehicle.Seats, &newVehicle.Enabled, &newVehicle.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert vehicle: %w", err)
	}

	return &newVehicle, nil
}

func (s *Storage) GetVehicleByID(ctx context.Context, id string) (*types.Vehicle, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetVehicleByID")
	defer span.End()

	var v types.Vehicle
	err := s.db.Statement(ctx).
		Select("id", "tenant_id", "name", "plate", "class", "seats", "enabled", "created_at").
		From("vehicles").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&v.ID, &v.TenantID, &v.Name, &v.Plate, &v.Class, &v.Seats, &v.Enabled, &v.CreatedAt)

	if err != nil {
		if IsNoRowsError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &v, nil
}

func (s *Storage) ListVehicles(ctx context.Context) ([]*types.Vehicle, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListVehicles")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "tenant_id", "name", "plate", "class", "seats", "enabled", "created_at").
		From("vehicles").
		OrderBy("created_at DESC").
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*types.Vehicle
	for rows.Next() {
		var v types.Vehicle
		if err := rows.Scan(&v.ID, &v.TenantID, &v.Name, &v.Plate, &v.Class, &v.Seats, &v.Enabled, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return vehicles, nil
}

// UpdateVehicle updates only the fields named in paths, PATCH semantics.
func (s *Storage) UpdateVehicle(ctx context.Context, vehicle *types.Vehicle, paths []string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateVehicle")
	defer span.End()

	if len(paths) == 0 {
		return nil
	}

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "name":
			updateMap["name"] = vehicle.Name
		case "plate":
			updateMap["plate"] = vehicle.Plate
		case "class":
			updateMap["class"] = vehicle.Class
		case "seats":
			updateMap["seats"] = vehicle.Seats
		case "enabled":
			updateMap["enabled"] = vehicle.Enabled
		}
	}

	if len(updateMap) == 0 {
		return nil
	}

	res, err := s.db.Statement(ctx).
		Update("vehicles").
		SetMap(updateMap).
		Where(sq.Eq{"id": vehicle.ID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) DeleteVehicle(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteVehicle")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("vehicles").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) CreateBooking(ctx context.Context, b *types.Booking) (*types.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateBooking")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking ID: %w", err)
	}

	var newBooking types.Booking
	err = s.db.Statement(ctx).
		Insert("bookings").
		Columns("id", "tenant_id", "vehicle_id", "pickup", "dropoff", "pickup_time",
			"status", "price_cents", "currency", "payment_status").
		Values(id.String(), b.TenantID, b.VehicleID, b.Pickup, b.Dropoff, b.PickupTime,
			b.Status, b.PriceCents, b.Currency, b.PaymentStatus).
		Suffix("RETURNING id, tenant_id, vehicle_id, pickup, dropoff, pickup_time, status, price_cents, currency, payment_status, created_at").
		QueryRowContext(ctx).
		Scan(&newBooking.ID, &newBooking.TenantID, &newBooking.VehicleID, &newBooking.Pickup,
			&newBooking.Dropoff, &newBooking.PickupTime, &newBooking.Status, &newBooking.PriceCents,
			&newBooking.Currency, &newBooking.PaymentStatus, &newBooking.CreatedAt)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	return &newBooking, nil
}

func (s *Storage) GetBookingByID(ctx context.Context, id string) (*types.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetBookingByID")
	defer span.End()

	var b types.Booking
	err := s.db.Statement(ctx).
		Select("id", "tenant_id", "vehicle_id", "pickup", "dropoff", "pickup_time",
			"status", "price_cents", "currency", "payment_status", "created_at").
		From("bookings").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&b.ID, &b.TenantID, &b.VehicleID, &b.Pickup, &b.Dropoff, &b.PickupTime,
			&b.Status, &b.PriceCents, &b.Currency, &b.PaymentStatus, &b.CreatedAt)

	if err != nil {
		if IsNoRowsError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &b, nil
}

func (s *Storage) ListBookings(ctx context.Context) ([]*types.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListBookings")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "tenant_id", "vehicle_id", "pickup", "dropoff", "pickup_time",
			"status", "price_cents", "currency", "payment_status", "created_at").
		From("bookings").
		OrderBy("pickup_time DESC").
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*types.Booking
	for rows.Next() {
		var b types.Booking
		if err := rows.Scan(&b.ID, &b.TenantID, &b.VehicleID, &b.Pickup, &b.Dropoff, &b.PickupTime,
			&b.Status, &b.PriceCents, &b.Currency, &b.PaymentStatus, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return bookings, nil
}

func (s *Storage) SetBookingPaymentStatus(ctx context.Context, id, status string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetBookingPaymentStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("bookings").
		Set("payment_status", status).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to set booking payment status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
