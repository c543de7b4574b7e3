// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/velodrive/platform-api/internal/db"
	"github.com/velodrive/platform-api/internal/logging"
	"github.com/velodrive/platform-api/internal/monitoring"
	"github.com/velodrive/platform-api/internal/tracing"
)

// noRowsRunner reports zero rows for every statement, the way the
// database/sql adapter does for single-row queries.
type noRowsRunner struct{}

func (noRowsRunner) Exec(string, ...interface{}) (sql.Result, error) { return nil, sql.ErrNoRows }
func (noRowsRunner) Query(string, ...interface{}) (*sql.Rows, error) { return nil, sql.ErrNoRows }
func (noRowsRunner) QueryRowContext(context.Context, string, ...interface{}) sq.RowScanner {
	return noRowsScanner{}
}

type noRowsScanner struct{}

func (noRowsScanner) Scan(...interface{}) error { return sql.ErrNoRows }

type fakeDBClient struct {
	runner sq.BaseRunner
}

func (c *fakeDBClient) Statement(context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(c.runner)
}

func (c *fakeDBClient) BeginTx(ctx context.Context) (context.Context, db.TxInterface, error) {
	return ctx, nil, nil
}

func (c *fakeDBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (c *fakeDBClient) SetLocalConfig(context.Context, string, string) error { return nil }

func (c *fakeDBClient) Close() {}

func TestStorage_ZeroRowsMapToErrNotFound(t *testing.T) {
	s := NewStorage(
		&fakeDBClient{runner: noRowsRunner{}},
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(),
		logging.NewNoopLogger(),
	)
	ctx := context.Background()

	testCases := []struct {
		name string
		call func() error
	}{
		{
			name: "GetMembership",
			call: func() error {
				_, err := s.GetMembership(ctx, "tenant-1", "user-1")
				return err
			},
		},
		{
			name: "GetTenantByID",
			call: func() error {
				_, err := s.GetTenantByID(ctx, "tenant-1")
				return err
			},
		},
		{
			name: "GetVehicleByID",
			call: func() error {
				_, err := s.GetVehicleByID(ctx, "vehicle-1")
				return err
			},
		},
		{
			name: "GetBookingByID",
			call: func() error {
				_, err := s.GetBookingByID(ctx, "booking-1")
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound on zero rows, got %v", err)
			}
		})
	}
}

func TestIsNoRowsError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"stdlib adapter", sql.ErrNoRows, true},
		{"native pool", pgx.ErrNoRows, true},
		{"wrapped", fmt.Errorf("query: %w", sql.ErrNoRows), true},
		{"other error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsNoRowsError(tc.err); got != tc.expected {
				t.Errorf("IsNoRowsError(%v) = %v, expected %v", tc.err, got, tc.expected)
			}
		})
	}
}
