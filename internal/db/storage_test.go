// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/velodrive/platform-api/internal/logging"
)

//go:generate mockgen -build_flags=--mod=mod -package db -destination ./mock_logger.go -source=../logging/interfaces.go

// failingConnector refuses every connection, so BeginTx on the resulting
// sql.DB always fails.
type failingConnector struct{}

func (failingConnector) Connect(context.Context) (driver.Conn, error) {
	return nil, errors.New("connection refused")
}

func (failingConnector) Driver() driver.Driver { return nil }

// recordingRunner notes whether any statement reached it.
type recordingRunner struct {
	used bool
}

func (r *recordingRunner) Exec(string, ...interface{}) (sql.Result, error) {
	r.used = true
	return nil, nil
}

func (r *recordingRunner) Query(string, ...interface{}) (*sql.Rows, error) {
	r.used = true
	return nil, nil
}

func TestStatement_FailedTransactionDoesNotFallBack(t *testing.T) {
	pooled := &recordingRunner{}
	d := &DBClient{
		dbRunner: pooled,
		logger:   logging.NewNoopLogger(),
	}

	lt := &lazyTx{db: sql.OpenDB(failingConnector{}), logger: d.logger}
	ctx := contextWithLazyTx(context.Background(), lt)

	var out string
	if err := d.Statement(ctx).Select("1").QueryRowContext(ctx).Scan(&out); err == nil {
		t.Error("expected query to fail when the transaction cannot be started")
	}

	if _, err := d.Statement(ctx).Update("tenants").Set("enabled", true).ExecContext(ctx); err == nil {
		t.Error("expected exec to fail when the transaction cannot be started")
	}

	if pooled.used {
		t.Error("statement fell back to the pooled connection outside the transaction")
	}
}

func TestSetLocalConfig_RequiresTransaction(t *testing.T) {
	d := &DBClient{logger: logging.NewNoopLogger()}

	if err := d.SetLocalConfig(context.Background(), "app.tenant_id", "tenant-1"); err == nil {
		t.Error("expected error when no transaction is in the context")
	}
}

func TestSetLocalConfig_FailedTransaction(t *testing.T) {
	d := &DBClient{logger: logging.NewNoopLogger()}

	lt := &lazyTx{db: sql.OpenDB(failingConnector{}), logger: d.logger}
	ctx := contextWithLazyTx(context.Background(), lt)

	if err := d.SetLocalConfig(ctx, "app.tenant_id", "tenant-1"); err == nil {
		t.Error("expected error when the transaction cannot be started")
	}
}
