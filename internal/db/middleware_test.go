// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/mock/gomock"
)

type stubDBClient struct {
	withTxErr error
}

func (c *stubDBClient) Statement(context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder
}

func (c *stubDBClient) BeginTx(ctx context.Context) (context.Context, TxInterface, error) {
	return ctx, nil, nil
}

func (c *stubDBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return c.withTxErr
}

func (c *stubDBClient) SetLocalConfig(context.Context, string, string) error { return nil }

func (c *stubDBClient) Close() {}

func TestTransactionMiddleware_CommitFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())

	client := &stubDBClient{withTxErr: fmt.Errorf("%w: connection reset", ErrCommitFailed)}

	handler := TransactionMiddleware(client, mockLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	// The response was already written when the commit ran.
	if rr.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
}

func TestTransactionMiddleware_RollbackOnErrorStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())

	handler := TransactionMiddleware(&stubDBClient{}, mockLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
}
