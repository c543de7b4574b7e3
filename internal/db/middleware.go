// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/velodrive/platform-api/internal/logging"
)

// TransactionMiddleware wraps each request in a database transaction, created
// lazily on first database access. Unlike a classic write-only transaction
// middleware this covers GET requests too: the tenant binding is set with
// set_config(..., true) and only scopes statements issued on the same
// transaction, so reads outside a transaction would not be tenant-scoped.
// The transaction is committed if the handler completes with status < 400 and
// rolled back otherwise, which also discards any partial binding.
func TransactionMiddleware(db DBClientInterface, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			err := db.WithTx(ctx, func(txCtx context.Context) error {
				rw := &responseWriter{
					ResponseWriter: w,
					statusCode:     http.StatusOK,
				}

				next.ServeHTTP(rw, r.WithContext(txCtx))

				if rw.statusCode >= 400 {
					return fmt.Errorf("request failed with status %d", rw.statusCode)
				}

				return nil
			})

			if err != nil {
				// The commit runs after the handler has written its response,
				// so a commit failure means the client saw success for a
				// write that was discarded.
				if errors.Is(err, ErrCommitFailed) {
					logger.Errorf("transaction commit failed after response was written: %v", err)
					return
				}
				logger.Debugf("transaction rolled back: %v", err)
			}
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
