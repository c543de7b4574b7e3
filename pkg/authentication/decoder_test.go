// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"errors"
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_interfaces.go -source=./interfaces.go

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func TestPrincipalDecoder_DecodePrincipal(t *testing.T) {
	testCases := []struct {
		name             string
		rawToken         func(*testing.T) string
		expectedErr      error
		expectedKind     Kind
		expectedSubject  string
		expectedTenantID string
		expectedRole     string
	}{
		{
			name: "platform admin with null tenant",
			rawToken: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{
					"sub":             "admin-1",
					"tenant_id":       nil,
					"isPlatformAdmin": true,
					"role":            nil,
				})
			},
			expectedKind:    KindPlatformAdmin,
			expectedSubject: "admin-1",
		},
		{
			name: "platform admin flag wins over tenant claims",
			rawToken: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{
					"sub":             "admin-2",
					"tenant_id":       "tenant-1",
					"isPlatformAdmin": true,
					"role":            "owner",
				})
			},
			expectedKind:    KindPlatformAdmin,
			expectedSubject: "admin-2",
		},
		{
			name: "tenant member",
			rawToken: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{
					"sub":             "user-1",
					"tenant_id":       "tenant-1",
					"isPlatformAdmin": false,
					"role":            "member",
				})
			},
			expectedKind:     KindTenantMember,
			expectedSubject:  "user-1",
			expectedTenantID: "tenant-1",
			expectedRole:     "member",
		},
		{
			name: "tenant member with null tenant decodes with empty tenant ID",
			rawToken: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{
					"sub":             "user-2",
					"tenant_id":       nil,
					"isPlatformAdmin": false,
					"role":            nil,
				})
			},
			expectedKind:    KindTenantMember,
			expectedSubject: "user-2",
		},
		{
			name: "missing admin flag defaults to tenant member",
			rawToken: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{
					"sub":       "user-3",
					"tenant_id": "tenant-9",
					"role":      "driver",
				})
			},
			expectedKind:     KindTenantMember,
			expectedSubject:  "user-3",
			expectedTenantID: "tenant-9",
			expectedRole:     "driver",
		},
		{
			name: "missing subject fails closed",
			rawToken: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{
					"tenant_id":       "tenant-1",
					"isPlatformAdmin": false,
				})
			},
			expectedErr: ErrMalformedToken,
		},
		{
			name: "not a compact token",
			rawToken: func(t *testing.T) string {
				return "not-a-jwt"
			},
			expectedErr: ErrMalformedToken,
		},
		{
			name: "two segments only",
			rawToken: func(t *testing.T) string {
				return "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ4In0"
			},
			expectedErr: ErrMalformedToken,
		},
		{
			name: "unparseable payload segment",
			rawToken: func(t *testing.T) string {
				return "eyJhbGciOiJIUzI1NiJ9.!!!notbase64!!!.signature"
			},
			expectedErr: ErrMalformedToken,
		},
		{
			name: "empty token",
			rawToken: func(t *testing.T) string {
				return ""
			},
			expectedErr: ErrMalformedToken,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			decoder := NewPrincipalDecoder(mockTracer, mockMonitor, mockLogger)

			principal, err := decoder.DecodePrincipal(tc.rawToken(t))

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				if principal != nil {
					t.Fatalf("expected nil principal on error, got %+v", principal)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if principal.Kind != tc.expectedKind {
				t.Errorf("expected kind %v, got %v", tc.expectedKind, principal.Kind)
			}
			if principal.Subject != tc.expectedSubject {
				t.Errorf("expected subject %q, got %q", tc.expectedSubject, principal.Subject)
			}
			if principal.TenantID != tc.expectedTenantID {
				t.Errorf("expected tenant ID %q, got %q", tc.expectedTenantID, principal.TenantID)
			}
			if principal.Role != tc.expectedRole {
				t.Errorf("expected role %q, got %q", tc.expectedRole, principal.Role)
			}
		})
	}
}

func TestPrincipal_IsPlatformAdmin(t *testing.T) {
	if !NewPlatformAdmin("admin").IsPlatformAdmin() {
		t.Error("expected platform admin principal to report as admin")
	}

	if NewTenantMember("user", "tenant-1", "member").IsPlatformAdmin() {
		t.Error("expected tenant member principal to not report as admin")
	}
}
