// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/velodrive/platform-api/internal/logging"
	"github.com/velodrive/platform-api/internal/monitoring"
	"github.com/velodrive/platform-api/internal/storage"
	"github.com/velodrive/platform-api/internal/tracing"
	"github.com/velodrive/platform-api/internal/types"
)

var validStatuses = map[string]bool{
	types.MembershipStatusActive:    true,
	types.MembershipStatusSuspended: true,
	types.MembershipStatusPending:   true,
	types.MembershipStatusRemoved:   true,
}

type Service struct {
	storage            StorageInterface
	identities         IdentityClientInterface
	invitationLifetime string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	identities IdentityClientInterface,
	invitationLifetime string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:            storage,
		identities:         identities,
		invitationLifetime: invitationLifetime,
		tracer:             tracer,
		monitor:            monitor,
		logger:             logger,
	}
}

func (s *Service) CreateTenant(ctx context.Context, name string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.CreateTenant")
	defer span.End()

	t := &types.Tenant{
		Name:    name,
		Enabled: true,
	}

	created, err := s.storage.CreateTenant(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	return created, nil
}

func (s *Service) GetTenant(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.GetTenant")
	defer span.End()

	return s.storage.GetTenantByID(ctx, id)
}

func (s *Service) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListTenants")
	defer span.End()

	return s.storage.ListTenants(ctx)
}

func (s *Service) UpdateTenant(ctx context.Context, tenant *types.Tenant, paths []string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.UpdateTenant")
	defer span.End()

	if err := s.storage.UpdateTenant(ctx, tenant, paths); err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	updated, err := s.storage.GetTenantByID(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get updated tenant: %w", err)
	}

	return updated, nil
}

// InviteUser finds or creates the identity for the email, adds an active
// membership and returns a recovery link the frontend mails as the
// invitation. Re-inviting an existing member regenerates the link only.
func (s *Service) InviteUser(ctx context.Context, tenantID, email, role string) (string, string, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.InviteUser")
	defer span.End()

	identityID, err := s.identities.GetIdentityIDByEmail(ctx, email)
	if err != nil {
		s.logger.Errorf("Failed to check identity existence: %v", err)
		return "", "", fmt.Errorf("failed to check identity")
	}

	if identityID == "" {
		s.logger.Infof("Creating new identity for email %s", email)
		identityID, err = s.identities.CreateIdentity(ctx, email)
		if err != nil {
			s.logger.Errorf("Failed to create identity: %v", err)
			return "", "", fmt.Errorf("failed to provision user")
		}
	}

	if _, err := s.storage.AddMember(ctx, tenantID, identityID, role); err != nil {
		if !errors.Is(err, storage.ErrDuplicateKey) {
			s.logger.Errorf("Failed to add member to storage: %v", err)
			return "", "", fmt.Errorf("failed to add member")
		}
		// Already a member, regenerate the invitation link only.
	}

	link, code, err := s.identities.CreateRecoveryLink(ctx, identityID, s.invitationLifetime)
	if err != nil {
		s.logger.Errorf("Failed to create recovery link: %v", err)
		return "", "", fmt.Errorf("failed to generate invitation link")
	}

	return link, code, nil
}

func (s *Service) ListTenantUsers(ctx context.Context, tenantID string) ([]*types.TenantUser, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListTenantUsers")
	defer span.End()

	members, err := s.storage.ListMembersByTenantID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	var users []*types.TenantUser
	for _, m := range members {
		email, err := s.identities.GetIdentityEmail(ctx, m.UserID)
		if err != nil {
			// The identity may have been deleted in Kratos but not here
			s.logger.Warn("failed to get identity for user", "user_id", m.UserID, "err", err)
			email = "unknown"
		}

		users = append(users, &types.TenantUser{
			UserID: m.UserID,
			Email:  email,
			Role:   m.Role,
			Status: m.Status,
		})
	}

	return users, nil
}

// SetMembershipStatus suspends or reactivates a member. The change takes
// effect on the member's next request because memberships are looked up
// fresh per request.
func (s *Service) SetMembershipStatus(ctx context.Context, tenantID, userID, status string) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.SetMembershipStatus")
	defer span.End()

	if !validStatuses[status] {
		return fmt.Errorf("invalid membership status: %s", status)
	}

	return s.storage.SetMembershipStatus(ctx, tenantID, userID, status)
}

func (s *Service) ListUserTenants(ctx context.Context, userID string) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListUserTenants")
	defer span.End()

	tenants, err := s.storage.ListTenantsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants for user: %w", err)
	}

	return tenants, nil
}
