// internal/service/auth/admin_create.go
package auth

import (
	"context"
	"fmt"
	"strings"

	"jvhelp-service/internal/domain/admin"
	xerrors "jvhelp-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// CreatePrincipal adds an active admin. The password goes through the same
// hasher Authenticate compares with.
func (s *AuthService) CreatePrincipal(ctx context.Context, req *admin.CreatePrincipalRequest) (*admin.Principal, error) {
	if req.Username == "" || strings.TrimSpace(req.Username) != req.Username {
		return nil, xerrors.Invalid("username must be non-empty without surrounding whitespace")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, xerrors.Invalid("%s", err.Error())
	}

	role := req.Role
	if role == "" {
		role = admin.RoleAdmin
	}

	p := &admin.Principal{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.principals.Create(ctx, p); err != nil {
		if xerrors.Is(err, xerrors.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create principal: %w", err)
	}

	s.logger.Info("admin principal created", zap.Int64("admin_id", p.ID), zap.String("username", p.Username))
	return p, nil
}

// EnsureBootstrapAdmin creates the configured principal on startup if it is
// missing. Empty credentials skip the step.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		s.logger.Debug("bootstrap admin not configured, skipping")
		return nil
	}

	_, err := s.principals.FindByUsername(ctx, username)
	if err == nil {
		s.logger.Info("bootstrap admin already exists, skipping creation", zap.String("username", username))
		return nil
	}
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		return fmt.Errorf("failed to check bootstrap admin: %w", err)
	}

	if _, err := s.CreatePrincipal(ctx, &admin.CreatePrincipalRequest{Username: username, Password: password}); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	return nil
}

// SetPassword replaces the credential and ends every existing session.
func (s *AuthService) SetPassword(ctx context.Context, username, password string) error {
	p, err := s.principals.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return xerrors.Invalid("%s", err.Error())
	}
	if err := s.principals.UpdatePassword(ctx, p.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return s.endSessions(ctx, p.ID, "password_changed")
}

// SetActive toggles the active flag. Deactivation ends every session.
func (s *AuthService) SetActive(ctx context.Context, username string, active bool) error {
	p, err := s.principals.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.principals.SetActive(ctx, p.ID, active); err != nil {
		return fmt.Errorf("failed to update active flag: %w", err)
	}
	s.logger.Info("admin active flag changed", zap.Int64("admin_id", p.ID), zap.Bool("active", active))

	if active {
		return nil
	}
	return s.endSessions(ctx, p.ID, "deactivated")
}

func (s *AuthService) endSessions(ctx context.Context, principalID int64, reason string) error {
	n, err := s.sessions.DeleteByPrincipal(ctx, principalID)
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	s.metrics.SessionsRevoked(reason, int(n))
	if s.notifier != nil {
		s.notifier.PrincipalDisabled(principalID, reason)
	}
	return nil
}

// ListPrincipals returns every admin ordered by id.
func (s *AuthService) ListPrincipals(ctx context.Context) ([]admin.Principal, error) {
	return s.principals.List(ctx)
}
